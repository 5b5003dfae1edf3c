package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the tables if they don't exist. The comment subtree and the
// per-user reaction cleanup are both declarative: ON DELETE CASCADE on the
// self-reference and on voter_id. Reaction content references stay loose on
// purpose; the reaction engine checks existence per content kind.
func Schema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(80) UNIQUE NOT NULL,
			email VARCHAR(120) UNIQUE NOT NULL,
			avatar VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'member',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
		{"posts", `
		CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			media JSONB,
			status VARCHAR(50) NOT NULL DEFAULT 'published',
			views INTEGER NOT NULL DEFAULT 0,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
		{"comments", `
		CREATE TABLE IF NOT EXISTS comments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			content TEXT NOT NULL,
			author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			parent_comment_id UUID REFERENCES comments(id) ON DELETE CASCADE,
			is_moderated BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
		{"comments post index", `
		CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments (post_id, created_at)`},
		{"comments parent index", `
		CREATE INDEX IF NOT EXISTS comments_parent_id_idx ON comments (parent_comment_id)`},
		{"reactions", `
		CREATE TABLE IF NOT EXISTS reactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			voter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content_type VARCHAR(20) NOT NULL CHECK (content_type IN ('post', 'comment')),
			content_id UUID NOT NULL,
			is_like BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (voter_id, content_type, content_id)
		)`},
		{"reactions content index", `
		CREATE INDEX IF NOT EXISTS reactions_content_idx ON reactions (content_type, content_id)`},
		{"notifications", `
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			recipient_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message VARCHAR(255) NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
		{"notifications recipient index", `
		CREATE INDEX IF NOT EXISTS notifications_recipient_idx ON notifications (recipient_id, created_at)`},
	}

	for _, st := range stmts {
		if _, err := pool.Exec(ctx, st.sql); err != nil {
			return fmt.Errorf("schema %s: %w", st.name, err)
		}
	}
	return nil
}
