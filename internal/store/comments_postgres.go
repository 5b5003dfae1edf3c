package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommentStore persists comments in Postgres. Subtree removal rides
// on the ON DELETE CASCADE self-reference: one DELETE statement removes the
// whole subtree atomically, regardless of depth.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentStore(pool *pgxpool.Pool) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool}
}

const commentColumns = `id::text, content, author_id::text, post_id::text, parent_comment_id::text, is_moderated, created_at, updated_at`

func (s *PostgresCommentStore) Create(ctx context.Context, c Comment) (Comment, error) {
	const q = `INSERT INTO comments (content, author_id, post_id, parent_comment_id)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + commentColumns
	row := s.pool.QueryRow(ctx, q, c.Content, c.AuthorID, c.PostID, c.ParentID)
	out, err := scanComment(row)
	if err != nil {
		return Comment{}, pgError(err)
	}
	return out, nil
}

func (s *PostgresCommentStore) Get(ctx context.Context, id string) (Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1::uuid`
	c, err := scanComment(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return Comment{}, pgError(err)
	}
	return c, nil
}

func (s *PostgresCommentStore) UpdateContent(ctx context.Context, id, content string) (Comment, error) {
	const q = `UPDATE comments SET content = $2, updated_at = now()
	           WHERE id = $1::uuid
	           RETURNING ` + commentColumns
	c, err := scanComment(s.pool.QueryRow(ctx, q, id, content))
	if err != nil {
		return Comment{}, pgError(err)
	}
	return c, nil
}

func (s *PostgresCommentStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1::uuid`, id)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresCommentStore) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments
	           WHERE post_id = $1::uuid
	           ORDER BY created_at ASC, id ASC`
	rows, err := s.pool.Query(ctx, q, postID)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	out := make([]Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, pgError(err)
		}
		out = append(out, c)
	}
	return out, pgError(rows.Err())
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.PostID, &c.ParentID,
		&c.IsModerated, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Comment{}, err
	}
	return c, nil
}
