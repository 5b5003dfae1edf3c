package store

import (
	"context"
	"time"
)

// Comment is one node of a post's comment forest. ParentID nil marks a root
// comment; children always belong to the same post as their parent.
type Comment struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	PostID      string    `json:"post_id"`
	ParentID    *string   `json:"parent_comment_id,omitempty"`
	IsModerated bool      `json:"is_moderated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommentStore persists comment rows. Tree assembly and counting are the
// engine's job; the store only guarantees that Delete removes the entire
// subtree below the given comment in one atomic operation.
type CommentStore interface {
	Create(ctx context.Context, c Comment) (Comment, error)
	Get(ctx context.Context, id string) (Comment, error)
	UpdateContent(ctx context.Context, id, content string) (Comment, error)
	Delete(ctx context.Context, id string) error
	// ListByPost returns every comment on the post, roots and replies alike,
	// ordered by created_at ascending.
	ListByPost(ctx context.Context, postID string) ([]Comment, error)
}
