package store

import (
	"context"
	"time"
)

// Media describes one attachment on a post, in upload order.
type Media struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

// Post is the aggregate root for comments and post reactions.
// Likes, dislikes and the comment count are derived on read, never stored.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Media      []Media   `json:"media,omitempty"`
	Status     string    `json:"status"`
	Views      int       `json:"views"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const StatusPublished = "published"

type PostStore interface {
	Create(ctx context.Context, p Post) (Post, error)
	Get(ctx context.Context, id string) (Post, error)
	List(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, p Post) (Post, error)
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter without touching updated_at.
	IncrementViews(ctx context.Context, id string) error
}
