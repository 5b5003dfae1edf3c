package store

import (
	"context"
	"time"
)

// Reaction is one user's like or dislike on a post or comment. At most one
// row exists per (voter, content) pair; the polarity flips in place when the
// user changes their mind.
type Reaction struct {
	ID          string      `json:"id"`
	VoterID     string      `json:"voter_id"`
	ContentType ContentKind `json:"content_type"`
	ContentID   string      `json:"content_id"`
	IsLike      bool        `json:"is_like"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Ref returns the polymorphic content reference of the row.
func (r Reaction) Ref() ContentRef {
	return ContentRef{Kind: r.ContentType, ID: r.ContentID}
}

// ReactionStore persists reaction rows. Toggle semantics live in the
// reaction engine; the store only enforces the uniqueness of
// (voter_id, content_type, content_id) and reports a duplicate insert
// as ErrConflict so the engine can fall back to the update path.
type ReactionStore interface {
	Insert(ctx context.Context, r Reaction) (Reaction, error)
	Find(ctx context.Context, voterID string, ref ContentRef) (Reaction, error)
	// SetPolarity flips is_like in place, preserving id and created_at.
	SetPolarity(ctx context.Context, id string, isLike bool) error
	Delete(ctx context.Context, voterID string, ref ContentRef) error
	// Counts tallies likes and dislikes from the rows themselves.
	Counts(ctx context.Context, ref ContentRef) (likes, dislikes int, err error)
}
