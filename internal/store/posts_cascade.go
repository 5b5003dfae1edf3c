package store

import (
	"context"
	"errors"
)

// CascadingPostStore wraps a PostStore so deleting a post also removes its
// comment forest. Postgres does this declaratively through the foreign keys;
// the in-memory backend needs it spelled out so both behave the same.
// Reaction rows are left alone either way: they carry no content foreign key
// and are unreachable once their target is gone.
type CascadingPostStore struct {
	PostStore
	Comments CommentStore
}

func (s *CascadingPostStore) Delete(ctx context.Context, id string) error {
	rows, err := s.Comments.ListByPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.PostStore.Delete(ctx, id); err != nil {
		return err
	}
	// Deleting each root takes its subtree with it.
	for _, c := range rows {
		if c.ParentID != nil {
			continue
		}
		if err := s.Comments.Delete(ctx, c.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}
