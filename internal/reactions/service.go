// Package reactions implements the vote engine: one like or dislike per
// user per content item, with toggle semantics. Casting the same vote twice
// removes it; casting the opposite vote flips the row in place.
package reactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/community-platform/internal/store"
)

// Outcome reports what a cast did.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeToggled Outcome = "toggled"
	OutcomeRemoved Outcome = "removed"
)

// Summary is the aggregate for one content item, always computed from the
// reaction rows themselves.
type Summary struct {
	Likes      int  `json:"likes"`
	Dislikes   int  `json:"dislikes"`
	ViewerVote *int `json:"viewer_vote"`
}

// PostLookup and CommentLookup dispatch the existence check per content
// kind. Both are satisfied by the corresponding stores.
type PostLookup interface {
	Get(ctx context.Context, id string) (store.Post, error)
}

type CommentLookup interface {
	Get(ctx context.Context, id string) (store.Comment, error)
}

// Service is the reaction engine. It only ever touches the reaction store;
// posts and comments are read for existence, never written.
type Service struct {
	Store    store.ReactionStore
	Posts    PostLookup
	Comments CommentLookup
}

// Cast records, flips or removes the voter's reaction on the target.
// A uniqueness race on insert falls back to the toggle path, so concurrent
// casts by the same voter never surface a conflict or duplicate a row.
func (s *Service) Cast(ctx context.Context, voterID string, ref store.ContentRef, isLike bool) (Outcome, error) {
	if err := validateTarget(voterID, ref); err != nil {
		return "", err
	}
	if err := s.checkExists(ctx, ref); err != nil {
		return "", err
	}

	// Two attempts: the second only runs when we lose the insert race or
	// the row vanishes between Find and the follow-up write.
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.Store.Find(ctx, voterID, ref)
		switch {
		case errors.Is(err, store.ErrNotFound):
			_, err := s.Store.Insert(ctx, store.Reaction{
				VoterID:     voterID,
				ContentType: ref.Kind,
				ContentID:   ref.ID,
				IsLike:      isLike,
			})
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			if err != nil {
				return "", err
			}
			return OutcomeApplied, nil
		case err != nil:
			return "", err
		}

		if existing.IsLike == isLike {
			// Same polarity again: the vote is a toggle, remove it.
			err := s.Store.Delete(ctx, voterID, ref)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return "", err
			}
			return OutcomeRemoved, nil
		}

		// Opposite polarity: flip in place, identity and created_at kept.
		err = s.Store.SetPolarity(ctx, existing.ID, isLike)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		return OutcomeToggled, nil
	}
	return "", fmt.Errorf("%w: reaction cast kept racing", store.ErrConflict)
}

// Remove deletes the voter's reaction unconditionally. A second call fails
// with ErrNotFound; removal is not idempotent.
func (s *Service) Remove(ctx context.Context, voterID string, ref store.ContentRef) error {
	if err := validateTarget(voterID, ref); err != nil {
		return err
	}
	return s.Store.Delete(ctx, voterID, ref)
}

// Summary counts likes and dislikes for the target and, when viewerID is
// set, reports that viewer's own vote (+1 like, -1 dislike, nil none).
func (s *Service) Summary(ctx context.Context, ref store.ContentRef, viewerID string) (Summary, error) {
	if _, err := store.ParseContentKind(string(ref.Kind)); err != nil {
		return Summary{}, err
	}

	likes, dislikes, err := s.Store.Counts(ctx, ref)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{Likes: likes, Dislikes: dislikes}

	if viewerID != "" {
		r, err := s.Store.Find(ctx, viewerID, ref)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return Summary{}, err
		default:
			vote := -1
			if r.IsLike {
				vote = 1
			}
			out.ViewerVote = &vote
		}
	}
	return out, nil
}

func (s *Service) checkExists(ctx context.Context, ref store.ContentRef) error {
	switch ref.Kind {
	case store.KindPost:
		_, err := s.Posts.Get(ctx, ref.ID)
		return err
	case store.KindComment:
		_, err := s.Comments.Get(ctx, ref.ID)
		return err
	default:
		return fmt.Errorf("%w: content type %q", store.ErrValidation, ref.Kind)
	}
}

func validateTarget(voterID string, ref store.ContentRef) error {
	if voterID == "" {
		return fmt.Errorf("%w: voter id is required", store.ErrValidation)
	}
	if _, err := store.ParseContentKind(string(ref.Kind)); err != nil {
		return err
	}
	if ref.ID == "" {
		return fmt.Errorf("%w: content id is required", store.ErrValidation)
	}
	return nil
}
