package store

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryReactionStore_Insert_UniquePerTarget(t *testing.T) {
	s := NewInMemoryReactionStore()
	ctx := context.Background()

	r, err := s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: KindPost, ContentID: "post-1", IsLike: true})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected non-empty id")
	}

	// Same voter, same target: unique constraint.
	_, err = s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: KindPost, ContentID: "post-1", IsLike: false})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Same voter, same id, different kind: distinct target.
	if _, err := s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: KindComment, ContentID: "post-1", IsLike: true}); err != nil {
		t.Fatalf("insert on comment kind: %v", err)
	}
}

func TestInMemoryReactionStore_SetPolarity_KeepsIdentity(t *testing.T) {
	s := NewInMemoryReactionStore()
	ctx := context.Background()

	r, _ := s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: KindPost, ContentID: "post-1", IsLike: true})

	if err := s.SetPolarity(ctx, r.ID, false); err != nil {
		t.Fatalf("set polarity: %v", err)
	}
	got, err := s.Find(ctx, "user-a", ContentRef{Kind: KindPost, ID: "post-1"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.IsLike {
		t.Fatal("expected polarity flipped to dislike")
	}
	if got.ID != r.ID || !got.CreatedAt.Equal(r.CreatedAt) {
		t.Fatal("expected id and created_at preserved across flip")
	}

	if err := s.SetPolarity(ctx, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryReactionStore_Delete(t *testing.T) {
	s := NewInMemoryReactionStore()
	ctx := context.Background()
	ref := ContentRef{Kind: KindComment, ID: "comment-1"}

	_, _ = s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: ref.Kind, ContentID: ref.ID, IsLike: true})

	if err := s.Delete(ctx, "user-a", ref); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "user-a", ref); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInMemoryReactionStore_Counts(t *testing.T) {
	s := NewInMemoryReactionStore()
	ctx := context.Background()
	ref := ContentRef{Kind: KindPost, ID: "post-1"}

	_, _ = s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: ref.Kind, ContentID: ref.ID, IsLike: true})
	_, _ = s.Insert(ctx, Reaction{VoterID: "user-b", ContentType: ref.Kind, ContentID: ref.ID, IsLike: true})
	_, _ = s.Insert(ctx, Reaction{VoterID: "user-c", ContentType: ref.Kind, ContentID: ref.ID, IsLike: false})
	_, _ = s.Insert(ctx, Reaction{VoterID: "user-a", ContentType: KindPost, ContentID: "post-2", IsLike: false})

	likes, dislikes, err := s.Counts(ctx, ref)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if likes != 2 || dislikes != 1 {
		t.Fatalf("expected 2/1, got %d/%d", likes, dislikes)
	}

	likes, dislikes, _ = s.Counts(ctx, ContentRef{Kind: KindPost, ID: "nothing-here"})
	if likes != 0 || dislikes != 0 {
		t.Fatalf("expected 0/0 for untargeted content, got %d/%d", likes, dislikes)
	}
}
