package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type reactionKey struct {
	voterID string
	ref     ContentRef
}

// InMemoryReactionStore is a development-only in-memory implementation.
type InMemoryReactionStore struct {
	mu   sync.RWMutex
	byID map[string]Reaction
	keys map[reactionKey]string // unique (voter, content) -> row id
}

func NewInMemoryReactionStore() *InMemoryReactionStore {
	return &InMemoryReactionStore{
		byID: make(map[string]Reaction),
		keys: make(map[reactionKey]string),
	}
}

func (s *InMemoryReactionStore) Insert(_ context.Context, r Reaction) (Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{voterID: r.VoterID, ref: r.Ref()}
	if _, exists := s.keys[key]; exists {
		return Reaction{}, ErrConflict
	}
	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC()
	s.byID[r.ID] = r
	s.keys[key] = r.ID
	return r, nil
}

func (s *InMemoryReactionStore) Find(_ context.Context, voterID string, ref ContentRef) (Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.keys[reactionKey{voterID: voterID, ref: ref}]
	if !ok {
		return Reaction{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *InMemoryReactionStore) SetPolarity(_ context.Context, id string, isLike bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.IsLike = isLike
	s.byID[id] = r
	return nil
}

func (s *InMemoryReactionStore) Delete(_ context.Context, voterID string, ref ContentRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{voterID: voterID, ref: ref}
	id, ok := s.keys[key]
	if !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	delete(s.keys, key)
	return nil
}

func (s *InMemoryReactionStore) Counts(_ context.Context, ref ContentRef) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var likes, dislikes int
	for _, r := range s.byID {
		if r.Ref() != ref {
			continue
		}
		if r.IsLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}
