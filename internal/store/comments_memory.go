package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryCommentStore is a development-only in-memory implementation.
// Subtree deletion walks the parent/child adjacency with an explicit stack
// under one lock, mirroring the atomicity of the SQL cascade.
type InMemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[string]Comment  // id -> comment
	children map[string][]string // parent id -> child ids, insertion order
}

func NewInMemoryCommentStore() *InMemoryCommentStore {
	return &InMemoryCommentStore{
		comments: make(map[string]Comment),
		children: make(map[string][]string),
	}
}

func (s *InMemoryCommentStore) Create(_ context.Context, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New().String()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.comments[c.ID] = c
	if c.ParentID != nil {
		s.children[*c.ParentID] = append(s.children[*c.ParentID], c.ID)
	}
	return c, nil
}

func (s *InMemoryCommentStore) Get(_ context.Context, id string) (Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c, nil
}

func (s *InMemoryCommentStore) UpdateContent(_ context.Context, id, content string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	s.comments[id] = c
	return c, nil
}

// Delete removes the comment and every descendant. Depth is unbounded and
// caller-controlled, so the walk uses a stack rather than call recursion.
func (s *InMemoryCommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, ok := s.comments[id]
	if !ok {
		return ErrNotFound
	}

	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, s.children[cur]...)
		delete(s.children, cur)
		delete(s.comments, cur)
	}

	if root.ParentID != nil {
		siblings := s.children[*root.ParentID]
		for i, sid := range siblings {
			if sid == id {
				s.children[*root.ParentID] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s *InMemoryCommentStore) ListByPost(_ context.Context, postID string) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
