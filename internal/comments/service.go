// Package comments implements the threaded comment engine: creation with
// cross-post reply protection, author-only edits, recursive deletion and
// forest assembly with exact recursive counts.
//
// Nesting depth is caller-controlled and unbounded, so every traversal here
// runs on an explicit stack instead of call recursion.
package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/community-platform/internal/notify"
	"github.com/example/community-platform/internal/store"
)

// Node is one comment with its full descendant subtree. Children are ordered
// by creation time ascending at every level.
type Node struct {
	store.Comment
	Children []*Node `json:"children"`
}

// Forest is the root comments of a post, newest first, plus the exact count
// of every comment in the forest at any depth.
type Forest struct {
	Comments []*Node `json:"comments"`
	Total    int     `json:"total"`
}

type UserLookup interface {
	Get(ctx context.Context, id string) (store.User, error)
}

type PostLookup interface {
	Get(ctx context.Context, id string) (store.Post, error)
}

// Service is the comment tree engine.
type Service struct {
	Store store.CommentStore
	Users UserLookup
	Posts PostLookup
	Sink  notify.Sink
	Log   *zap.Logger
}

type CreateParams struct {
	Content  string
	AuthorID string
	PostID   string
	ParentID *string
}

// Create validates and persists a comment, then notifies the post author
// when someone else commented. The notification is best-effort: its failure
// is logged and never rolls back the comment.
func (s *Service) Create(ctx context.Context, p CreateParams) (store.Comment, error) {
	if strings.TrimSpace(p.Content) == "" {
		return store.Comment{}, fmt.Errorf("%w: content is required", store.ErrValidation)
	}

	if _, err := s.Users.Get(ctx, p.AuthorID); err != nil {
		return store.Comment{}, err
	}
	post, err := s.Posts.Get(ctx, p.PostID)
	if err != nil {
		return store.Comment{}, err
	}

	if p.ParentID != nil {
		parent, err := s.Store.Get(ctx, *p.ParentID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Comment{}, fmt.Errorf("%w: invalid parent comment", store.ErrValidation)
		case err != nil:
			return store.Comment{}, err
		case parent.PostID != p.PostID:
			// A parent on another post would splice the reply into a
			// foreign tree; reject it before writing anything.
			return store.Comment{}, fmt.Errorf("%w: invalid parent comment", store.ErrValidation)
		}
	}

	created, err := s.Store.Create(ctx, store.Comment{
		Content:  p.Content,
		AuthorID: p.AuthorID,
		PostID:   p.PostID,
		ParentID: p.ParentID,
	})
	if err != nil {
		return store.Comment{}, err
	}

	if post.AuthorID != p.AuthorID && s.Sink != nil {
		msg := fmt.Sprintf("New comment on your post: %s", post.Title)
		if err := s.Sink.Notify(ctx, post.AuthorID, msg); err != nil && s.Log != nil {
			s.Log.Warn("comment notification failed",
				zap.String("comment_id", created.ID),
				zap.String("recipient_id", post.AuthorID),
				zap.Error(err))
		}
	}
	return created, nil
}

// Update edits the content. Only the author may edit; admins get no
// override here. A missing comment reports ErrNotFound before any
// authorization check.
func (s *Service) Update(ctx context.Context, commentID, authorID, content string) (store.Comment, error) {
	c, err := s.Store.Get(ctx, commentID)
	if err != nil {
		return store.Comment{}, err
	}
	if c.AuthorID != authorID {
		return store.Comment{}, fmt.Errorf("%w: only the author may edit", store.ErrForbidden)
	}
	if strings.TrimSpace(content) == "" {
		return store.Comment{}, fmt.Errorf("%w: content is required", store.ErrValidation)
	}
	return s.Store.UpdateContent(ctx, commentID, content)
}

// Delete removes the comment and its whole subtree. Allowed for the author
// and for admins; existence is checked first so the error shape matches
// Update's.
func (s *Service) Delete(ctx context.Context, commentID, requesterID string) error {
	c, err := s.Store.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != requesterID {
		u, err := s.Users.Get(ctx, requesterID)
		if err != nil || u.Role != "admin" {
			return fmt.Errorf("%w: only the author or an admin may delete", store.ErrForbidden)
		}
	}
	return s.Store.Delete(ctx, commentID)
}

// Get returns one comment with its full subtree attached.
func (s *Service) Get(ctx context.Context, commentID string) (*Node, error) {
	c, err := s.Store.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Store.ListByPost(ctx, c.PostID)
	if err != nil {
		return nil, err
	}
	nodes, _ := assemble(rows)
	n, ok := nodes[commentID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return n, nil
}

// ListForPost returns the post's comment forest: roots newest first, each
// carrying its subtree, plus the total over every node at any depth.
func (s *Service) ListForPost(ctx context.Context, postID string) (Forest, error) {
	if _, err := s.Posts.Get(ctx, postID); err != nil {
		return Forest{}, err
	}
	rows, err := s.Store.ListByPost(ctx, postID)
	if err != nil {
		return Forest{}, err
	}

	_, roots := assemble(rows)
	return Forest{Comments: roots, Total: Count(roots)}, nil
}

// Count walks the forest pre-order with an explicit stack and counts every
// node exactly once.
func Count(roots []*Node) int {
	total := 0
	stack := make([]*Node, len(roots))
	copy(stack, roots)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Children...)
	}
	return total
}

// assemble links flat rows (created_at ascending) into trees. Children
// inherit the ascending order; roots are reversed to newest-first.
func assemble(rows []store.Comment) (map[string]*Node, []*Node) {
	nodes := make(map[string]*Node, len(rows))
	for _, c := range rows {
		nodes[c.ID] = &Node{Comment: c, Children: []*Node{}}
	}

	roots := make([]*Node, 0)
	for _, c := range rows {
		n := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = append(parent.Children, n)
		}
	}

	for i, j := 0, len(roots)-1; i < j; i, j = i+1, j-1 {
		roots[i], roots[j] = roots[j], roots[i]
	}
	return nodes, roots
}
