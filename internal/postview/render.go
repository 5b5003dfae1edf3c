// Package postview composes the reaction summaries and the comment forest
// into a read-optimized post representation. Rendering is a pure read: it
// never writes to either collaborator, and every count is recomputed from
// the underlying rows on each call.
package postview

import (
	"context"
	"errors"

	"github.com/example/community-platform/internal/comments"
	"github.com/example/community-platform/internal/reactions"
	"github.com/example/community-platform/internal/store"
)

// CommentView is a comment with its reaction summary and nested children.
type CommentView struct {
	store.Comment
	Likes    int            `json:"likes"`
	Dislikes int            `json:"dislikes"`
	Children []*CommentView `json:"children"`
}

// PostView is the aggregate read model of a post.
type PostView struct {
	store.Post
	AuthorUsername string         `json:"author_username,omitempty"`
	Likes          int            `json:"likes"`
	Dislikes       int            `json:"dislikes"`
	ViewerVote     *int           `json:"viewer_vote,omitempty"`
	CommentsCount  int            `json:"comments_count"`
	Comments       []*CommentView `json:"comments,omitempty"`
}

type UserLookup interface {
	Get(ctx context.Context, id string) (store.User, error)
}

// Renderer builds PostViews from the two engines.
type Renderer struct {
	Reactions *reactions.Service
	Comments  *comments.Service
	Users     UserLookup
}

// Render computes the aggregate view. CommentsCount always reflects the full
// recursive count, identical to what ListForPost reports, whether or not the
// forest itself is embedded.
func (r *Renderer) Render(ctx context.Context, post store.Post, includeComments bool, viewerID string) (PostView, error) {
	summary, err := r.Reactions.Summary(ctx, store.ContentRef{Kind: store.KindPost, ID: post.ID}, viewerID)
	if err != nil {
		return PostView{}, err
	}

	forest, err := r.Comments.ListForPost(ctx, post.ID)
	if err != nil {
		return PostView{}, err
	}

	view := PostView{
		Post:          post,
		Likes:         summary.Likes,
		Dislikes:      summary.Dislikes,
		ViewerVote:    summary.ViewerVote,
		CommentsCount: forest.Total,
	}

	if r.Users != nil {
		u, err := r.Users.Get(ctx, post.AuthorID)
		switch {
		case err == nil:
			view.AuthorUsername = u.Username
		case !errors.Is(err, store.ErrNotFound):
			return PostView{}, err
		}
	}

	if includeComments {
		views, err := r.renderForest(ctx, forest.Comments)
		if err != nil {
			return PostView{}, err
		}
		view.Comments = views
	}
	return view, nil
}

// renderForest maps comment nodes to views with their own reaction
// summaries. Depth is unbounded, so the walk uses an explicit stack.
func (r *Renderer) renderForest(ctx context.Context, roots []*comments.Node) ([]*CommentView, error) {
	type frame struct {
		src    *comments.Node
		parent *CommentView
	}

	out := make([]*CommentView, 0, len(roots))
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{src: roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		summary, err := r.Reactions.Summary(ctx,
			store.ContentRef{Kind: store.KindComment, ID: f.src.ID}, "")
		if err != nil {
			return nil, err
		}

		cv := &CommentView{
			Comment:  f.src.Comment,
			Likes:    summary.Likes,
			Dislikes: summary.Dislikes,
			Children: make([]*CommentView, 0, len(f.src.Children)),
		}
		if f.parent == nil {
			out = append(out, cv)
		} else {
			f.parent.Children = append(f.parent.Children, cv)
		}

		for i := len(f.src.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{src: f.src.Children[i], parent: cv})
		}
	}
	return out, nil
}
