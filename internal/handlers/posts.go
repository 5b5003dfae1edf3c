package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/community-platform/internal/platform/api"
	"github.com/example/community-platform/internal/platform/auth"
	"github.com/example/community-platform/internal/postview"
	"github.com/example/community-platform/internal/store"
)

type createPostRequest struct {
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Media      []store.Media `json:"media,omitempty"`
	Status     string        `json:"status,omitempty"`
	IsFeatured bool          `json:"is_featured,omitempty"`
}

type updatePostRequest struct {
	Title      *string        `json:"title,omitempty"`
	Content    *string        `json:"content,omitempty"`
	Media      *[]store.Media `json:"media,omitempty"`
	Status     *string        `json:"status,omitempty"`
	IsFeatured *bool          `json:"is_featured,omitempty"`
}

// CreatePost handles POST /v1/posts (admin only, enforced by middleware).
func CreatePost(posts store.PostStore, renderer *postview.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
			api.BadRequest(w, "MISSING_FIELDS", "title and content are required", "", nil)
			return
		}

		created, err := posts.Create(r.Context(), store.Post{
			AuthorID:   userID,
			Title:      req.Title,
			Content:    req.Content,
			Media:      req.Media,
			Status:     req.Status,
			IsFeatured: req.IsFeatured,
		})
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		view, err := renderer.Render(r.Context(), created, false, "")
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, view)
	}
}

// ListPosts handles GET /v1/posts
func ListPosts(posts store.PostStore, renderer *postview.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := posts.List(r.Context())
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		viewerID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		views := make([]postview.PostView, 0, len(all))
		for _, p := range all {
			view, err := renderer.Render(r.Context(), p, false, viewerID)
			if err != nil {
				writeDomainError(w, r, err)
				return
			}
			views = append(views, view)
		}
		api.WriteJSON(w, http.StatusOK, views)
	}
}

// GetPost handles GET /v1/posts/{post_id}. The comment forest is embedded
// and the view counter bumped; rendering itself stays a pure read.
func GetPost(posts store.PostStore, renderer *postview.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := strings.TrimSpace(chi.URLParam(r, "post_id"))
		if postID == "" {
			api.BadRequest(w, "MISSING_ID", "post_id is required", "", nil)
			return
		}

		p, err := posts.Get(r.Context(), postID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		if err := posts.IncrementViews(r.Context(), postID); err != nil {
			log.Warn("view counter bump failed", zap.String("post_id", postID), zap.Error(err))
		} else {
			p.Views++
		}

		viewerID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		view, err := renderer.Render(r.Context(), p, true, viewerID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view)
	}
}

// UpdatePost handles PUT /v1/posts/{post_id} (admin only). Absent fields
// keep their current value.
func UpdatePost(posts store.PostStore, renderer *postview.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := strings.TrimSpace(chi.URLParam(r, "post_id"))
		if postID == "" {
			api.BadRequest(w, "MISSING_ID", "post_id is required", "", nil)
			return
		}

		var req updatePostRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}

		p, err := posts.Get(r.Context(), postID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Content != nil {
			p.Content = *req.Content
		}
		if req.Media != nil {
			p.Media = *req.Media
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		if req.IsFeatured != nil {
			p.IsFeatured = *req.IsFeatured
		}

		updated, err := posts.Update(r.Context(), p)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		view, err := renderer.Render(r.Context(), updated, false, "")
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view)
	}
}

// DeletePost handles DELETE /v1/posts/{post_id} (admin only). Comments and
// their subtrees go with the post; both backends cascade the removal.
func DeletePost(posts store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := strings.TrimSpace(chi.URLParam(r, "post_id"))
		if postID == "" {
			api.BadRequest(w, "MISSING_ID", "post_id is required", "", nil)
			return
		}

		if err := posts.Delete(r.Context(), postID); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
