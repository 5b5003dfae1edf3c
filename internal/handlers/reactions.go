package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/community-platform/internal/platform/api"
	"github.com/example/community-platform/internal/platform/auth"
	"github.com/example/community-platform/internal/reactions"
	"github.com/example/community-platform/internal/store"
)

type castRequest struct {
	IsLike *bool `json:"is_like"`
}

type castResponse struct {
	Outcome reactions.Outcome `json:"outcome"`
}

func contentRefFromURL(r *http.Request) (store.ContentRef, error) {
	kind, err := store.ParseContentKind(strings.TrimSpace(chi.URLParam(r, "content_type")))
	if err != nil {
		return store.ContentRef{}, err
	}
	return store.ContentRef{
		Kind: kind,
		ID:   strings.TrimSpace(chi.URLParam(r, "content_id")),
	}, nil
}

// CastReaction handles POST /v1/reactions/{content_type}/{content_id}
func CastReaction(svc *reactions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		ref, err := contentRefFromURL(r)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		var req castRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		if req.IsLike == nil {
			api.BadRequest(w, "MISSING_IS_LIKE", "is_like (bool) is required", "", nil)
			return
		}

		outcome, err := svc.Cast(r.Context(), userID, ref, *req.IsLike)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		status := http.StatusOK
		if outcome == reactions.OutcomeApplied {
			status = http.StatusCreated
		}
		api.WriteJSON(w, status, castResponse{Outcome: outcome})
	}
}

// RemoveReaction handles DELETE /v1/reactions/{content_type}/{content_id}
func RemoveReaction(svc *reactions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		ref, err := contentRefFromURL(r)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		if err := svc.Remove(r.Context(), userID, ref); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetReactionSummary handles GET /v1/reactions/{content_type}/{content_id}
// The read is public; user_id names an optional viewer whose own vote is
// reported alongside the counts.
func GetReactionSummary(svc *reactions.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := contentRefFromURL(r)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		viewerID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		summary, err := svc.Summary(r.Context(), ref, viewerID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, summary)
	}
}
