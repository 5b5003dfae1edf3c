package handlers

import (
	"errors"
	"net/http"

	"github.com/example/community-platform/internal/platform/api"
	"github.com/example/community-platform/internal/platform/httpserver"
	"github.com/example/community-platform/internal/store"
)

// writeDomainError maps the store sentinels onto the API error envelope.
// Detection order in the engines guarantees NotFound is reported before
// Forbidden for missing resources.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	rid := httpserver.RequestIDFromContext(r.Context())
	switch {
	case errors.Is(err, store.ErrValidation):
		api.BadRequest(w, "INVALID_INPUT", err.Error(), rid, nil)
	case errors.Is(err, store.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "resource not found", rid)
	case errors.Is(err, store.ErrForbidden):
		api.Forbidden(w, "FORBIDDEN", err.Error(), rid)
	case errors.Is(err, store.ErrConflict):
		api.Conflict(w, "CONFLICT", err.Error(), rid, nil)
	default:
		api.Internal(w, rid)
	}
}
