package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/community-platform/internal/platform/api"
	"github.com/example/community-platform/internal/platform/auth"
	"github.com/example/community-platform/internal/store"
)

type unreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// ListNotifications handles GET /v1/notifications
func ListNotifications(ns store.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		items, err := ns.ListByRecipient(r.Context(), userID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, items)
	}
}

// MarkNotificationRead handles POST /v1/notifications/{notification_id}/read
// Someone else's notification reads as missing, not forbidden.
func MarkNotificationRead(ns store.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		notifID := strings.TrimSpace(chi.URLParam(r, "notification_id"))
		if notifID == "" {
			api.BadRequest(w, "MISSING_ID", "notification_id is required", "", nil)
			return
		}

		if err := ns.MarkRead(r.Context(), notifID, userID); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// UnreadNotificationCount handles GET /v1/notifications/unread_count
func UnreadNotificationCount(ns store.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		count, err := ns.UnreadCount(r.Context(), userID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, unreadCountResponse{UnreadCount: count})
	}
}
