package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/community-platform/internal/store"
)

func TestListNotifications(t *testing.T) {
	ns := store.NewInMemoryNotificationStore()
	ctx := context.Background()
	_, _ = ns.Create(ctx, store.Notification{RecipientID: "user-a", Message: "New comment on your post: Hello"})
	_, _ = ns.Create(ctx, store.Notification{RecipientID: "user-b", Message: "foreign inbox"})

	handler := ListNotifications(ns)
	req := setupReq(http.MethodGet, "/v1/notifications", "", nil, "user-a")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var items []store.Notification
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	if items[0].RecipientID != "user-a" {
		t.Fatalf("expected own inbox only, got %s", items[0].RecipientID)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	ns := store.NewInMemoryNotificationStore()
	ctx := context.Background()
	n, _ := ns.Create(ctx, store.Notification{RecipientID: "user-a", Message: "hi"})

	handler := MarkNotificationRead(ns)
	req := setupReq(http.MethodPost, "/v1/notifications/"+n.ID+"/read", "",
		map[string]string{"notification_id": n.ID}, "user-a")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	// Another user's inbox: reads as missing, never forbidden.
	other, _ := ns.Create(ctx, store.Notification{RecipientID: "user-b", Message: "theirs"})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodPost, "/v1/notifications/"+other.ID+"/read", "",
		map[string]string{"notification_id": other.ID}, "user-a"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign notification, got %d", rr.Code)
	}
}

func TestUnreadNotificationCount(t *testing.T) {
	ns := store.NewInMemoryNotificationStore()
	ctx := context.Background()
	_, _ = ns.Create(ctx, store.Notification{RecipientID: "user-a", Message: "one"})
	_, _ = ns.Create(ctx, store.Notification{RecipientID: "user-a", Message: "two"})

	handler := UnreadNotificationCount(ns)
	req := setupReq(http.MethodGet, "/v1/notifications/unread_count", "", nil, "user-a")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp unreadCountResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UnreadCount != 2 {
		t.Fatalf("expected 2 unread, got %d", resp.UnreadCount)
	}
}

func TestNotifications_Unauthorized(t *testing.T) {
	ns := store.NewInMemoryNotificationStore()

	for name, handler := range map[string]http.HandlerFunc{
		"list":  ListNotifications(ns),
		"count": UnreadNotificationCount(ns),
		"read":  MarkNotificationRead(ns),
	} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, setupReq(http.MethodGet, "/v1/notifications", "", nil, ""))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rr.Code)
		}
	}
}
