package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/community-platform/internal/reactions"
)

func castParams(e *env) map[string]string {
	return map[string]string{"content_type": "post", "content_id": e.post.ID}
}

func TestCastReaction_ApplyThenToggle(t *testing.T) {
	e := newEnv(t)
	handler := CastReaction(e.reactions)
	url := "/v1/reactions/post/" + e.post.ID

	req := setupReq(http.MethodPost, url, `{"is_like":true}`, castParams(e), "voter-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first cast, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp castResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != reactions.OutcomeApplied {
		t.Fatalf("expected applied, got %q", resp.Outcome)
	}

	// Same vote again toggles it off.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodPost, url, `{"is_like":true}`, castParams(e), "voter-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on toggle, got %d", rr.Code)
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome != reactions.OutcomeRemoved {
		t.Fatalf("expected removed, got %q", resp.Outcome)
	}
}

func TestCastReaction_MissingIsLike(t *testing.T) {
	e := newEnv(t)
	handler := CastReaction(e.reactions)

	req := setupReq(http.MethodPost, "/v1/reactions/post/"+e.post.ID, `{}`, castParams(e), "voter-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCastReaction_UnknownContentType(t *testing.T) {
	e := newEnv(t)
	handler := CastReaction(e.reactions)

	req := setupReq(http.MethodPost, "/v1/reactions/user/abc", `{"is_like":true}`,
		map[string]string{"content_type": "user", "content_id": "abc"}, "voter-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCastReaction_Unauthorized(t *testing.T) {
	e := newEnv(t)
	handler := CastReaction(e.reactions)

	req := setupReq(http.MethodPost, "/v1/reactions/post/"+e.post.ID, `{"is_like":true}`, castParams(e), "")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRemoveReaction(t *testing.T) {
	e := newEnv(t)
	cast := CastReaction(e.reactions)
	remove := RemoveReaction(e.reactions)
	url := "/v1/reactions/post/" + e.post.ID

	rr := httptest.NewRecorder()
	cast.ServeHTTP(rr, setupReq(http.MethodPost, url, `{"is_like":false}`, castParams(e), "voter-1"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed cast: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	remove.ServeHTTP(rr, setupReq(http.MethodDelete, url, "", castParams(e), "voter-1"))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	// Removal is not idempotent.
	rr = httptest.NewRecorder()
	remove.ServeHTTP(rr, setupReq(http.MethodDelete, url, "", castParams(e), "voter-1"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second removal, got %d", rr.Code)
	}
}

func TestGetReactionSummary(t *testing.T) {
	e := newEnv(t)
	cast := CastReaction(e.reactions)
	url := "/v1/reactions/post/" + e.post.ID

	rr := httptest.NewRecorder()
	cast.ServeHTTP(rr, setupReq(http.MethodPost, url, `{"is_like":true}`, castParams(e), "voter-1"))
	rr = httptest.NewRecorder()
	cast.ServeHTTP(rr, setupReq(http.MethodPost, url, `{"is_like":false}`, castParams(e), "voter-2"))

	// Public read, viewer named via query param.
	handler := GetReactionSummary(e.reactions)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodGet, url+"?user_id=voter-2", "", castParams(e), ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var sum reactions.Summary
	if err := json.NewDecoder(rr.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.Likes != 1 || sum.Dislikes != 1 {
		t.Fatalf("expected 1/1, got %d/%d", sum.Likes, sum.Dislikes)
	}
	if sum.ViewerVote == nil || *sum.ViewerVote != -1 {
		t.Fatalf("expected viewer_vote -1, got %v", sum.ViewerVote)
	}
}
