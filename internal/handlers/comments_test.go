package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/community-platform/internal/comments"
	"github.com/example/community-platform/internal/platform/auth"
	"github.com/example/community-platform/internal/postview"
	"github.com/example/community-platform/internal/reactions"
	"github.com/example/community-platform/internal/store"
)

// setupReq builds a request with chi URL params and optional user_id in context.
func setupReq(method, url string, body string, params map[string]string, userID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = auth.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

// env bundles the wired services with a seeded author and post.
type env struct {
	users     *store.InMemoryUserStore
	posts     *store.InMemoryPostStore
	comments  *comments.Service
	reactions *reactions.Service
	renderer  *postview.Renderer
	author    store.User
	post      store.Post
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	users := store.NewInMemoryUserStore()
	posts := store.NewInMemoryPostStore()
	commentRows := store.NewInMemoryCommentStore()

	author, err := users.Create(ctx, store.User{Username: "alice"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	post, err := posts.Create(ctx, store.Post{AuthorID: author.ID, Title: "Hello", Content: "body"})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	commentSvc := &comments.Service{
		Store: commentRows,
		Users: users,
		Posts: posts,
		Log:   zap.NewNop(),
	}
	reactionSvc := &reactions.Service{
		Store:    store.NewInMemoryReactionStore(),
		Posts:    posts,
		Comments: commentRows,
	}
	renderer := &postview.Renderer{Reactions: reactionSvc, Comments: commentSvc, Users: users}

	return &env{
		users:     users,
		posts:     posts,
		comments:  commentSvc,
		reactions: reactionSvc,
		renderer:  renderer,
		author:    author,
		post:      post,
	}
}

func TestCreateComment(t *testing.T) {
	e := newEnv(t)
	handler := CreateComment(e.comments)

	url := "/v1/posts/" + e.post.ID + "/comments"
	req := setupReq(http.MethodPost, url, `{"content":"hello world"}`,
		map[string]string{"post_id": e.post.ID}, e.author.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var c store.Comment
	if err := json.NewDecoder(rr.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Content != "hello world" {
		t.Fatalf("expected content 'hello world', got %q", c.Content)
	}
	if c.AuthorID != e.author.ID {
		t.Fatalf("expected author %s, got %q", e.author.ID, c.AuthorID)
	}
}

func TestCreateComment_Unauthorized(t *testing.T) {
	e := newEnv(t)
	handler := CreateComment(e.comments)

	req := setupReq(http.MethodPost, "/v1/posts/"+e.post.ID+"/comments", `{"content":"hello"}`,
		map[string]string{"post_id": e.post.ID}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestCreateComment_EmptyContent(t *testing.T) {
	e := newEnv(t)
	handler := CreateComment(e.comments)

	req := setupReq(http.MethodPost, "/v1/posts/"+e.post.ID+"/comments", `{"content":""}`,
		map[string]string{"post_id": e.post.ID}, e.author.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateComment_MissingPost(t *testing.T) {
	e := newEnv(t)
	handler := CreateComment(e.comments)

	req := setupReq(http.MethodPost, "/v1/posts/missing/comments", `{"content":"hi"}`,
		map[string]string{"post_id": "missing"}, e.author.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCreateComment_CrossPostParent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	other, _ := e.posts.Create(ctx, store.Post{AuthorID: e.author.ID, Title: "Other", Content: "body"})
	foreign, err := e.comments.Create(ctx, comments.CreateParams{Content: "elsewhere", AuthorID: e.author.ID, PostID: other.ID})
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	handler := CreateComment(e.comments)
	body := fmt.Sprintf(`{"content":"spliced","parent_comment_id":%q}`, foreign.ID)
	req := setupReq(http.MethodPost, "/v1/posts/"+e.post.ID+"/comments", body,
		map[string]string{"post_id": e.post.ID}, e.author.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for cross-post parent, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestListComments_Forest(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	root, _ := e.comments.Create(ctx, comments.CreateParams{Content: "root", AuthorID: e.author.ID, PostID: e.post.ID})
	_, _ = e.comments.Create(ctx, comments.CreateParams{Content: "reply", AuthorID: e.author.ID, PostID: e.post.ID, ParentID: &root.ID})

	handler := ListComments(e.comments)
	req := setupReq(http.MethodGet, "/v1/posts/"+e.post.ID+"/comments", "",
		map[string]string{"post_id": e.post.ID}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var forest comments.Forest
	if err := json.NewDecoder(rr.Body).Decode(&forest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if forest.Total != 2 {
		t.Fatalf("expected total 2, got %d", forest.Total)
	}
	if len(forest.Comments) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest.Comments))
	}
	if len(forest.Comments[0].Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(forest.Comments[0].Children))
	}
}

func TestUpdateComment_ForbiddenForNonAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, _ := e.comments.Create(ctx, comments.CreateParams{Content: "mine", AuthorID: e.author.ID, PostID: e.post.ID})
	intruder, _ := e.users.Create(ctx, store.User{Username: "mallory"})

	handler := UpdateComment(e.comments)
	req := setupReq(http.MethodPut, "/v1/comments/"+c.ID, `{"content":"defaced"}`,
		map[string]string{"comment_id": c.ID}, intruder.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestUpdateComment_MissingIs404(t *testing.T) {
	e := newEnv(t)
	handler := UpdateComment(e.comments)

	req := setupReq(http.MethodPut, "/v1/comments/missing", `{"content":"x"}`,
		map[string]string{"comment_id": "missing"}, e.author.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// Existence is reported before authorization.
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteComment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, _ := e.comments.Create(ctx, comments.CreateParams{Content: "bye", AuthorID: e.author.ID, PostID: e.post.ID})

	handler := DeleteComment(e.comments)
	req := setupReq(http.MethodDelete, "/v1/comments/"+c.ID, "",
		map[string]string{"comment_id": c.ID}, e.author.ID)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodDelete, "/v1/comments/"+c.ID, "",
		map[string]string{"comment_id": c.ID}, e.author.ID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rr.Code)
	}
}

func TestGetComment_Subtree(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	root, _ := e.comments.Create(ctx, comments.CreateParams{Content: "root", AuthorID: e.author.ID, PostID: e.post.ID})
	_, _ = e.comments.Create(ctx, comments.CreateParams{Content: "child", AuthorID: e.author.ID, PostID: e.post.ID, ParentID: &root.ID})

	handler := GetComment(e.comments)
	req := setupReq(http.MethodGet, "/v1/comments/"+root.ID, "",
		map[string]string{"comment_id": root.ID}, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var node comments.Node
	if err := json.NewDecoder(rr.Body).Decode(&node); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if node.ID != root.ID || len(node.Children) != 1 {
		t.Fatalf("expected root with 1 child, got %s with %d", node.ID, len(node.Children))
	}
}
