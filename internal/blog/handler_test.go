package blog

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://blog.example.com"

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	h := NewHandler(HandlerConfig{
		Service: newTestService(t, newMemRepo()),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		BaseURL: testBaseURL,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts", h.CreatePost)
	mux.HandleFunc("GET /api/posts/{slug}", h.GetPost)
	mux.HandleFunc("POST /api/posts/{slug}/comments", h.CreateComment)
	mux.HandleFunc("GET /api/posts/{slug}/comments", h.ListComments)
	mux.HandleFunc("GET /api/comments/{slug}", h.GetComment)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v), rec.Body.String())
	return v
}

func TestHandlerPostLifecycle(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/posts", `{"title":"Hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody[PostResponse](t, rec)
	assert.Equal(t, "Hello", created.Title)
	assert.Equal(t, testBaseURL+"/posts/"+created.Slug, created.URL)
	assert.NotEmpty(t, created.CreatedAt)

	rec = do(t, mux, http.MethodGet, "/api/posts/"+created.Slug, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeBody[PostResponse](t, rec))

	rec = do(t, mux, http.MethodGet, "/api/posts/XX"+created.Slug, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeBody[map[string]any](t, rec)["error"])
}

func TestHandlerCreatePostErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "malformed JSON", body: `{"title":`, wantCode: "invalid_request"},
		{name: "unknown field", body: `{"title":"x","id":1}`, wantCode: "invalid_request"},
		{name: "empty title", body: `{"title":""}`, wantCode: "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestMux(t), http.MethodPost, "/api/posts", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody[map[string]any](t, rec)["error"])
		})
	}
}

func TestHandlerComments(t *testing.T) {
	mux := newTestMux(t)

	post := decodeBody[PostResponse](t, do(t, mux, http.MethodPost, "/api/posts", `{"title":"Post"}`))

	rec := do(t, mux, http.MethodPost, "/api/posts/"+post.Slug+"/comments", `{"body":"Nice"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decodeBody[CommentResponse](t, rec)
	assert.Equal(t, post.Slug, comment.PostSlug)
	assert.Equal(t, "Nice", comment.Body)

	rec = do(t, mux, http.MethodGet, "/api/posts/"+post.Slug+"/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []CommentResponse{comment}, decodeBody[[]CommentResponse](t, rec))

	rec = do(t, mux, http.MethodGet, "/api/comments/"+comment.Slug, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, comment, decodeBody[CommentResponse](t, rec))

	rec = do(t, mux, http.MethodPost, "/api/posts/XX"+post.Slug+"/comments", `{"body":"Nice"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/posts/XX"+post.Slug+"/comments", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerEmptyCommentList(t *testing.T) {
	mux := newTestMux(t)
	post := decodeBody[PostResponse](t, do(t, mux, http.MethodPost, "/api/posts", `{"title":"Post"}`))

	rec := do(t, mux, http.MethodGet, "/api/posts/"+post.Slug+"/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
