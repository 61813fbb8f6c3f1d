package blog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/balping/hashslug/internal/errx"
	"github.com/balping/hashslug/internal/httpx"
)

// CreatePostRequest is the JSON body for creating a post.
type CreatePostRequest struct {
	Title string `json:"title"`
}

// CreateCommentRequest is the JSON body for commenting on a post.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// PostResponse is the JSON representation of a post.
type PostResponse struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

// CommentResponse is the JSON representation of a comment.
type CommentResponse struct {
	Slug      string `json:"slug"`
	PostSlug  string `json:"post_slug"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Handler provides HTTP handlers for the blog service.
type Handler struct {
	service Service
	logger  *slog.Logger
	baseURL string
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service Service
	Logger  *slog.Logger
	BaseURL string // Base URL for post links (e.g., "https://blog.example.com")
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
		baseURL: cfg.BaseURL,
	}
}

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httpx.DecodeJSON[CreatePostRequest](r)
	if err != nil {
		h.requestLogger(r).WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	post, err := h.service.CreatePost(ctx, req.Title)
	if err != nil {
		h.handleError(ctx, w, r, err, "")
		return
	}

	h.requestLogger(r).InfoContext(ctx, "post created", "slug", post.Slug)
	httpx.WriteJSON(w, http.StatusCreated, h.postResponse(post))
}

// GetPost handles GET /api/posts/{slug} and GET /posts/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	post, err := h.service.GetPost(ctx, slug)
	if err != nil {
		h.handleError(ctx, w, r, err, slug)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.postResponse(post))
}

// CreateComment handles POST /api/posts/{slug}/comments.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postSlug := r.PathValue("slug")

	req, err := httpx.DecodeJSON[CreateCommentRequest](r)
	if err != nil {
		h.requestLogger(r).WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	comment, err := h.service.AddComment(ctx, postSlug, req.Body)
	if err != nil {
		h.handleError(ctx, w, r, err, postSlug)
		return
	}

	h.requestLogger(r).InfoContext(ctx, "comment created",
		"slug", comment.Slug,
		"post_slug", postSlug,
	)
	httpx.WriteJSON(w, http.StatusCreated, commentResponse(comment))
}

// ListComments handles GET /api/posts/{slug}/comments.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	postSlug := r.PathValue("slug")

	comments, err := h.service.ListComments(ctx, postSlug)
	if err != nil {
		h.handleError(ctx, w, r, err, postSlug)
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, commentResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// GetComment handles GET /api/comments/{slug}.
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	comment, err := h.service.GetComment(ctx, slug)
	if err != nil {
		h.handleError(ctx, w, r, err, slug)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, commentResponse(comment))
}

// PostURL returns the public URL of the post with the given slug.
func (h *Handler) PostURL(slug string) string {
	return h.baseURL + "/posts/" + slug
}

func (h *Handler) postResponse(p PostView) PostResponse {
	return PostResponse{
		Slug:      p.Slug,
		Title:     p.Title,
		URL:       h.PostURL(p.Slug),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func commentResponse(c CommentView) CommentResponse {
	return CommentResponse{
		Slug:      c.Slug,
		PostSlug:  c.PostSlug,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

// handleError writes the response for a service error. Misconfiguration
// and storage failures are logged as errors, client mistakes as warnings.
func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, slug string) {
	kind := errx.KindOf(err)
	logger := h.requestLogger(r)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
	}
	if slug != "" {
		logAttrs = append(logAttrs, "slug", slug)
	}

	status := httpx.ErrorKindToStatus(kind)
	code := httpx.ErrorKindToCode(kind)

	switch kind {
	case errx.NotFound:
		logger.WarnContext(ctx, "record not found", logAttrs...)
		httpx.WriteError(w, status, code, "resource doesn't exist", nil)

	case errx.Invalid:
		logger.WarnContext(ctx, "invalid request", logAttrs...)
		httpx.WriteError(w, status, code, err.Error(), nil)

	case errx.Unavailable:
		logger.ErrorContext(ctx, "service unavailable", logAttrs...)
		httpx.WriteError(w, status, code, "The service is temporarily unavailable. Please try again.", nil)

	default:
		logger.ErrorContext(ctx, "unexpected error", logAttrs...)
		httpx.WriteError(w, status, code, "An unexpected error occurred.", nil)
	}
}
