package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/balping/hashslug/hashslug"
	"github.com/balping/hashslug/internal/errx"
)

const (
	// PostNamespace and CommentNamespace are the slug namespace keys of the
	// two record types. Changing either invalidates every published slug.
	PostNamespace    = "blog.Post"
	CommentNamespace = "blog.Comment"

	MaxTitleLength = 200
	MaxBodyLength  = 5000
)

// Namespaces selects the slug namespaces used for posts and comments.
type Namespaces struct {
	Post    hashslug.Namespace
	Comment hashslug.Namespace
}

// DefaultNamespaces returns the namespaces with no overrides.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		Post:    hashslug.NewNamespace(PostNamespace),
		Comment: hashslug.NewNamespace(CommentNamespace),
	}
}

// PostView is a post as exposed to clients: addressed by slug, never by id.
type PostView struct {
	Slug      string
	Title     string
	CreatedAt time.Time
}

// CommentView is a comment as exposed to clients.
type CommentView struct {
	Slug      string
	PostSlug  string
	Body      string
	CreatedAt time.Time
}

// Service defines the blog operations. Every record is addressed by slug.
type Service interface {
	CreatePost(ctx context.Context, title string) (PostView, error)
	GetPost(ctx context.Context, slug string) (PostView, error)
	AddComment(ctx context.Context, postSlug, body string) (CommentView, error)
	ListComments(ctx context.Context, postSlug string) ([]CommentView, error)
	GetComment(ctx context.Context, slug string) (CommentView, error)
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	Registry   *hashslug.Registry
	Namespaces Namespaces
}

type service struct {
	repo     Repository
	posts    *hashslug.Finder[Post]
	comments *hashslug.Finder[Comment]
}

// NewService creates a new service. The slug codecs of both namespaces are
// resolved here so configuration errors surface at startup.
func NewService(repo Repository, cfg ServiceConfig) (Service, error) {
	const op = "blog.NewService"

	if cfg.Registry == nil {
		return nil, errx.E(op, errx.Misconfigured, errors.New("slug registry is required"))
	}

	postCodec, err := cfg.Registry.Codec(cfg.Namespaces.Post)
	if err != nil {
		return nil, errx.E(op, errx.Misconfigured, err)
	}
	commentCodec, err := cfg.Registry.Codec(cfg.Namespaces.Comment)
	if err != nil {
		return nil, errx.E(op, errx.Misconfigured, err)
	}

	return &service{
		repo:     repo,
		posts:    hashslug.NewFinder[Post](postCodec, postLoader{repo}),
		comments: hashslug.NewFinder[Comment](commentCodec, commentLoader{repo}),
	}, nil
}

func (s *service) CreatePost(ctx context.Context, title string) (PostView, error) {
	const op = "blog.service.CreatePost"

	title = strings.TrimSpace(title)
	if err := validateText("title", title, MaxTitleLength); err != nil {
		return PostView{}, errx.E(op, errx.Invalid, err)
	}

	post, err := s.repo.CreatePost(ctx, title)
	if err != nil {
		return PostView{}, errx.E(op, errx.KindOf(err), err)
	}
	return s.postView(op, post)
}

func (s *service) GetPost(ctx context.Context, slug string) (PostView, error) {
	const op = "blog.service.GetPost"

	post, err := s.findPost(ctx, op, slug)
	if err != nil {
		return PostView{}, err
	}
	return s.postView(op, post)
}

func (s *service) AddComment(ctx context.Context, postSlug, body string) (CommentView, error) {
	const op = "blog.service.AddComment"

	body = strings.TrimSpace(body)
	if err := validateText("body", body, MaxBodyLength); err != nil {
		return CommentView{}, errx.E(op, errx.Invalid, err)
	}

	post, err := s.findPost(ctx, op, postSlug)
	if err != nil {
		return CommentView{}, err
	}

	comment, err := s.repo.CreateComment(ctx, post.ID, body)
	if err != nil {
		return CommentView{}, errx.E(op, errx.KindOf(err), err)
	}
	return s.commentView(op, comment)
}

func (s *service) ListComments(ctx context.Context, postSlug string) ([]CommentView, error) {
	const op = "blog.service.ListComments"

	post, err := s.findPost(ctx, op, postSlug)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, post.ID)
	if err != nil {
		return nil, errx.E(op, errx.KindOf(err), err)
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		v, err := s.commentView(op, c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *service) GetComment(ctx context.Context, slug string) (CommentView, error) {
	const op = "blog.service.GetComment"

	comment, err := s.comments.FindBySlug(ctx, slug)
	if err != nil {
		return CommentView{}, mapFindError(op, err)
	}
	return s.commentView(op, comment)
}

func (s *service) findPost(ctx context.Context, op, slug string) (Post, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return Post{}, mapFindError(op, err)
	}
	return post, nil
}

func (s *service) postView(op string, p Post) (PostView, error) {
	slug, err := s.posts.SlugOf(p)
	if err != nil {
		return PostView{}, errx.E(op, errx.Internal, err)
	}
	return PostView{Slug: slug, Title: p.Title, CreatedAt: p.CreatedAt}, nil
}

func (s *service) commentView(op string, c Comment) (CommentView, error) {
	slug, err := s.comments.SlugOf(c)
	if err != nil {
		return CommentView{}, errx.E(op, errx.Internal, err)
	}
	postSlug, err := s.posts.SlugOf(Post{ID: c.PostID})
	if err != nil {
		return CommentView{}, errx.E(op, errx.Internal, err)
	}
	return CommentView{
		Slug:      slug,
		PostSlug:  postSlug,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}, nil
}

// mapFindError reports slugs that do not decode as NotFound, the same as
// slugs that decode to a missing row.
func mapFindError(op string, err error) error {
	if errors.Is(err, hashslug.ErrNotFound) {
		return errx.E(op, errx.NotFound, err)
	}
	return errx.E(op, errx.KindOf(err), err)
}

func validateText(field, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if n := utf8.RuneCountInString(value); n > maxLen {
		return fmt.Errorf("%s must be at most %d characters, got %d", field, maxLen, n)
	}
	return nil
}

// postLoader and commentLoader adapt Repository to hashslug.Repository.
type postLoader struct{ repo Repository }

func (l postLoader) FindByID(ctx context.Context, id int64) (Post, error) {
	return l.repo.GetPost(ctx, id)
}

type commentLoader struct{ repo Repository }

func (l commentLoader) FindByID(ctx context.Context, id int64) (Comment, error) {
	return l.repo.GetComment(ctx, id)
}
