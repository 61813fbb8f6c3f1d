package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/balping/hashslug/internal/db"
	"github.com/balping/hashslug/internal/errx"
)

// querier is an internal interface that abstracts *db.Queries
type querier interface {
	CreatePost(ctx context.Context, title string) (db.Post, error)
	GetPost(ctx context.Context, id int64) (db.Post, error)
	CreateComment(ctx context.Context, arg db.CreateCommentParams) (db.Comment, error)
	GetComment(ctx context.Context, id int64) (db.Comment, error)
	ListCommentsByPost(ctx context.Context, postID int64) ([]db.Comment, error)
}

type repo struct {
	q querier
}

// NewRepository creates a PostgreSQL-backed Repository.
func NewRepository(q querier) Repository {
	return &repo{q: q}
}

func mustTime(ts pgtype.Timestamptz, field string) (time.Time, error) {
	if !ts.Valid {
		return time.Time{}, fmt.Errorf("%s unexpectedly NULL", field)
	}
	return ts.Time, nil
}

func toDomainPost(x db.Post) (Post, error) {
	createdAt, err := mustTime(x.CreatedAt, "created_at")
	if err != nil {
		return Post{}, err
	}
	updatedAt, err := mustTime(x.UpdatedAt, "updated_at")
	if err != nil {
		return Post{}, err
	}
	return Post{
		ID:        x.ID,
		Title:     x.Title,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func toDomainComment(x db.Comment) (Comment, error) {
	createdAt, err := mustTime(x.CreatedAt, "created_at")
	if err != nil {
		return Comment{}, err
	}
	updatedAt, err := mustTime(x.UpdatedAt, "updated_at")
	if err != nil {
		return Comment{}, err
	}
	return Comment{
		ID:        x.ID,
		PostID:    x.PostID,
		Body:      x.Body,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errx.E(op, errx.NotFound, err)

	case isMissingPostViolation(err):
		return errx.E(op, errx.NotFound, err)

	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

func (r *repo) CreatePost(ctx context.Context, title string) (Post, error) {
	const op = "blog.repo.CreatePost"

	row, err := r.q.CreatePost(ctx, title)
	if err != nil {
		return Post{}, mapRepoError(op, err)
	}
	post, err := toDomainPost(row)
	if err != nil {
		return Post{}, errx.E(op, errx.Internal, err)
	}
	return post, nil
}

func (r *repo) GetPost(ctx context.Context, id int64) (Post, error) {
	const op = "blog.repo.GetPost"

	row, err := r.q.GetPost(ctx, id)
	if err != nil {
		return Post{}, mapRepoError(op, err)
	}
	post, err := toDomainPost(row)
	if err != nil {
		return Post{}, errx.E(op, errx.Internal, err)
	}
	return post, nil
}

func (r *repo) CreateComment(ctx context.Context, postID int64, body string) (Comment, error) {
	const op = "blog.repo.CreateComment"

	row, err := r.q.CreateComment(ctx, db.CreateCommentParams{
		PostID: postID,
		Body:   body,
	})
	if err != nil {
		return Comment{}, mapRepoError(op, err)
	}
	comment, err := toDomainComment(row)
	if err != nil {
		return Comment{}, errx.E(op, errx.Internal, err)
	}
	return comment, nil
}

func (r *repo) GetComment(ctx context.Context, id int64) (Comment, error) {
	const op = "blog.repo.GetComment"

	row, err := r.q.GetComment(ctx, id)
	if err != nil {
		return Comment{}, mapRepoError(op, err)
	}
	comment, err := toDomainComment(row)
	if err != nil {
		return Comment{}, errx.E(op, errx.Internal, err)
	}
	return comment, nil
}

func (r *repo) ListComments(ctx context.Context, postID int64) ([]Comment, error) {
	const op = "blog.repo.ListComments"

	rows, err := r.q.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, errx.E(op, errx.Unavailable, err)
	}

	comments := make([]Comment, 0, len(rows))
	for _, row := range rows {
		c, err := toDomainComment(row)
		if err != nil {
			return nil, errx.E(op, errx.Internal, err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}
