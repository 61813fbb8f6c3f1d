package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries runs the blog statements against a DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Post struct {
	ID        int64
	Title     string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Comment struct {
	ID        int64
	PostID    int64
	Body      string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

const createPost = `
INSERT INTO posts (title)
VALUES ($1)
RETURNING id, title, created_at, updated_at
`

func (q *Queries) CreatePost(ctx context.Context, title string) (Post, error) {
	row := q.db.QueryRow(ctx, createPost, title)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPost = `
SELECT id, title, created_at, updated_at
FROM posts
WHERE id = $1
`

func (q *Queries) GetPost(ctx context.Context, id int64) (Post, error) {
	row := q.db.QueryRow(ctx, getPost, id)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createComment = `
INSERT INTO comments (post_id, body)
VALUES ($1, $2)
RETURNING id, post_id, body, created_at, updated_at
`

type CreateCommentParams struct {
	PostID int64
	Body   string
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRow(ctx, createComment, arg.PostID, arg.Body)
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getComment = `
SELECT id, post_id, body, created_at, updated_at
FROM comments
WHERE id = $1
`

func (q *Queries) GetComment(ctx context.Context, id int64) (Comment, error) {
	row := q.db.QueryRow(ctx, getComment, id)
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// The select list must stay in Comment's field order; rows are mapped to it
// by position.
const listCommentsByPost = `
SELECT id, post_id, body, created_at, updated_at
FROM comments
WHERE post_id = $1
ORDER BY id
`

func (q *Queries) ListCommentsByPost(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := q.db.Query(ctx, listCommentsByPost, postID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Comment])
}
