package blog

import "context"

// Repository defines the persistence operations for posts and comments.
// Records are addressed by their integer ids; slugs never reach storage.
type Repository interface {
	CreatePost(ctx context.Context, title string) (Post, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	CreateComment(ctx context.Context, postID int64, body string) (Comment, error)
	GetComment(ctx context.Context, id int64) (Comment, error)
	ListComments(ctx context.Context, postID int64) ([]Comment, error)
}
