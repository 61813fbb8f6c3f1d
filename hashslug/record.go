package hashslug

import "context"

// IdentifiedRecord is a record addressed by an integer id.
type IdentifiedRecord interface {
	RecordID() int64
}

// Repository loads records by id. Implementations report missing records
// with their own error.
type Repository[T any] interface {
	FindByID(ctx context.Context, id int64) (T, error)
}

// Finder binds a namespace codec to the repository of its records.
type Finder[T IdentifiedRecord] struct {
	codec *Codec
	repo  Repository[T]
}

// NewFinder returns a Finder resolving slugs with codec against repo.
func NewFinder[T IdentifiedRecord](codec *Codec, repo Repository[T]) *Finder[T] {
	return &Finder[T]{codec: codec, repo: repo}
}

// SlugOf returns the public slug of rec.
func (f *Finder[T]) SlugOf(rec T) (string, error) {
	return f.codec.Encode(rec.RecordID())
}

// FindBySlug decodes slug and loads the matching record. It returns
// ErrNotFound without touching the repository when slug does not decode.
func (f *Finder[T]) FindBySlug(ctx context.Context, slug string) (T, error) {
	id, ok := f.codec.Decode(slug)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return f.repo.FindByID(ctx, id)
}
