package blog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/balping/hashslug/internal/errx"
)

// memRepo is an in-memory Repository with sequential ids.
type memRepo struct {
	mu       sync.Mutex
	posts    map[int64]Post
	comments map[int64]Comment
	lookups  int
	err      error
}

func newMemRepo() *memRepo {
	return &memRepo{posts: map[int64]Post{}, comments: map[int64]Comment{}}
}

func (m *memRepo) CreatePost(_ context.Context, title string) (Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Post{}, m.err
	}
	now := time.Now().UTC()
	p := Post{ID: int64(len(m.posts) + 1), Title: title, CreatedAt: now, UpdatedAt: now}
	m.posts[p.ID] = p
	return p, nil
}

func (m *memRepo) GetPost(_ context.Context, id int64) (Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.err != nil {
		return Post{}, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return Post{}, errx.E("memRepo.GetPost", errx.NotFound, errors.New("no rows"))
	}
	return p, nil
}

func (m *memRepo) CreateComment(_ context.Context, postID int64, body string) (Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postID]; !ok {
		return Comment{}, errx.E("memRepo.CreateComment", errx.NotFound, errors.New("fk violation"))
	}
	now := time.Now().UTC()
	c := Comment{ID: int64(len(m.comments) + 1), PostID: postID, Body: body, CreatedAt: now, UpdatedAt: now}
	m.comments[c.ID] = c
	return c, nil
}

func (m *memRepo) GetComment(_ context.Context, id int64) (Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return Comment{}, errx.E("memRepo.GetComment", errx.NotFound, errors.New("no rows"))
	}
	return c, nil
}

func (m *memRepo) ListComments(_ context.Context, postID int64) ([]Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Comment
	for id := int64(1); id <= int64(len(m.comments)); id++ {
		if c := m.comments[id]; c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}
