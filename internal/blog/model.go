package blog

import "time"

// Post is a blog post addressed publicly by its slug.
type Post struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Post) RecordID() int64 { return p.ID }

// Comment belongs to a Post and has its own slug namespace.
type Comment struct {
	ID        int64
	PostID    int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Comment) RecordID() int64 { return c.ID }
