package repository

import (
	"context"

	"blogcore/internal/domain/entity"
)

// Sort columns the blog listing accepts. Anything else falls back to
// OrderCreatedAt at the query layer.
const (
	OrderCreatedAt   = "created_at"
	OrderReadCount   = "read_count"
	OrderTitle       = "title"
	OrderReadingTime = "reading_time"
)

// BlogFilter narrows a listing scan. Zero values mean "no constraint".
type BlogFilter struct {
	AuthorID    string
	State       entity.BlogState
	TitleSearch string // case-insensitive substring on title
}

// BlogSort describes ordering plus the skip/limit window of a scan.
type BlogSort struct {
	OrderBy string
	Desc    bool
	Skip    int
	Limit   int
}

// BlogRepository is the durable-store contract the engines depend on:
// get-by-id, insert, full replace, delete, atomic increment, and
// filtered/sorted/paginated scans with a total count.
type BlogRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	Insert(ctx context.Context, b *entity.Blog) error
	Replace(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id string) error

	// IncrementReadCount atomically bumps read_count for a published post and
	// returns the row as it exists after the increment, author expanded.
	// Drafts and missing ids are both reported as not found.
	IncrementReadCount(ctx context.Context, id string) (*entity.Blog, error)

	FindMany(ctx context.Context, f BlogFilter, s BlogSort) ([]entity.Blog, int64, error)
}
