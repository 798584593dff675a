package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"blogcore/internal/domain/entity"
	"blogcore/internal/domain/repository"
	"blogcore/pkg/apperr"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// BlogQueryService is the read side: public listing, single-post retrieval
// with the read-count increment, and the author's own listing.
type BlogQueryService struct {
	Blogs  repository.BlogRepository
	Logger *logrus.Logger
}

func NewBlogQueryService(blogs repository.BlogRepository, logger *logrus.Logger) *BlogQueryService {
	return &BlogQueryService{Blogs: blogs, Logger: logger}
}

// ListQuery carries raw listing parameters. Invalid values clamp to defaults
// rather than erroring.
type ListQuery struct {
	Search  string
	OrderBy string
	Order   string
	Page    int
	Limit   int
}

// MineQuery filters the caller's own posts; State outside the enumeration is
// ignored, same policy as pagination clamping.
type MineQuery struct {
	State string
	Page  int
	Limit int
}

// PageMeta is the pagination block returned alongside every listing.
type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func pageMeta(total int64, page, limit int) PageMeta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{Total: total, Page: page, Limit: limit, Pages: pages}
}

// ListPublished always restricts to published posts; search is a
// case-insensitive substring match on the title.
func (s *BlogQueryService) ListPublished(ctx context.Context, q ListQuery) ([]entity.Blog, PageMeta, error) {
	page, limit := clampPage(q.Page, q.Limit)

	orderBy := q.OrderBy
	if _, ok := map[string]bool{
		repository.OrderCreatedAt:   true,
		repository.OrderReadCount:   true,
		repository.OrderTitle:       true,
		repository.OrderReadingTime: true,
	}[orderBy]; !ok {
		orderBy = repository.OrderCreatedAt
	}
	desc := q.Order != "asc"

	items, total, err := s.Blogs.FindMany(ctx,
		repository.BlogFilter{State: entity.StatePublished, TitleSearch: q.Search},
		repository.BlogSort{OrderBy: orderBy, Desc: desc, Skip: (page - 1) * limit, Limit: limit},
	)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, pageMeta(total, page, limit), nil
}

// GetPublishedByID returns a published post after atomically incrementing its
// read count. Drafts and missing ids both come back as not found so draft
// existence never leaks.
func (s *BlogQueryService) GetPublishedByID(ctx context.Context, id string) (*entity.Blog, error) {
	return s.Blogs.IncrementReadCount(ctx, id)
}

// ListMine returns the caller's posts in any state, newest first.
func (s *BlogQueryService) ListMine(ctx context.Context, callerID string, q MineQuery) ([]entity.Blog, PageMeta, error) {
	if callerID == "" {
		return nil, PageMeta{}, apperr.Unauthorized("authentication required")
	}
	page, limit := clampPage(q.Page, q.Limit)

	filter := repository.BlogFilter{AuthorID: callerID}
	if state, ok := entity.ParseBlogState(q.State); ok {
		filter.State = state
	}

	items, total, err := s.Blogs.FindMany(ctx, filter,
		repository.BlogSort{OrderBy: repository.OrderCreatedAt, Desc: true, Skip: (page - 1) * limit, Limit: limit},
	)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, pageMeta(total, page, limit), nil
}
