package application_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"blogcore/internal/domain/entity"
	"blogcore/internal/domain/repository"
	"blogcore/pkg/apperr"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// MockBlogRepository is a testify mock for interaction-style tests.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Blog), args.Error(1)
}

func (m *MockBlogRepository) Insert(ctx context.Context, b *entity.Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBlogRepository) Replace(ctx context.Context, b *entity.Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) IncrementReadCount(ctx context.Context, id string) (*entity.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Blog), args.Error(1)
}

func (m *MockBlogRepository) FindMany(ctx context.Context, f repository.BlogFilter, s repository.BlogSort) ([]entity.Blog, int64, error) {
	args := m.Called(ctx, f, s)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Blog), args.Get(1).(int64), args.Error(2)
}

var _ repository.BlogRepository = (*MockBlogRepository)(nil)

// fakeBlogRepo is an in-memory store honoring the repository contract,
// including atomic increments and filtered/sorted/paginated scans. Used where
// behavior across many documents matters more than call interactions.
type fakeBlogRepo struct {
	mu      sync.Mutex
	seq     int
	blogs   map[string]*entity.Blog
	authors map[string]entity.Author
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{
		blogs:   make(map[string]*entity.Blog),
		authors: make(map[string]entity.Author),
	}
}

func (f *fakeBlogRepo) addAuthor(id string, a entity.Author) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authors[id] = a
}

func copyBlog(b *entity.Blog) *entity.Blog {
	cp := *b
	cp.Tags = append([]string(nil), b.Tags...)
	return &cp
}

func (f *fakeBlogRepo) GetByID(_ context.Context, id string) (*entity.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, apperr.NotFound("blog not found")
	}
	return copyBlog(b), nil
}

func (f *fakeBlogRepo) Insert(_ context.Context, b *entity.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	b.ID = fmt.Sprintf("blog-%03d", f.seq)
	// deterministic, strictly increasing creation times
	b.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Minute)
	b.UpdatedAt = b.CreatedAt
	f.blogs[b.ID] = copyBlog(b)
	return nil
}

func (f *fakeBlogRepo) Replace(_ context.Context, b *entity.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.blogs[b.ID]
	if !ok {
		return apperr.NotFound("blog not found")
	}
	b.UpdatedAt = stored.UpdatedAt.Add(time.Minute)
	cp := copyBlog(b)
	cp.AuthorID = stored.AuthorID // ownership reference never drifts
	f.blogs[b.ID] = cp
	return nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blogs[id]; !ok {
		return apperr.NotFound("blog not found")
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogRepo) IncrementReadCount(_ context.Context, id string) (*entity.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok || b.State != entity.StatePublished {
		return nil, apperr.NotFound("blog not found")
	}
	b.ReadCount++
	out := copyBlog(b)
	if a, ok := f.authors[b.AuthorID]; ok {
		out.Author = &a
	}
	return out, nil
}

func (f *fakeBlogRepo) FindMany(_ context.Context, filter repository.BlogFilter, s repository.BlogSort) ([]entity.Blog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]entity.Blog, 0, len(f.blogs))
	for _, b := range f.blogs {
		if filter.State != "" && b.State != filter.State {
			continue
		}
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		if filter.TitleSearch != "" &&
			!strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.TitleSearch)) {
			continue
		}
		matched = append(matched, *copyBlog(b))
	}

	less := func(a, b entity.Blog) bool {
		switch s.OrderBy {
		case repository.OrderReadCount:
			return a.ReadCount < b.ReadCount
		case repository.OrderTitle:
			return a.Title < b.Title
		case repository.OrderReadingTime:
			return a.ReadingTime < b.ReadingTime
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if s.Desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	total := int64(len(matched))
	if s.Skip >= len(matched) {
		return []entity.Blog{}, total, nil
	}
	matched = matched[s.Skip:]
	if s.Limit > 0 && len(matched) > s.Limit {
		matched = matched[:s.Limit]
	}
	return matched, total, nil
}

var _ repository.BlogRepository = (*fakeBlogRepo)(nil)
