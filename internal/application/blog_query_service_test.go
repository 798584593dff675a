package application_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcore/internal/application"
	"blogcore/internal/domain/entity"
	"blogcore/pkg/apperr"
)

func newQueryService(repo *fakeBlogRepo) *application.BlogQueryService {
	return application.NewBlogQueryService(repo, testLogger())
}

func seedBlog(t *testing.T, repo *fakeBlogRepo, title, author string, state entity.BlogState, readCount int64) *entity.Blog {
	t.Helper()
	b := &entity.Blog{
		Title:       title,
		Body:        "body of " + title,
		AuthorID:    author,
		State:       state,
		ReadCount:   readCount,
		ReadingTime: 1,
		Tags:        []string{},
	}
	require.NoError(t, repo.Insert(context.Background(), b))
	return b
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	repo := newFakeBlogRepo()
	seedBlog(t, repo, "Visible", "author-1", entity.StatePublished, 0)
	draft := seedBlog(t, repo, "Hidden draft", "author-1", entity.StateDraft, 0)

	items, meta, err := newQueryService(repo).ListPublished(context.Background(), application.ListQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, items, 1)
	assert.Equal(t, "Visible", items[0].Title)
	for _, it := range items {
		assert.NotEqual(t, draft.ID, it.ID)
	}
}

func TestListPublishedPagination(t *testing.T) {
	repo := newFakeBlogRepo()
	for i := 0; i < 25; i++ {
		seedBlog(t, repo, fmt.Sprintf("Post %02d", i), "author-1", entity.StatePublished, 0)
	}
	svc := newQueryService(repo)

	for page, wantLen := range map[int]int{1: 10, 2: 10, 3: 5} {
		items, meta, err := svc.ListPublished(context.Background(), application.ListQuery{Page: page, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, items, wantLen, "page %d", page)
		assert.Equal(t, int64(25), meta.Total)
		assert.Equal(t, 3, meta.Pages)
		assert.Equal(t, page, meta.Page)
		assert.Equal(t, 10, meta.Limit)
	}
}

func TestListPublishedClampsInvalidPaging(t *testing.T) {
	repo := newFakeBlogRepo()
	seedBlog(t, repo, "Only one", "author-1", entity.StatePublished, 0)
	svc := newQueryService(repo)

	_, meta, err := svc.ListPublished(context.Background(), application.ListQuery{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 20, meta.Limit)

	_, meta, err = svc.ListPublished(context.Background(), application.ListQuery{Page: 1, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, meta.Limit)
}

func TestListPublishedSearchIsCaseInsensitiveSubstring(t *testing.T) {
	repo := newFakeBlogRepo()
	seedBlog(t, repo, "NodeJS Tutorial", "author-1", entity.StatePublished, 0)
	seedBlog(t, repo, "Python Guide", "author-1", entity.StatePublished, 0)

	items, meta, err := newQueryService(repo).ListPublished(context.Background(), application.ListQuery{Search: "nodejs"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, items, 1)
	assert.Equal(t, "NodeJS Tutorial", items[0].Title)
}

func TestListPublishedOrderByReadCountDesc(t *testing.T) {
	repo := newFakeBlogRepo()
	for i, rc := range []int64{3, 42, 7, 0, 19} {
		seedBlog(t, repo, fmt.Sprintf("Post %d", i), "author-1", entity.StatePublished, rc)
	}

	items, _, err := newQueryService(repo).ListPublished(context.Background(), application.ListQuery{
		OrderBy: "read_count", Order: "desc",
	})

	require.NoError(t, err)
	require.Len(t, items, 5)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].ReadCount, items[i].ReadCount)
	}
}

func TestListPublishedUnknownOrderFallsBack(t *testing.T) {
	repo := newFakeBlogRepo()
	first := seedBlog(t, repo, "Older", "author-1", entity.StatePublished, 0)
	second := seedBlog(t, repo, "Newer", "author-1", entity.StatePublished, 0)

	items, _, err := newQueryService(repo).ListPublished(context.Background(), application.ListQuery{
		OrderBy: "password_hash; DROP TABLE blogs",
	})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "default order is created_at desc")
	assert.Equal(t, first.ID, items[1].ID)
}

func TestGetPublishedByIDIncrementsAndExpandsAuthor(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.addAuthor("author-1", entity.Author{FirstName: "Ada", LastName: "Lovelace"})
	b := seedBlog(t, repo, "Readable", "author-1", entity.StatePublished, 0)
	svc := newQueryService(repo)

	got, err := svc.GetPublishedByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ReadCount, "count reflects the state after the increment")
	require.NotNil(t, got.Author)
	assert.Equal(t, "Ada", got.Author.FirstName)
	assert.Equal(t, "Lovelace", got.Author.LastName)

	got, err = svc.GetPublishedByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ReadCount)
}

func TestGetPublishedByIDHidesDrafts(t *testing.T) {
	repo := newFakeBlogRepo()
	draft := seedBlog(t, repo, "Secret draft", "author-1", entity.StateDraft, 0)
	svc := newQueryService(repo)

	_, err := svc.GetPublishedByID(context.Background(), draft.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "draft must look exactly like a missing post")

	_, err = svc.GetPublishedByID(context.Background(), "no-such-id")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	stored, err := repo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.ReadCount, "failed reads never bump the counter")
}

func TestConcurrentReadsLoseNoIncrements(t *testing.T) {
	repo := newFakeBlogRepo()
	b := seedBlog(t, repo, "Hot post", "author-1", entity.StatePublished, 0)
	svc := newQueryService(repo)

	const readers = 50
	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.GetPublishedByID(context.Background(), b.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(readers), stored.ReadCount)
}

func TestListMineRequiresCaller(t *testing.T) {
	repo := newFakeBlogRepo()
	_, _, err := newQueryService(repo).ListMine(context.Background(), "", application.MineQuery{})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestListMineReturnsAllStatesForOwner(t *testing.T) {
	repo := newFakeBlogRepo()
	seedBlog(t, repo, "My draft", "author-1", entity.StateDraft, 0)
	seedBlog(t, repo, "My published", "author-1", entity.StatePublished, 0)
	seedBlog(t, repo, "Someone else's", "author-2", entity.StatePublished, 0)
	svc := newQueryService(repo)

	items, meta, err := svc.ListMine(context.Background(), "author-1", application.MineQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	for _, it := range items {
		assert.Equal(t, "author-1", it.AuthorID)
	}
}

func TestListMineStateFilter(t *testing.T) {
	repo := newFakeBlogRepo()
	seedBlog(t, repo, "My draft", "author-1", entity.StateDraft, 0)
	seedBlog(t, repo, "My published", "author-1", entity.StatePublished, 0)
	svc := newQueryService(repo)

	items, _, err := svc.ListMine(context.Background(), "author-1", application.MineQuery{State: "draft"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "My draft", items[0].Title)

	// unknown filter values are ignored, same policy as paging clamps
	items, _, err = svc.ListMine(context.Background(), "author-1", application.MineQuery{State: "bogus"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
