package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogcore/internal/domain/entity"
	"blogcore/internal/domain/repository"
	"blogcore/pkg/apperr"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, description, tags, body, author_id, state, read_count, reading_time, created_at, updated_at`

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{}
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Tags, &b.Body, &b.AuthorID,
		&b.State, &b.ReadCount, &b.ReadingTime, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("blog not found")
		}
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	return scanBlog(row)
}

func (r *BlogRepository) Insert(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, description, tags, body, author_id, state, read_count, reading_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Description, b.Tags, b.Body, b.AuthorID, b.State, b.ReadCount, b.ReadingTime)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Replace writes every mutable field. author_id is intentionally absent from
// the SET list so the ownership reference can never drift.
func (r *BlogRepository) Replace(ctx context.Context, b *entity.Blog) error {
	b.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE blogs
		SET title = $1, description = $2, tags = $3, body = $4, state = $5,
		    reading_time = $6, updated_at = $7
		WHERE id = $8
	`, b.Title, b.Description, b.Tags, b.Body, b.State, b.ReadingTime, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("blog not found")
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("blog not found")
	}
	return nil
}

// IncrementReadCount performs the read-side increment as a single atomic
// UPDATE so concurrent readers never lose an update. Only published rows
// match; a draft id and a missing id are indistinguishable to the caller.
func (r *BlogRepository) IncrementReadCount(ctx context.Context, id string) (*entity.Blog, error) {
	b := &entity.Blog{Author: &entity.Author{}}
	row := r.pool.QueryRow(ctx, `
		UPDATE blogs b
		SET read_count = b.read_count + 1
		FROM users u
		WHERE b.id = $1 AND b.state = 'published' AND u.id = b.author_id
		RETURNING b.id, b.title, b.description, b.tags, b.body, b.author_id,
		          b.state, b.read_count, b.reading_time, b.created_at, b.updated_at,
		          u.first_name, u.last_name
	`, id)

	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Tags, &b.Body, &b.AuthorID,
		&b.State, &b.ReadCount, &b.ReadingTime, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.FirstName, &b.Author.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("blog not found")
		}
		return nil, err
	}
	return b, nil
}

// orderColumns whitelists sortable columns; anything else is replaced by
// created_at before reaching the query text.
var orderColumns = map[string]string{
	repository.OrderCreatedAt:   "created_at",
	repository.OrderReadCount:   "read_count",
	repository.OrderTitle:       "title",
	repository.OrderReadingTime: "reading_time",
}

func (r *BlogRepository) FindMany(ctx context.Context, f repository.BlogFilter, s repository.BlogSort) ([]entity.Blog, int64, error) {
	where := " WHERE 1=1"
	args := []any{}

	if f.State != "" {
		args = append(args, f.State)
		where += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		where += fmt.Sprintf(" AND author_id = $%d", len(args))
	}
	if f.TitleSearch != "" {
		// wildcards in the search term are literal characters, not patterns
		needle := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(f.TitleSearch)
		args = append(args, "%"+needle+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM blogs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := orderColumns[s.OrderBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}

	args = append(args, s.Limit, s.Skip)
	query := fmt.Sprintf(`SELECT %s FROM blogs%s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		blogColumns, where, col, dir, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entity.Blog, 0, s.Limit)
	for rows.Next() {
		b := entity.Blog{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Tags, &b.Body, &b.AuthorID,
			&b.State, &b.ReadCount, &b.ReadingTime, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
