package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"blogcore/internal/domain/entity"
	"blogcore/internal/domain/repository"
	"blogcore/pkg/apperr"
)

// BlogService is the write side of the blog domain: creation, content and
// state mutation, deletion. Every mutating call is gated on ownership before
// touching the store.
type BlogService struct {
	Blogs  repository.BlogRepository
	Logger *logrus.Logger
}

func NewBlogService(blogs repository.BlogRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Blogs: blogs, Logger: logger}
}

type CreateBlogInput struct {
	Title       string
	Description string
	Tags        []string
	Body        string
}

// UpdateBlogInput carries a partial update; nil means "leave unchanged".
type UpdateBlogInput struct {
	Title       *string
	Description *string
	Tags        *[]string
	Body        *string
}

func (s *BlogService) Create(ctx context.Context, authorID string, in CreateBlogInput) (*entity.Blog, error) {
	if authorID == "" {
		return nil, apperr.Unauthorized("authentication required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, apperr.Validation("body is required")
	}

	b := &entity.Blog{
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		Body:        in.Body,
		AuthorID:    authorID,
		State:       entity.StateDraft,
		ReadCount:   0,
		ReadingTime: entity.ReadingTime(in.Body),
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}

	if err := s.Blogs.Insert(ctx, b); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"blog_id": b.ID, "author_id": authorID}).Info("blog created")
	return b, nil
}

// ownedBlog loads a post and enforces the capability check shared by every
// mutating operation.
func (s *BlogService) ownedBlog(ctx context.Context, id, callerID string) (*entity.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.OwnedBy(callerID) {
		return nil, apperr.Forbidden("only the author can modify this blog")
	}
	return b, nil
}

func (s *BlogService) UpdateContent(ctx context.Context, id, callerID string, in UpdateBlogInput) (*entity.Blog, error) {
	b, err := s.ownedBlog(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Tags != nil {
		b.Tags = *in.Tags
		if b.Tags == nil {
			b.Tags = []string{}
		}
	}
	if in.Body != nil {
		if strings.TrimSpace(*in.Body) == "" {
			return nil, apperr.Validation("body must not be empty")
		}
		b.Body = *in.Body
		b.ReadingTime = entity.ReadingTime(b.Body)
	}

	if err := s.Blogs.Replace(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateState toggles draft <-> published. Setting the current state again is
// a no-op success, not an error.
func (s *BlogService) UpdateState(ctx context.Context, id, callerID, target string) (*entity.Blog, error) {
	state, ok := entity.ParseBlogState(target)
	if !ok {
		return nil, apperr.Validation("state must be draft or published")
	}

	b, err := s.ownedBlog(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if b.State == state {
		return b, nil
	}

	b.State = state
	if err := s.Blogs.Replace(ctx, b); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"blog_id": b.ID, "state": state}).Info("blog state changed")
	return b, nil
}

func (s *BlogService) Delete(ctx context.Context, id, callerID string) error {
	b, err := s.ownedBlog(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := s.Blogs.Delete(ctx, b.ID); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"blog_id": b.ID, "author_id": callerID}).Info("blog deleted")
	return nil
}
