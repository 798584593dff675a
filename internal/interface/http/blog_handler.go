package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blogcore/internal/application"
	"blogcore/internal/interface/middleware"
	"blogcore/pkg/apperr"
	"blogcore/pkg/response"
	"blogcore/pkg/validation"
)

// BlogHandler translates HTTP requests into lifecycle/query engine calls and
// typed errors back into status codes.
type BlogHandler struct {
	Svc    *application.BlogService
	Query  *application.BlogQueryService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, query *application.BlogQueryService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Query: query, Logger: logger}
}

// statusFor maps error kinds onto HTTP statuses. Drafts surface as 404, never
// 403, so their existence is indistinguishable from absence.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *BlogHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		msg = "internal server error"
	}
	response.Fail(c, status, msg, nil)
}

type createBlogRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Body        string   `json:"body"`
}

type updateBlogRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Body        *string   `json:"body"`
}

type updateStateRequest struct {
	State string `json:"state" binding:"required"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateBlogInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, b, "blog created")
}

func (h *BlogHandler) UpdateContent(c *gin.Context) {
	var req updateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.UpdateContent(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), application.UpdateBlogInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b, "blog updated")
}

func (h *BlogHandler) UpdateState(c *gin.Context) {
	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.UpdateState(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), req.State)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b, "blog state updated")
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON[any](c, http.StatusOK, nil, "blog deleted")
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func (h *BlogHandler) ListPublished(c *gin.Context) {
	items, meta, err := h.Query.ListPublished(c.Request.Context(), application.ListQuery{
		Search:  c.Query("search"),
		OrderBy: c.Query("order_by"),
		Order:   c.Query("order"),
		Page:    intQuery(c, "page"),
		Limit:   intQuery(c, "limit"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"blogs": items, "pagination": meta}, "published blogs")
}

func (h *BlogHandler) GetPublished(c *gin.Context) {
	b, err := h.Query.GetPublishedByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b, "blog")
}

func (h *BlogHandler) ListMine(c *gin.Context) {
	items, meta, err := h.Query.ListMine(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.MineQuery{
		State: c.Query("state"),
		Page:  intQuery(c, "page"),
		Limit: intQuery(c, "limit"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"blogs": items, "pagination": meta}, "my blogs")
}
