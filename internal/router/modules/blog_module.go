package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "blogcore/internal/interface/http"
	"blogcore/internal/interface/middleware"
	"blogcore/pkg/helpers"
)

// BlogModule wires the blog routes.
// Public: GET /api/blogs, GET /api/blogs/:id
// Protected: POST /api/blogs, GET /api/blogs/me, PATCH /api/blogs/:id,
// PATCH /api/blogs/:id/state, DELETE /api/blogs/:id
type BlogModule struct {
	Handler *handlers.BlogHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewBlogModule(h *handlers.BlogHandler, jwt *helpers.JWTManager, rdb *redis.Client) *BlogModule {
	return &BlogModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP())

	rg.GET("/blogs", publicLimiter, m.Handler.ListPublished)
	rg.GET("/blogs/:id", publicLimiter, m.Handler.GetPublished)

	auth := rg.Group("/blogs")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/me", m.Handler.ListMine)
		auth.PATCH("/:id", m.Handler.UpdateContent)
		auth.PATCH("/:id/state", m.Handler.UpdateState)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
