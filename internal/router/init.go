package router

import (
	"blogcore/internal/application"
	"blogcore/internal/container"
	pginfra "blogcore/internal/infrastructure/postgres"
	handlers "blogcore/internal/interface/http"
	"blogcore/internal/router/modules"
)

// InitModules builds every feature module from container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	blogRepo := pginfra.NewBlogRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		cfg.AppName,
	)
	blogSvc := application.NewBlogService(blogRepo, logger)
	blogQuery := application.NewBlogQueryService(blogRepo, logger)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	blogHandler := handlers.NewBlogHandler(blogSvc, blogQuery, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT(), container.GetRedis()))
	r.Add(modules.NewBlogModule(blogHandler, container.GetJWT(), container.GetRedis()))
}
