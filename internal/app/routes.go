package app

import (
	"time"

	"github.com/briefbox/brief-core/internal/middleware"
	"github.com/briefbox/brief-core/internal/modules/history"
	"github.com/briefbox/brief-core/internal/modules/summarize"
	pkgredis "github.com/briefbox/brief-core/internal/pkg/redis"
	"github.com/briefbox/brief-core/internal/pkg/response"
	"github.com/briefbox/brief-core/internal/store"
	"github.com/gin-gonic/gin"
)

var processStart = time.Now()

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/healthz", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":   "brief-core",
			"status": "ok",
			"uptime": time.Since(processStart).Truncate(time.Second).String(),
		})
	})

	r.Use(middleware.RateLimit(rc.Raw()))

	requestStore := store.NewRequestStore(a.db)
	generator := summarize.NewGenerator(a.cfg.AI)
	summarizeSvc := summarize.NewService(requestStore, generator, a.cfg.Limits.MaxTextChars, a.logger)
	historySvc := history.NewService(requestStore)

	// Every API route sits behind the auth gate.
	api := r.Group("/api", middleware.Auth(a.logger))
	summarize.NewHandler(summarizeSvc).RegisterRoutes(api)
	history.NewHandler(historySvc, rc).RegisterRoutes(api)
}
