package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gega19/barber-app-backoffice-sub001/internal/cache"
	"github.com/gega19/barber-app-backoffice-sub001/internal/config"
	dbpkg "github.com/gega19/barber-app-backoffice-sub001/internal/db"
	"github.com/gega19/barber-app-backoffice-sub001/internal/logger"
	"github.com/gega19/barber-app-backoffice-sub001/internal/middleware"
	"github.com/gega19/barber-app-backoffice-sub001/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New()

	db := dbpkg.NewDB(cfg)

	ch := cache.New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := ch.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, stats cache and token denylist degraded")
	}
	cancel()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/app/login")
	})

	routes.RegisterRoutes(r, db, cfg, ch, log)

	log.Info().Str("addr", cfg.Addr()).Msg("backoffice server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
