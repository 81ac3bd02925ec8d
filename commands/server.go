package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"logview/dashboard"
	"logview/handlers"
	"logview/hub"
	"logview/middleware"
	"logview/models"
)

const shutdownTimeout = 5 * time.Second

func newDashboardEngine(view *dashboard.View, h *hub.Hub, defaults models.FilterCriteria) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/", handlers.Index(view, defaults))
	r.GET("/health", handlers.HealthCheck)
	r.GET("/ws", handlers.LiveUpdates(h))

	api := r.Group("/api")
	api.GET("/dashboard", handlers.GetDashboard(view, defaults))
	api.GET("/entries", handlers.GetEntries(view, defaults))
	api.GET("/export", handlers.ExportLogs(view, defaults))
	api.POST("/refresh", handlers.RefreshLogs(view))

	return r
}

func newSourceEngine(store handlers.LogStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.POST("/logs", handlers.IngestLogs(store))
	api.GET("/logs", handlers.GetLogs(store))
	api.GET("/logs/statistics", handlers.GetStatistics(store))

	return r
}

// serveHTTP runs srv in g and shuts it down once ctx is done.
func serveHTTP(ctx context.Context, g *errgroup.Group, srv *http.Server) {
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Str("addr", srv.Addr).Msg("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
}
