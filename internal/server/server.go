package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kevinmichaelchen/showcase/internal/config"
	"github.com/kevinmichaelchen/showcase/internal/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server exposes the project pipeline over HTTP for the portfolio front end.
type Server struct {
	cfg    *config.Config
	src    pipeline.Source
	router *gin.Engine
	log    zerolog.Logger
}

func New(cfg *config.Config, src pipeline.Source) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		src:    src,
		router: gin.New(),
		log:    log.With().Str("component", "server").Logger(),
	}

	s.router.Use(gin.Recovery(), s.requestLogger())
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api")
	{
		api.GET("/projects", s.listProjects)
		api.GET("/projects/:name", s.getProject)
		api.GET("/technologies", s.listTechnologies)
		api.GET("/categories", s.listCategories)
		api.GET("/placeholder/:width/:height", s.placeholder)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then gives outstanding requests 30
// seconds to finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.ListenAddr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("Server exited")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
