package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lorenzodc/catalyst-api/config"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	log        *logger.Logger
	cfg        *config.Config
}

// NewServer creates a new HTTP server.
func NewServer(router *gin.Engine, cfg *config.Config, log *logger.Logger) *Server {
	return &Server{
		router: router,
		log:    log,
		cfg:    cfg,
	}
}

// Start runs the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	port := s.cfg.App.Port
	s.httpServer = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("Starting server on port %s", port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown performs a graceful shutdown. Safe to call before Start has
// built the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Server is shutting down...")
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
