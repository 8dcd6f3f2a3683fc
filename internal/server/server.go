package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/university/internal/config"
)

// Closer releases a resource owned by the server, such as the database pool.
type Closer interface {
	Close()
}

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	db     Closer
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates a server for router. database is closed on shutdown and
// may be nil.
func NewServer(cfg *config.Config, router *gin.Engine, database Closer, lgr zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		router: router,
		db:     database,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Run starts the HTTP server and blocks until ctx is done, SIGINT/SIGTERM is
// received or the listener fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		s.closeDB()
		return fmt.Errorf("error starting server: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("HTTP server listening")

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- s.http.Serve(listener)
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeDB()
			return fmt.Errorf("error serving: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	case <-ctx.Done():
		s.logger.Info().Msg("Context done, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shutdownErr error
	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		shutdownErr = fmt.Errorf("server shutdown completed with errors: %w", err)
	} else {
		s.logger.Info().Msg("HTTP server gracefully stopped.")
	}

	s.closeDB()
	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

func (s *Server) closeDB() {
	if s.db == nil {
		return
	}
	s.logger.Info().Msg("Closing database connection pool...")
	s.db.Close()
	s.db = nil
}
