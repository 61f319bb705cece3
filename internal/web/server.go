// Package web hosts the invitation site: the public page, the admin-gated
// edit flow, and the update event stream.
package web

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// shutdownTimeout caps the graceful drain on shutdown.
const shutdownTimeout = 5 * time.Second

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr  string
	AdminCode string
	// JWTKey signs the admin grant cookie. When empty a random per-process
	// key is generated; grants then reset on restart, which is acceptable
	// for a UI gate.
	JWTKey  []byte
	Service DetailsService
}

// Server hosts the invitation HTTP server.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.Service == nil {
		return nil, errors.New("details service is required")
	}
	if strings.TrimSpace(config.AdminCode) == "" {
		return nil, errors.New("admin code is required")
	}
	key := config.JWTKey
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}

	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(config.Service, config.AdminCode, key))

	return &Server{
		httpServer: &http.Server{
			Addr:    httpAddr,
			Handler: mux,
		},
	}, nil
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe serves until the context is cancelled, then drains
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}
