// Package server exposes the plugin's command surface over HTTP so
// webhook-style chat hosts can dispatch commands without linking the plugin
// in-process.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/ThatCatDev/smutbot/internal/config"
	"github.com/ThatCatDev/smutbot/internal/plugin"
)

// Server is the smutbot HTTP command gateway.
type Server struct {
	cfg      *config.Config
	http     *http.Server
	registry *plugin.Registry
}

// New creates a Server hosting the given plugin.
func New(cfg *config.Config, p *plugin.Plugin) *Server {
	registry := plugin.NewRegistry()
	p.Register(registry)

	s := &Server{
		cfg:      cfg,
		registry: registry,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: withLogging(withCORS(mux)),
	}

	return s
}

// Start starts the server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	log.Printf("Smutbot gateway listening on %s", s.http.Addr)
	log.Printf("Cache dir: %s", s.cfg.CacheDir)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			log.Printf("Gateway shutdown error: %v", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
