// Package server exposes the editing surface over HTTP: project and slide
// endpoints, per-slide rendered fragments, document export, and a websocket
// feed that invalidates clients when the live project changes. The router's
// Recoverer middleware is the unhandled-panic boundary for every handler.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deckweaver/deckweaver/internal/library"
	"github.com/deckweaver/deckweaver/internal/store"
	"github.com/deckweaver/deckweaver/internal/syncer"
)

// Config holds server configuration.
type Config struct {
	Listen   string
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves one editor session.
type Server struct {
	cfg        Config
	live       *store.Store
	library    *library.Store
	engine     *syncer.Engine // nil when sync is disabled
	router     chi.Router
	httpServer *http.Server
}

// New creates a server around a live store. lib and engine may be nil; the
// corresponding endpoints then answer 503.
func New(cfg Config, live *store.Store, lib *library.Store, engine *syncer.Engine) *Server {
	s := &Server{
		cfg:     cfg,
		live:    live,
		library: lib,
		engine:  engine,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.registerRoutes(r)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("server: listening on %s", s.cfg.Listen)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving editor: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// queueSync pushes the current state to the sync engine, when one is wired.
func (s *Server) queueSync() {
	if s.engine == nil {
		return
	}
	s.engine.QueueSync(s.live.State())
}
