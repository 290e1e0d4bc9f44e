// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chatreveal/chatscope/internal/events"
	"github.com/chatreveal/chatscope/internal/pipeline"
	"github.com/chatreveal/chatscope/internal/store"
)

type Server struct {
	router   *chi.Mux
	port     int
	pipeline *pipeline.Pipeline
	store    *store.Store
	events   *events.Client
	logger   *slog.Logger
}

// NewServer wires the routes. store and events may be nil when the service
// runs without persistence or messaging.
func NewServer(port int, p *pipeline.Pipeline, db *store.Store, ev *events.Client, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		pipeline: p,
		store:    db,
		events:   ev,
		logger:   logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/chatscope/status", s.status)
	router.Route("/api/v1/analyses", func(r chi.Router) {
		r.Post("/", s.createAnalysis)
		r.Get("/{id}", s.getAnalysis)
		r.Delete("/{id}", s.deleteAnalysis)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"service":     "chatscope",
		"status":      "ready",
		"persistence": s.store != nil,
		"events":      s.events != nil,
	})
}
