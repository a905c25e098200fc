package http

import (
	"net/http"

	"github.com/bnema/audiobatch/internal/adapter/http/middleware"
	"github.com/bnema/audiobatch/internal/port"
)

// Server is a read-only browser over the batch history.
type Server struct {
	mux      *http.ServeMux
	handlers *Handlers
	version  string
}

func NewServer(history port.HistoryStore, listLimit int, version string) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		handlers: NewHandlers(history, listLimit),
		version:  version,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handlers.HistoryPage())
	s.mux.HandleFunc("GET /batches/{id}", s.handlers.BatchPage())

	s.mux.HandleFunc("GET /api/batches", s.handlers.ListBatches())
	s.mux.HandleFunc("GET /api/batches/{id}", s.handlers.GetBatch())

	s.mux.HandleFunc("GET /healthz", s.handlers.Health(s.version))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(middleware.LoopbackOnly(s.mux)).ServeHTTP(w, r)
}
