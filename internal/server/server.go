package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/anvesh/phototree/internal/capture"
	"github.com/anvesh/phototree/internal/photo"
	"github.com/anvesh/phototree/internal/server/api"
	"github.com/anvesh/phototree/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Importer  *photo.Importer
	Camera    capture.Camera
	States    *StateHub
}

// Server represents the HTTP server for the Phototree backend.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register photo API handler if Store and Importer are configured
	if s.config.Store != nil && s.config.Importer != nil {
		photosHandler := api.NewPhotosHandler(s.config.Store, s.config.Importer)
		s.mux.Handle("/api/photos", photosHandler)
		s.mux.Handle("/api/photos/", photosHandler)
	}

	// Register the state WebSocket endpoint if a hub is configured
	if s.config.States != nil {
		s.mux.Handle("/api/state", s.config.States)
	}

	// Register camera preview endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Serve the rendering frontend if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
