package main

import (
	"net/http"
	"strings"
)

// setupRoutes registers all HTTP routes and middleware.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/api/voices", s.handleVoices)
	mux.HandleFunc("/api/voices/", s.handleVoice)
	mux.HandleFunc("/api/voices/clone", s.handleCloneVoice)
	mux.HandleFunc("/api/voices/clone/status/", s.handleCloneSubroute)
	mux.HandleFunc("/api/voices/clone/cancel/", s.handleCloneSubroute)

	return corsMiddleware(s.config.AllowedOrigins)(mux)
}

// handleVoices dispatches /api/voices by method.
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListModels(w, r)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "GET required")
	}
}

// handleVoice dispatches /api/voices/{id} by method.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/voices/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodDelete:
		s.handleDeleteModel(w, r, id)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "DELETE required")
	}
}

// handleCloneSubroute dispatches /api/voices/clone/{status,cancel}/{id}.
func (s *Server) handleCloneSubroute(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/voices/clone/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		http.NotFound(w, r)
		return
	}
	action, id := parts[0], parts[1]

	switch {
	case action == "status" && r.Method == http.MethodGet:
		s.handleCloneStatus(w, r, id)
	case action == "cancel" && r.Method == http.MethodPost:
		s.handleCloneCancel(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				allowed = true
			} else {
				for _, allowedOrigin := range allowedOrigins {
					if allowedOrigin == origin {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						allowed = true
						break
					}
				}
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "3600")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
