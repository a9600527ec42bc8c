// This file defines the status API server, sets up the routes using chi,
// and links them to the handler functions. It exists so a long-running
// fabrication can be watched from a browser or curl loop instead of a
// terminal scrollback.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/core"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/websocket"
)

// Server holds the dependencies for the status API.
type Server struct {
	app   *core.App
	total int64
}

// NewServer creates a new Server instance reporting on a run of total
// planned items.
func NewServer(app *core.App, total int64) *Server {
	return &Server{app: app, total: total}
}

// Router sets up and returns the main router for the status server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/api/progress", s.handleGetProgress)
	r.Get("/api/run", s.handleGetRun)
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(s.app.Hub, w, req)
	})

	return r
}
