package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/uzera-playground/errortracker"
	"github.com/jrsteele09/uzera-playground/internal/config"
	"github.com/jrsteele09/uzera-playground/sessions"
	"github.com/jrsteele09/uzera-playground/storage"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	sessions *sessions.Store
	tracker  *errortracker.Tracker
	display  *DisplayState
}

// New wires the session store and error tracker onto kv and restores any persisted session.
// identifier may be nil, in which case identify calls are only logged.
func New(ctx context.Context, config config.Config, kv storage.KeyValue, identifier sessions.Identifier) (*Server, error) {
	display := NewDisplayState()

	opts := []sessions.Option{sessions.WithDisplay(display)}
	if identifier != nil {
		opts = append(opts, sessions.WithIdentifier(identifier))
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		sessions: sessions.NewStore(kv, opts...),
		tracker:  errortracker.New(kv),
		display:  display,
	}

	if _, err := s.sessions.Init(ctx); err != nil {
		return nil, fmt.Errorf("[Server New] failed to restore session: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
