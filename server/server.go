// Package server is the operator's console: an HTML front end that keeps its session in a
// session.Store, reads and mutates billing data through the gateway, and is fronted by the
// cookie route guard.
package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/billing-console/console"
	"github.com/jrsteele09/billing-console/guard"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/session"
	"github.com/rs/zerolog/log"
)

type Config interface {
	config.EnvConfig
	config.CookieConfig
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	appName  string
	router   chi.Router
	handler  http.Handler
	routes   []string
	pages    map[string]*template.Template
	config   Config
	sessions *session.Store
	api      *console.API
	guard    *guard.Guard
}

func New(cfg Config, sessions *session.Store, api *console.API) (*Server, error) {
	if sessions == nil || api == nil {
		return nil, errors.New("[Server New] session store and console api are required")
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		appName:  cfg.GetAppName(),
		router:   chi.NewRouter(),
		pages:    pages,
		config:   cfg,
		sessions: sessions,
		api:      api,
		guard: guard.New(
			guard.WithCookieName(cfg.GetSessionCookieName()),
			guard.WithProtectedPrefixes(cfg.GetProtectedPrefixes()...),
		),
	}

	s.initRoutes()
	s.logRoutes()

	// The guard runs before routing so it sees every path, including unknown ones.
	s.handler = s.guard.Handler(s.router)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// RegisterRouteHandler registers handler for a "METHOD /path" pattern.
func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	method, path := splitPattern(pattern)
	if method == "" {
		s.router.Handle(path, handler)
		return
	}
	s.router.Method(method, path, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.RegisterRouteHandler(pattern, http.HandlerFunc(handler))
}

func splitPattern(pattern string) (method, path string) {
	parts := strings.SplitN(pattern, " ", 2)
	if len(parts) > 1 {
		return parts[0], parts[1]
	}
	return "", parts[0]
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		logRoute(splitPattern(route))
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", colourMethod(method), path)
}

func logError(method, path string, err error) {
	log.Error().Msgf("[%-19s] %s %s", colourMethod(method), path, Red+err.Error()+ResetColor)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
