// Package backend is a development implementation of the municipal billing REST API. It serves the
// endpoints the console talks to, resolving the assembly from the request host.
package backend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jrsteele09/billing-console/auth"
	"github.com/jrsteele09/billing-console/billing"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/jrsteele09/billing-console/users"
)

// Config is the part of the application configuration the backend reads.
type Config interface {
	config.EnvConfig
	config.CorsConfig
	config.BackendConfig
}

// Deps are the services and repositories behind the API.
type Deps struct {
	Auth    *auth.AuthorizationService
	Users   users.UserRepo
	Tenants tenants.Repo
	Ledger  *billing.Ledger
}

type Server struct {
	env    string
	router chi.Router
	config Config
	deps   Deps
}

func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Auth == nil || deps.Users == nil || deps.Tenants == nil || deps.Ledger == nil {
		return nil, errors.New("[backend New] auth service, users, tenants and ledger are required")
	}
	s := &Server{
		env:    cfg.GetEnv(),
		router: chi.NewRouter(),
		config: cfg,
		deps:   deps,
	}
	s.initRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RunSweeper drops expired revocation entries every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.deps.Auth.SweepRevoked()
		}
	}
}

func (s *Server) initRoutes() {
	r := s.router
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.GetAllowedOrigins(),
		AllowedMethods:   s.config.GetAllowedMethods(),
		AllowedHeaders:   s.config.GetAllowedHeaders(),
		AllowCredentials: !s.config.GetAllowedOrigins().IsAllowedOrigin("*"),
		MaxAge:           int((24 * time.Hour).Seconds()),
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.resolveTenant)
		r.Post(billing.RouteAuthLogin, s.login)
		r.Post(billing.RouteAuthLogout, s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireBearer)
			r.Get(billing.RouteSummary, s.summary)
			r.Get(billing.RouteAssemblies, s.assemblies)
			r.Get(billing.RouteTransactions, s.transactions)
			r.Get(billing.RouteDeposits, s.deposits)
			r.Get(billing.RouteUsers, s.staff)
			r.Get(billing.RouteUser, s.user)
			r.Get(billing.RouteZone, s.zone)
			r.Get(billing.RouteMeterReadings, s.meterReadings)
			r.Get(billing.RouteAssets, s.assets)

			r.With(requireAdmin).Post(billing.RouteVoidTransaction, s.voidTransaction)
			r.With(requireAdmin).Post(billing.RouteUserActive, s.setUserActive)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
