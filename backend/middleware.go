package backend

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/rs/zerolog/log"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("host", r.Host).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("backend request")
	})
}

func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("[backend] recovered from panic")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// tenantFromHost maps "<assembly>.<base domain>" onto the assembly. Hosts outside the base domain,
// and the bare base domain, resolve to the default assembly.
func (s *Server) tenantFromHost(host string) (*tenants.Tenant, error) {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	baseDomain := strings.ToLower(s.config.GetBaseDomain())

	tenantID := ""
	if sub, ok := strings.CutSuffix(hostname, "."+baseDomain); ok {
		labels := strings.Split(sub, ".")
		tenantID = labels[len(labels)-1]
	}
	if tenantID == "" {
		tenantID = s.config.GetDefaultTenantID()
	}

	t, err := s.deps.Tenants.Get(tenantID)
	if err != nil {
		return nil, fmt.Errorf("[backend tenantFromHost] unknown tenant: %w", err)
	}
	if !t.Active {
		return nil, fmt.Errorf("[backend tenantFromHost] %s: %w", tenantID, cerrors.ErrTenantNotFound)
	}
	return t, nil
}

func (s *Server) resolveTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t, err := s.tenantFromHost(r.Host)
		if err != nil {
			writeError(w, http.StatusNotFound, "Unknown assembly")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextKeyTenant, t)))
	})
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireBearer authenticates the access token. Every failure is a 401 so the console drops the
// session and returns to its login page.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		user, claims, err := s.deps.Auth.Authenticate(tenantFrom(r.Context()).ID, raw)
		if err != nil {
			msg := "Invalid token"
			switch {
			case cerrors.Is(err, cerrors.ErrTokenExpired):
				msg = "Token expired"
			case cerrors.Is(err, cerrors.ErrUserInactive):
				msg = "Account deactivated"
			}
			log.Debug().Err(err).Msg("[backend requireBearer] rejected")
			writeError(w, http.StatusUnauthorized, msg)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		ctx = context.WithValue(ctx, ContextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := userFrom(r.Context()); u == nil || !u.IsAdmin() {
			writeError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}
