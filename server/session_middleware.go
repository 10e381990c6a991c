package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/billing-console/browser"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyExchange stores the *browser.Exchange bound to the request
const ContextKeyExchange ContextKey = "exchange"

// WindowMiddleware binds a browser window to the request so session and gateway calls made with
// its context see the operator's host and cookies, and can navigate.
func (s *Server) WindowMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ex := browser.ForRequest(w, r, browser.CookieOptions{Secure: s.config.GetSecureCookies()})
		r = ex.Request()
		r = r.WithContext(context.WithValue(r.Context(), ContextKeyExchange, ex))
		next(w, r)
	}
}

func exchangeFrom(r *http.Request) *browser.Exchange {
	ex, _ := r.Context().Value(ContextKeyExchange).(*browser.Exchange)
	return ex
}

// RequireSession lets the request through only when the session store holds an authenticated
// session. A cookie that outlived its session is deleted, otherwise the guard would send the
// operator straight back from the login page.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.sessions.IsLoading() {
			s.sessions.Initialize(r.Context())
		}
		if !s.sessions.IsAuthenticated() {
			s.endSession(r)
			redirectWithError(w, r, RouteLogin, "Please sign in")
			return
		}
		next(w, r)
	}
}

// sessionExpired handles the navigation the gateway requests after a 401: the session store is
// reloaded from storage, which no longer holds the access token, and the operator is sent on.
func (s *Server) sessionExpired(w http.ResponseWriter, r *http.Request) bool {
	ex := exchangeFrom(r)
	if ex == nil {
		return false
	}
	target, ok := ex.Redirected()
	if !ok {
		return false
	}
	s.sessions.Initialize(r.Context())
	if !s.sessions.IsAuthenticated() {
		s.endSession(r)
	}
	log.Info().Str("path", r.URL.Path).Str("target", target).Msg("console session expired")
	redirectWithError(w, r, target, "Your session has expired")
	return true
}

func (s *Server) endSession(r *http.Request) {
	if ex := exchangeFrom(r); ex != nil {
		ex.Delete(s.config.GetSessionCookieName())
	}
}
