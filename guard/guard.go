// Package guard decides, from the request path and the presence of the session cookie alone,
// whether a console request may proceed or must be redirected. It never calls the backend and
// never inspects the token.
package guard

import (
	"net/http"
	"strings"
)

const (
	DefaultCookieName = "auth_token"
	DefaultLoginPath  = "/login"
	DefaultHomePath   = "/dashboard"
)

// Guard holds the routing rules. The zero value is not usable, construct with New.
type Guard struct {
	CookieName        string
	ProtectedPrefixes []string
	// PublicPaths are exempt from the protected-prefix rule.
	PublicPaths []string
	LoginPath   string
	HomePath    string
}

type Option func(*Guard)

func WithCookieName(name string) Option {
	return func(g *Guard) {
		if name != "" {
			g.CookieName = name
		}
	}
}

func WithProtectedPrefixes(prefixes ...string) Option {
	return func(g *Guard) {
		if len(prefixes) > 0 {
			g.ProtectedPrefixes = prefixes
		}
	}
}

func WithPublicPaths(paths ...string) Option {
	return func(g *Guard) {
		g.PublicPaths = append(g.PublicPaths, paths...)
	}
}

func New(opts ...Option) *Guard {
	g := &Guard{
		CookieName:        DefaultCookieName,
		ProtectedPrefixes: []string{DefaultHomePath},
		LoginPath:         DefaultLoginPath,
		HomePath:          DefaultHomePath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide applies the rules in order and returns the redirect target, if any.
func (g *Guard) Decide(path string, hasCookie bool) (target string, redirect bool) {
	if path == "/" {
		if hasCookie {
			return g.HomePath, true
		}
		return g.LoginPath, true
	}

	if !hasCookie && g.isProtected(path) && !g.isPublic(path) {
		return g.LoginPath, true
	}

	if hasCookie && strings.HasPrefix(path, g.LoginPath) {
		return g.HomePath, true
	}

	return "", false
}

// HasCookie reports whether r carries a non-empty session cookie.
func (g *Guard) HasCookie(r *http.Request) bool {
	c, err := r.Cookie(g.CookieName)
	return err == nil && c.Value != ""
}

// Middleware wraps a handler func, redirecting with 307 Temporary Redirect when a rule matches.
func (g *Guard) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if target, redirect := g.Decide(r.URL.Path, g.HasCookie(r)); redirect {
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}
		next(w, r)
	}
}

// Handler is Middleware for an http.Handler.
func (g *Guard) Handler(next http.Handler) http.Handler {
	return g.Middleware(next.ServeHTTP)
}

func (g *Guard) isProtected(path string) bool {
	for _, prefix := range g.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Guard) isPublic(path string) bool {
	for _, p := range g.PublicPaths {
		if path == p {
			return true
		}
	}
	return false
}
