package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/billing-console/guard"
	"github.com/stretchr/testify/require"
)

func TestGuard_Decide(t *testing.T) {
	g := guard.New()

	tests := []struct {
		name         string
		path         string
		hasCookie    bool
		wantRedirect bool
		wantTarget   string
	}{
		{name: "root with cookie", path: "/", hasCookie: true, wantRedirect: true, wantTarget: "/dashboard"},
		{name: "root without cookie", path: "/", wantRedirect: true, wantTarget: "/login"},
		{name: "dashboard without cookie", path: "/dashboard", wantRedirect: true, wantTarget: "/login"},
		{name: "nested dashboard without cookie", path: "/dashboard/x", wantRedirect: true, wantTarget: "/login"},
		{name: "dashboard with cookie", path: "/dashboard/transactions", hasCookie: true},
		{name: "login with cookie", path: "/login", hasCookie: true, wantRedirect: true, wantTarget: "/dashboard"},
		{name: "login prefix with cookie", path: "/login/help", hasCookie: true, wantRedirect: true, wantTarget: "/dashboard"},
		{name: "login without cookie", path: "/login"},
		{name: "unprotected without cookie", path: "/reports"},
		{name: "unprotected with cookie", path: "/reports", hasCookie: true},
		{name: "health", path: "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, redirect := g.Decide(tt.path, tt.hasCookie)
			require.Equal(t, tt.wantRedirect, redirect)
			require.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestGuard_Options(t *testing.T) {
	g := guard.New(
		guard.WithCookieName("sid"),
		guard.WithProtectedPrefixes("/dashboard", "/reports"),
		guard.WithPublicPaths("/reports/public"),
	)
	require.Equal(t, "sid", g.CookieName)

	target, redirect := g.Decide("/reports/daily", false)
	require.True(t, redirect)
	require.Equal(t, "/login", target)

	_, redirect = g.Decide("/reports/public", false)
	require.False(t, redirect)
}

func TestGuard_Middleware(t *testing.T) {
	g := guard.New()
	var reached bool
	h := g.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		path        string
		cookie      *http.Cookie
		wantStatus  int
		wantLoc     string
		wantReached bool
	}{
		{name: "no cookie on dashboard", path: "/dashboard/x", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/login"},
		{name: "empty cookie is absent", path: "/dashboard", cookie: &http.Cookie{Name: "auth_token", Value: ""}, wantStatus: http.StatusTemporaryRedirect, wantLoc: "/login"},
		{name: "other cookie is absent", path: "/dashboard", cookie: &http.Cookie{Name: "session", Value: "x"}, wantStatus: http.StatusTemporaryRedirect, wantLoc: "/login"},
		{name: "cookie on dashboard", path: "/dashboard", cookie: &http.Cookie{Name: "auth_token", Value: "t"}, wantStatus: http.StatusOK, wantReached: true},
		{name: "cookie on login", path: "/login", cookie: &http.Cookie{Name: "auth_token", Value: "t"}, wantStatus: http.StatusTemporaryRedirect, wantLoc: "/dashboard"},
		{name: "root without cookie", path: "/", wantStatus: http.StatusTemporaryRedirect, wantLoc: "/login"},
		{name: "pass through", path: "/reports", wantStatus: http.StatusOK, wantReached: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			require.Equal(t, tt.wantReached, reached)
		})
	}
}
