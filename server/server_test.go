package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/billing-console/backend"
	"github.com/jrsteele09/billing-console/console"
	"github.com/jrsteele09/billing-console/gateway"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/server"
	"github.com/jrsteele09/billing-console/session"
	"github.com/jrsteele09/billing-console/storage"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const testPassword = "password123"

type testFixture struct {
	store    *storage.Memory
	sessions *session.Store
	console  *httptest.Server
	client   *http.Client
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("SEED_PASSWORD", testPassword)
	cfg := config.New()

	be, err := backend.NewInMemory(cfg)
	require.NoError(t, err)
	backendSrv := httptest.NewServer(be)
	t.Cleanup(backendSrv.Close)
	u, err := url.Parse(backendSrv.URL)
	require.NoError(t, err)

	f := &testFixture{store: storage.NewMemory()}
	gw, err := gateway.New(f.store, gateway.Resolver{Protocol: "http", Port: u.Port(), Fallback: backendSrv.URL})
	require.NoError(t, err)
	f.sessions, err = session.NewStore(f.store, session.NewGatewayAuth(gw))
	require.NoError(t, err)
	f.sessions.Initialize(context.Background())

	srv, err := server.New(cfg, f.sessions, console.New(gw))
	require.NoError(t, err)
	f.console = httptest.NewServer(srv)
	t.Cleanup(f.console.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	f.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return f
}

func (f *testFixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.console.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *testFixture) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.console.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *testFixture) login(t *testing.T, email string) {
	t.Helper()
	resp, _ := f.post(t, server.RouteLogin, url.Values{"email": {email}, "password": {testPassword}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, server.RouteDashboard, resp.Header.Get("Location"))
}

func (f *testFixture) cookie(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(f.console.URL)
	require.NoError(t, err)
	for _, c := range f.client.Jar.Cookies(u) {
		if c.Name == session.DefaultCookieName {
			return c.Value
		}
	}
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func redirectQuery(t *testing.T, resp *http.Response) (string, url.Values) {
	t.Helper()
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	return loc.Path, loc.Query()
}

func TestServer_GuardRedirects(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name     string
		path     string
		status   int
		location string
	}{
		{name: "root without cookie", path: "/", status: http.StatusTemporaryRedirect, location: server.RouteLogin},
		{name: "dashboard without cookie", path: server.RouteDashboard, status: http.StatusTemporaryRedirect, location: server.RouteLogin},
		{name: "nested dashboard page without cookie", path: server.RouteTransactions, status: http.StatusTemporaryRedirect, location: server.RouteLogin},
		{name: "login page is public", path: server.RouteLogin, status: http.StatusOK},
		{name: "health", path: server.RouteHealth, status: http.StatusOK},
		{name: "unknown path passes through the guard", path: "/nowhere", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := f.get(t, tt.path)
			require.Equal(t, tt.status, resp.StatusCode)
			require.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestServer_Login(t *testing.T) {
	t.Run("wrong password keeps the operator on the login page", func(t *testing.T) {
		f := setupTestFixture(t)
		resp, body := f.post(t, server.RouteLogin, url.Values{"email": {backend.AdminEmail("demo")}, "password": {"nope"}})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, body, "Invalid email or password")
		require.Contains(t, body, backend.AdminEmail("demo"))
		require.Empty(t, f.cookie(t))
		require.Zero(t, f.store.Len())
		require.False(t, f.sessions.IsAuthenticated())
	})

	t.Run("missing fields", func(t *testing.T) {
		f := setupTestFixture(t)
		resp, body := f.post(t, server.RouteLogin, url.Values{"email": {"a@b.c"}})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, body, "Email and password are required")
	})

	t.Run("success sets the cookie and opens the dashboard", func(t *testing.T) {
		f := setupTestFixture(t)
		f.login(t, backend.AdminEmail("demo"))
		require.NotEmpty(t, f.cookie(t))
		require.True(t, f.sessions.IsAuthenticated())

		token, ok, err := f.store.Get(context.Background(), storage.KeyAccessToken)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, token, f.cookie(t))

		resp, body := f.get(t, server.RouteDashboard)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "Overview")
		require.Contains(t, body, "GHS 295.00")
		require.Contains(t, body, "Assembly Administrator")

		resp, _ = f.get(t, server.RouteLogin)
		require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
		require.Equal(t, server.RouteDashboard, resp.Header.Get("Location"))

		resp, _ = f.get(t, "/")
		require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
		require.Equal(t, server.RouteDashboard, resp.Header.Get("Location"))
	})
}

func TestServer_Pages(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "transactions", path: server.RouteTransactions, want: []string{`id="txn-demo-txn-1"`, "Kofi Mensah", "Void"}},
		{name: "deposits", path: server.RouteDeposits, want: []string{"GCB Bank", "DEP-0001", "GHS 70.00"}},
		{name: "staff", path: server.RouteStaff, want: []string{"Kwame Owusu", "Finance Officer", "Deactivate"}},
		{name: "assemblies", path: server.RouteAssemblies, want: []string{"Demo Municipal Assembly"}},
		{name: "zone", path: "/dashboard/zones/demo-zone-north", want: []string{"North", "demo-collector-1"}},
		{name: "readings", path: server.RouteReadings, want: []string{"MTR-1001", "132.40"}},
		{name: "assets", path: server.RouteAssets, want: []string{"Weija Booster", "Hilltop Reservoir"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := f.get(t, tt.path)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))
			for _, want := range tt.want {
				require.Contains(t, body, want)
			}
		})
	}

	t.Run("unknown zone renders the backend message", func(t *testing.T) {
		resp, body := f.get(t, "/dashboard/zones/tema-zone-north")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.Contains(t, body, "Zone not found")
		require.True(t, f.sessions.IsAuthenticated())
	})
}

func TestServer_VoidTransaction(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))
	path := "/dashboard/transactions/demo-txn-2/void"

	resp, _ := f.post(t, path, url.Values{"reason": {"duplicate entry"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	target, query := redirectQuery(t, resp)
	require.Equal(t, server.RouteTransactions, target)
	require.Equal(t, "Transaction voided", query.Get("notice"))

	_, body := f.get(t, server.RouteTransactions)
	require.Contains(t, body, "voided (duplicate entry)")

	tests := []struct {
		name    string
		path    string
		reason  string
		wantErr string
	}{
		{name: "already voided", path: path, reason: "again", wantErr: "Transaction already voided"},
		{name: "missing reason", path: path, reason: " ", wantErr: "A reason is required to void a transaction"},
		{name: "unknown transaction", path: "/dashboard/transactions/nope/void", reason: "x", wantErr: "Transaction not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := f.post(t, tt.path, url.Values{"reason": {tt.reason}})
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			target, query := redirectQuery(t, resp)
			require.Equal(t, server.RouteTransactions, target)
			require.Equal(t, tt.wantErr, query.Get("error"))
		})
	}
}

func TestServer_VoidTransaction_Forbidden(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, "finance@demo.gov.gh")

	resp, _ := f.post(t, "/dashboard/transactions/demo-txn-1/void", url.Values{"reason": {"x"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, query := redirectQuery(t, resp)
	require.Equal(t, "Insufficient permissions", query.Get("error"))
	require.True(t, f.sessions.IsAuthenticated())
	require.NotEmpty(t, f.cookie(t))
}

func TestServer_StaffActivation(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))

	resp, _ := f.post(t, "/dashboard/staff/demo-collector-1/deactivate", nil)
	_, query := redirectQuery(t, resp)
	require.Equal(t, "Staff member deactivated", query.Get("notice"))

	_, body := f.get(t, server.RouteStaff)
	require.Contains(t, body, "Reactivate")

	resp, _ = f.post(t, "/dashboard/staff/demo-collector-1/reactivate", nil)
	_, query = redirectQuery(t, resp)
	require.Equal(t, "Staff member reactivated", query.Get("notice"))

	resp, _ = f.post(t, "/dashboard/staff/demo-admin/deactivate", nil)
	_, query = redirectQuery(t, resp)
	require.NotEmpty(t, query.Get("error"))
	require.Empty(t, query.Get("notice"))
}

func TestServer_SessionExpired(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, storage.KeyAccessToken, "not-a-jwt"))

	resp, _ := f.get(t, server.RouteTransactions)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	target, query := redirectQuery(t, resp)
	require.Equal(t, server.RouteLogin, target)
	require.Equal(t, "Your session has expired", query.Get("error"))

	require.False(t, f.sessions.IsAuthenticated())
	require.Empty(t, f.cookie(t))
	_, ok, err := f.store.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = f.store.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, ok)

	resp, body := f.get(t, server.RouteLogin+"?error="+url.QueryEscape("Your session has expired"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Your session has expired")
}

func TestServer_StaleCookie(t *testing.T) {
	f := setupTestFixture(t)
	u, err := url.Parse(f.console.URL)
	require.NoError(t, err)
	f.client.Jar.SetCookies(u, []*http.Cookie{{Name: session.DefaultCookieName, Value: "left-over", Path: "/"}})

	resp, _ := f.get(t, server.RouteDashboard)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	target, _ := redirectQuery(t, resp)
	require.Equal(t, server.RouteLogin, target)
	require.Empty(t, f.cookie(t))

	resp, _ = f.get(t, server.RouteLogin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Logout(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))

	resp, _ := f.post(t, server.RouteLogout, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, server.RouteLogin, resp.Header.Get("Location"))
	require.Empty(t, f.cookie(t))
	require.Zero(t, f.store.Len())
	require.False(t, f.sessions.IsAuthenticated())

	resp, _ = f.get(t, server.RouteDashboard)
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
}

func TestServer_Compression(t *testing.T) {
	tests := []struct {
		name         string
		expireToken  bool
		htmx         bool
		wantStatus   int
		wantEncoding string
	}{
		{name: "page is gzipped", wantStatus: http.StatusOK, wantEncoding: "gzip"},
		{name: "redirect is not gzipped", expireToken: true, wantStatus: http.StatusSeeOther},
		{name: "htmx redirect is not gzipped", expireToken: true, htmx: true, wantStatus: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			f.login(t, backend.AdminEmail("demo"))
			if tt.expireToken {
				require.NoError(t, f.store.Set(context.Background(), storage.KeyAccessToken, "not-a-jwt"))
			}

			req, err := http.NewRequest(http.MethodGet, f.console.URL+server.RouteDeposits, nil)
			require.NoError(t, err)
			req.Header.Set("Accept-Encoding", "gzip")
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			resp, err := f.client.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			require.Equal(t, tt.wantEncoding, resp.Header.Get("Content-Encoding"))

			if tt.wantEncoding == "" {
				data, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				if tt.htmx {
					require.Empty(t, data)
					require.NotEmpty(t, resp.Header.Get("HX-Redirect"))
				}
				return
			}
			zr, err := gzip.NewReader(resp.Body)
			require.NoError(t, err)
			data, err := io.ReadAll(zr)
			require.NoError(t, err)
			require.Contains(t, string(data), "GCB Bank")
		})
	}
}

func TestServer_Static(t *testing.T) {
	f := setupTestFixture(t)
	resp, body := f.get(t, "/static/console.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css"))
	require.NotEmpty(t, resp.Header.Get("Cache-Control"))
	require.Contains(t, body, ".topbar")
}
