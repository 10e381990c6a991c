package console_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/billing-console/backend"
	"github.com/jrsteele09/billing-console/billing"
	"github.com/jrsteele09/billing-console/browser"
	"github.com/jrsteele09/billing-console/console"
	"github.com/jrsteele09/billing-console/gateway"
	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/session"
	"github.com/jrsteele09/billing-console/storage"
	"github.com/stretchr/testify/require"
)

const testPassword = "password123"

type testFixture struct {
	store    *storage.Memory
	sessions *session.Store
	api      *console.API
	window   *browser.Headless
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("SEED_PASSWORD", testPassword)
	be, err := backend.NewInMemory(config.New())
	require.NoError(t, err)
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	f := &testFixture{store: storage.NewMemory(), window: browser.NewHeadless(u.Hostname())}
	gw, err := gateway.New(f.store, gateway.Resolver{Protocol: "http", Port: u.Port(), Fallback: srv.URL})
	require.NoError(t, err)
	f.sessions, err = session.NewStore(f.store, session.NewGatewayAuth(gw))
	require.NoError(t, err)
	f.sessions.Initialize(context.Background())
	f.api = console.New(gw)
	return f
}

func (f *testFixture) login(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, f.sessions.Login(context.Background(), email, testPassword))
}

func TestAPI_ReadResources(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))
	ctx := context.Background()

	summary, err := f.api.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, "demo", summary.AssemblyID)

	assemblies, err := f.api.Assemblies(ctx)
	require.NoError(t, err)
	require.Len(t, assemblies, 1)
	require.Equal(t, "demo", assemblies[0].ID)

	txns, err := f.api.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 4)

	deposits, err := f.api.Deposits(ctx)
	require.NoError(t, err)
	require.Len(t, deposits, 1)

	staff, err := f.api.Staff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 4)

	u, err := f.api.User(ctx, "demo-collector-1")
	require.NoError(t, err)
	require.Equal(t, "demo-zone-north", u.ZoneID)

	zone, err := f.api.Zone(ctx, u.ZoneID)
	require.NoError(t, err)
	require.Equal(t, "North", zone.Name)

	readings, err := f.api.MeterReadings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assets, err := f.api.Assets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	dash, err := f.api.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, summary, dash.Summary)
	require.Len(t, dash.Transactions, 4)
	require.Len(t, dash.Deposits, 1)
}

func TestAPI_Mutations(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))
	ctx := context.Background()

	txn, err := f.api.VoidTransaction(ctx, "demo-txn-2", "entered twice")
	require.NoError(t, err)
	require.Equal(t, billing.StatusVoided, txn.Status)

	_, err = f.api.VoidTransaction(ctx, "demo-txn-2", "entered twice")
	require.Equal(t, 409, gateway.StatusOf(err))
	require.ErrorContains(t, err, "Transaction already voided")

	u, err := f.api.SetUserActive(ctx, "demo-collector-2", false)
	require.NoError(t, err)
	require.False(t, u.Active)

	u, err = f.api.SetUserActive(ctx, "demo-collector-2", true)
	require.NoError(t, err)
	require.True(t, u.Active)

	_, err = f.api.User(ctx, "no such user")
	require.Equal(t, 404, gateway.StatusOf(err))
}

func TestAPI_ForbiddenKeepsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, "finance@demo.gov.gh")
	ctx := browser.NewContext(context.Background(), f.window.Window())

	_, err := f.api.VoidTransaction(ctx, "demo-txn-1", "x")
	require.Equal(t, 403, gateway.StatusOf(err))
	require.True(t, f.sessions.IsAuthenticated())
	require.Empty(t, f.window.History())
}

func TestAPI_ExpiredSessionRedirects(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, backend.AdminEmail("demo"))
	require.NoError(t, f.store.Set(context.Background(), storage.KeyAccessToken, "revoked-or-forged"))
	ctx := browser.NewContext(context.Background(), f.window.Window())

	_, err := f.api.Dashboard(ctx)
	require.True(t, gateway.IsUnauthorized(err))

	_, ok, err := f.store.Get(context.Background(), storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = f.store.Get(context.Background(), storage.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/login", f.window.Href())
}
