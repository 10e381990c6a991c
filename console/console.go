// Package console is the typed client for the billing backend's dashboard resources. Every call
// goes through the gateway client, so an expired session is handled in one place.
package console

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/billing-console/billing"
	"github.com/jrsteele09/billing-console/gateway"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/jrsteele09/billing-console/users"
	"golang.org/x/sync/errgroup"
)

type API struct {
	gw *gateway.Client
}

func New(gw *gateway.Client) *API {
	return &API{gw: gw}
}

// Dashboard is the landing page's data.
type Dashboard struct {
	Summary      billing.Summary
	Transactions []billing.Transaction
	Deposits     []billing.Deposit
}

// route fills the {id} placeholder of a route pattern.
func route(pattern, id string) string {
	return strings.Replace(pattern, "{id}", url.PathEscape(id), 1)
}

func get[T any](ctx context.Context, gw *gateway.Client, op, endpoint string) (T, error) {
	var out T
	if err := gw.Get(ctx, endpoint, &out); err != nil {
		return out, fmt.Errorf("[console %s] %w", op, err)
	}
	return out, nil
}

func (a *API) Summary(ctx context.Context) (billing.Summary, error) {
	return get[billing.Summary](ctx, a.gw, "Summary", billing.RouteSummary)
}

func (a *API) Assemblies(ctx context.Context) ([]tenants.Tenant, error) {
	return get[[]tenants.Tenant](ctx, a.gw, "Assemblies", billing.RouteAssemblies)
}

func (a *API) Transactions(ctx context.Context) ([]billing.Transaction, error) {
	return get[[]billing.Transaction](ctx, a.gw, "Transactions", billing.RouteTransactions)
}

func (a *API) VoidTransaction(ctx context.Context, id, reason string) (billing.Transaction, error) {
	var txn billing.Transaction
	err := a.gw.Do(ctx, route(billing.RouteVoidTransaction, id), &gateway.RequestOptions{
		Method: http.MethodPost,
		Body:   billing.VoidRequest{Reason: reason},
	}, &txn)
	if err != nil {
		return txn, fmt.Errorf("[console VoidTransaction] %w", err)
	}
	return txn, nil
}

func (a *API) Deposits(ctx context.Context) ([]billing.Deposit, error) {
	return get[[]billing.Deposit](ctx, a.gw, "Deposits", billing.RouteDeposits)
}

func (a *API) Staff(ctx context.Context) ([]users.User, error) {
	return get[[]users.User](ctx, a.gw, "Staff", billing.RouteUsers)
}

func (a *API) User(ctx context.Context, id string) (users.User, error) {
	return get[users.User](ctx, a.gw, "User", route(billing.RouteUser, id))
}

// SetUserActive deactivates (active=false) or reactivates a staff member.
func (a *API) SetUserActive(ctx context.Context, id string, active bool) (users.User, error) {
	var u users.User
	if err := a.gw.Post(ctx, route(billing.RouteUserActive, id), billing.ActiveRequest{Active: active}, &u); err != nil {
		return u, fmt.Errorf("[console SetUserActive] %w", err)
	}
	return u, nil
}

func (a *API) Zone(ctx context.Context, id string) (billing.Zone, error) {
	return get[billing.Zone](ctx, a.gw, "Zone", route(billing.RouteZone, id))
}

func (a *API) MeterReadings(ctx context.Context) ([]billing.MeterReading, error) {
	return get[[]billing.MeterReading](ctx, a.gw, "MeterReadings", billing.RouteMeterReadings)
}

func (a *API) Assets(ctx context.Context) ([]billing.Asset, error) {
	return get[[]billing.Asset](ctx, a.gw, "Assets", billing.RouteAssets)
}

// Dashboard fetches the summary, transactions and deposits concurrently. The first failure
// cancels the others.
func (a *API) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Summary, err = a.Summary(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Transactions, err = a.Transactions(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Deposits, err = a.Deposits(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
