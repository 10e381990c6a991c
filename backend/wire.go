package backend

import (
	"fmt"
	"time"

	"github.com/jrsteele09/billing-console/auth"
	"github.com/jrsteele09/billing-console/billing"
	tenantrepofakes "github.com/jrsteele09/billing-console/tenants/repofakes"
	"github.com/jrsteele09/billing-console/token"
	"github.com/jrsteele09/billing-console/token/jwt"
	"github.com/jrsteele09/billing-console/token/refresh"
	refreshrepofake "github.com/jrsteele09/billing-console/token/refresh/repofake"
	fakeuserrepo "github.com/jrsteele09/billing-console/users/repofake"
)

type inMemoryOptions struct {
	now func() time.Time
}

type InMemoryOption func(*inMemoryOptions)

// WithClock fixes the time used for tokens and seeded data.
func WithClock(now func() time.Time) InMemoryOption {
	return func(o *inMemoryOptions) {
		o.now = now
	}
}

// NewInMemory builds a seeded backend whose state lives only in process memory.
func NewInMemory(cfg Config, opts ...InMemoryOption) (*Server, error) {
	o := inMemoryOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	signer, err := token.NewHMACSigner(cfg.GetJWTSecret())
	if err != nil {
		return nil, fmt.Errorf("[backend NewInMemory] %w", err)
	}
	revoked := token.NewInMemoryRevokedTokenCache(o.now)

	deps := Deps{
		Users:   fakeuserrepo.NewFakeUserRepo(),
		Tenants: tenantrepofakes.NewFakeTenantRepo(),
		Ledger:  billing.NewLedger(billing.WithClock(o.now)),
	}
	deps.Auth, err = auth.NewAuthorizationService(
		auth.Repos{Users: deps.Users, Tenants: deps.Tenants},
		auth.Tokens{
			Creator:   jwt.NewCreator(signer, jwt.WithExpiry(cfg.GetAccessTokenExpiry()), jwt.WithNowFunc(o.now)),
			Inspector: jwt.NewInspector(signer, revoked, o.now),
			Refresh:   refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), cfg, refresh.WithNowFunc(o.now)),
			Revoked:   revoked,
		},
		auth.WithNowTime(o.now),
	)
	if err != nil {
		return nil, fmt.Errorf("[backend NewInMemory] %w", err)
	}

	if err := Bootstrap(cfg, deps, o.now()); err != nil {
		return nil, err
	}
	return New(cfg, deps)
}
