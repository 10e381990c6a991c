package backend

import (
	"context"

	"github.com/jrsteele09/billing-console/tenants"
	"github.com/jrsteele09/billing-console/token/jwt"
	"github.com/jrsteele09/billing-console/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	ContextKeyTenant ContextKey = "tenant"
	ContextKeyUser   ContextKey = "user"
	ContextKeyClaims ContextKey = "claims"
)

func tenantFrom(ctx context.Context) *tenants.Tenant {
	t, _ := ctx.Value(ContextKeyTenant).(*tenants.Tenant)
	return t
}

func userFrom(ctx context.Context) *users.User {
	u, _ := ctx.Value(ContextKeyUser).(*users.User)
	return u
}

func claimsFrom(ctx context.Context) *jwt.Claims {
	c, _ := ctx.Value(ContextKeyClaims).(*jwt.Claims)
	return c
}
