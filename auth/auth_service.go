// Package auth is the billing backend's credential service: it checks passwords, issues access and
// refresh tokens, revokes them at logout and authenticates bearer tokens on resource requests.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/tenants"
	"github.com/jrsteele09/billing-console/token"
	"github.com/jrsteele09/billing-console/token/jwt"
	"github.com/jrsteele09/billing-console/token/refresh"
	"github.com/jrsteele09/billing-console/users"
)

// Repos holds all repository dependencies for the AuthorizationService
type Repos struct {
	Users   users.UserRepo
	Tenants tenants.Repo
}

// Tokens groups the token machinery used by the service.
type Tokens struct {
	Creator   *jwt.Creator
	Inspector *jwt.Inspector
	Refresh   *refresh.Manager
	Revoked   token.RevokedTokenCache
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *users.User
}

// AuthorizationService issues and checks credentials for one backend.
type AuthorizationService struct {
	repos   Repos
	tokens  Tokens
	nowTime func() time.Time
}

type AuthorizationServiceOption func(*AuthorizationService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.nowTime = nowFunc
	}
}

func NewAuthorizationService(repos Repos, tokens Tokens, options ...AuthorizationServiceOption) (*AuthorizationService, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewAuthorizationService] Users repo is required")
	}
	if repos.Tenants == nil {
		return nil, errors.New("[NewAuthorizationService] Tenants repo is required")
	}
	if tokens.Creator == nil || tokens.Inspector == nil || tokens.Refresh == nil || tokens.Revoked == nil {
		return nil, errors.New("[NewAuthorizationService] token creator, inspector, refresh manager and revocation cache are required")
	}

	as := &AuthorizationService{
		repos:   repos,
		tokens:  tokens,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(as)
	}
	return as, nil
}

// Login checks the credentials of a user of tenantID. Unknown users, wrong passwords and users of
// another assembly all report cerrors.ErrInvalidCredentials.
func (as *AuthorizationService) Login(tenantID, email, password string) (*LoginResult, error) {
	tenant, err := as.repos.Tenants.Get(tenantID)
	if err != nil || !tenant.Active {
		return nil, fmt.Errorf("[Login] tenant %q: %w", tenantID, cerrors.ErrTenantNotFound)
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("[Login] email and password are required: %w", cerrors.ErrMissingArgument)
	}

	user, err := as.repos.Users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("[Login] %w", cerrors.ErrInvalidCredentials)
	}
	if !user.CheckPassword(password) || !user.InAssembly(tenant.ID) {
		return nil, fmt.Errorf("[Login] %w", cerrors.ErrInvalidCredentials)
	}
	if !user.Active {
		return nil, fmt.Errorf("[Login] %s: %w", user.ID, cerrors.ErrUserInactive)
	}

	accessToken, _, err := as.tokens.Creator.CreateAccessToken(user, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("[Login] access token: %w", err)
	}
	refreshToken, err := as.tokens.Refresh.Create(user.ID, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("[Login] refresh token: %w", err)
	}

	return &LoginResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// Logout revokes the refresh token and, when present, the access token it was presented with.
func (as *AuthorizationService) Logout(refreshToken string, access *jwt.Claims) error {
	if access != nil && access.ExpiresAt != nil {
		as.tokens.Revoked.Add(access.ID, access.ExpiresAt.Time)
	}
	if strings.TrimSpace(refreshToken) == "" {
		return fmt.Errorf("[Logout] refresh token required: %w", cerrors.ErrMissingArgument)
	}
	if err := as.tokens.Refresh.Revoke(refreshToken); err != nil {
		return fmt.Errorf("[Logout] %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token presented to tenantID into its active user.
func (as *AuthorizationService) Authenticate(tenantID, rawAccessToken string) (*users.User, *jwt.Claims, error) {
	claims, err := as.tokens.Inspector.Inspect(rawAccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("[Authenticate] %w", err)
	}
	if claims.Assembly != tenantID {
		return nil, nil, fmt.Errorf("[Authenticate] token for %q used on %q: %w", claims.Assembly, tenantID, cerrors.ErrUnauthorizedTenant)
	}

	user, err := as.repos.Users.GetByID(claims.Subject)
	if err != nil {
		return nil, nil, fmt.Errorf("[Authenticate] %v: %w", err, cerrors.ErrInvalidToken)
	}
	if !user.Active {
		return nil, nil, fmt.Errorf("[Authenticate] %s: %w", user.ID, cerrors.ErrUserInactive)
	}
	return user, claims, nil
}

// SweepRevoked drops expired revocation entries.
func (as *AuthorizationService) SweepRevoked() {
	as.tokens.Revoked.Cleanup()
}
