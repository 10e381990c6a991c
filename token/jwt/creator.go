package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/billing-console/token"
	"github.com/jrsteele09/billing-console/users"
)

const Issuer = "billing-backend"

// Claims carried by an access token. Subject is the user ID.
type Claims struct {
	jwtlib.RegisteredClaims
	Assembly string         `json:"assembly"`
	Role     users.RoleType `json:"role"`
}

// Creator issues access tokens.
type Creator struct {
	signer  token.Signer
	expiry  time.Duration
	nowFunc func() time.Time
}

type CreatorOption func(*Creator)

func WithExpiry(expiry time.Duration) CreatorOption {
	return func(c *Creator) {
		c.expiry = expiry
	}
}

func WithNowFunc(now func() time.Time) CreatorOption {
	return func(c *Creator) {
		c.nowFunc = now
	}
}

func NewCreator(signer token.Signer, opts ...CreatorOption) *Creator {
	c := &Creator{signer: signer, expiry: time.Hour, nowFunc: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAccessToken signs a token for user scoped to assemblyID.
func (c *Creator) CreateAccessToken(user *users.User, assemblyID string) (string, *Claims, error) {
	if user == nil {
		return "", nil, fmt.Errorf("[Creator CreateAccessToken] nil user")
	}
	now := c.nowFunc()
	claims := &Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   user.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.expiry)),
			ID:        uuid.New().String(), // jti, used for revocation
		},
		Assembly: assemblyID,
		Role:     user.Role,
	}
	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", nil, fmt.Errorf("[Creator CreateAccessToken] %w", err)
	}
	return signed, claims, nil
}
