package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/token"
)

// RevokedChecker is an interface for checking if a token has been revoked
type RevokedChecker interface {
	IsRevoked(jti string) bool
}

// Inspector verifies access tokens presented to the backend.
type Inspector struct {
	signer         token.Signer
	revokedChecker RevokedChecker
	nowFunc        func() time.Time
}

func NewInspector(signer token.Signer, revokedChecker RevokedChecker, now func() time.Time) *Inspector {
	if now == nil {
		now = time.Now
	}
	return &Inspector{signer: signer, revokedChecker: revokedChecker, nowFunc: now}
}

// Inspect returns the claims of a valid token. Errors wrap cerrors.ErrTokenExpired for expired
// tokens and cerrors.ErrInvalidToken for everything else.
func (i *Inspector) Inspect(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, fmt.Errorf("[Inspector Inspect] empty token: %w", cerrors.ErrInvalidToken)
	}

	claims := &Claims{}
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithTimeFunc(i.nowFunc),
		jwtlib.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(rawToken, claims, i.signer.GetVerificationKey)
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return nil, fmt.Errorf("[Inspector Inspect] %w", cerrors.ErrTokenExpired)
	case err != nil:
		return nil, fmt.Errorf("[Inspector Inspect] %v: %w", err, cerrors.ErrInvalidToken)
	}

	if claims.Subject == "" || claims.Assembly == "" {
		return nil, fmt.Errorf("[Inspector Inspect] missing subject or assembly: %w", cerrors.ErrInvalidToken)
	}
	if i.revokedChecker != nil && i.revokedChecker.IsRevoked(claims.ID) {
		return nil, fmt.Errorf("[Inspector Inspect] token revoked: %w", cerrors.ErrInvalidToken)
	}
	return claims, nil
}
