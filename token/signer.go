package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs access tokens and supplies the key used to verify them.
type Signer interface {
	Sign(claims jwt.Claims) (string, error)
	// GetVerificationKey is a jwt.Keyfunc.
	GetVerificationKey(token *jwt.Token) (any, error)
	GetSigningMethod() jwt.SigningMethod
}

// HMACsigner implements Signer using symmetric HMAC-SHA256
type HMACsigner struct {
	secret []byte
}

func NewHMACSigner(secret string) (*HMACsigner, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("[token NewHMACSigner] secret must be at least 16 bytes")
	}
	return &HMACsigner{secret: []byte(secret)}, nil
}

func (h *HMACsigner) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("[HMACsigner Sign] failed to sign token: %w", err)
	}
	return signed, nil
}

func (h *HMACsigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACsigner) GetSigningMethod() jwt.SigningMethod {
	return jwt.SigningMethodHS256
}
