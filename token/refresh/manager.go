package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jrsteele09/billing-console/internal/config"
	cerrors "github.com/jrsteele09/billing-console/internal/errors"
)

// Manager handles refresh token creation, validation and revocation. A user holds at most one
// refresh token; issuing a new one replaces the old.
type Manager struct {
	repo    Repo
	length  int
	expiry  time.Duration
	nowFunc func() time.Time
}

type Option func(*Manager)

func WithNowFunc(now func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func NewManager(repo Repo, cfg config.BackendConfig, opts ...Option) *Manager {
	m := &Manager{
		repo:    repo,
		length:  cfg.GetRefreshTokenLength(),
		expiry:  cfg.GetRefreshTokenExpiry(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Create(userID, assemblyID string) (string, error) {
	if existing, err := m.repo.GetByUserID(userID); err == nil && existing != nil {
		if err := m.repo.Delete(existing.Token); err != nil {
			return "", fmt.Errorf("[refresh Create] failed to delete existing refresh token: %w", err)
		}
	}

	tokenBytes := make([]byte, m.length)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("[refresh Create] failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:      tokenStr,
		UserID:     userID,
		AssemblyID: assemblyID,
		Iat:        m.nowFunc(),
	}); err != nil {
		return "", fmt.Errorf("[refresh Create] failed to store refresh token: %w", err)
	}
	return tokenStr, nil
}

// Validate returns the stored record for a live token. Expired tokens are deleted.
func (m *Manager) Validate(token string) (*StoredRefreshToken, error) {
	rt, err := m.repo.Get(token)
	if err != nil {
		return nil, fmt.Errorf("[refresh Validate] %w", cerrors.ErrInvalidRefreshToken)
	}
	if m.nowFunc().Sub(rt.Iat) > m.expiry {
		_ = m.repo.Delete(token)
		return nil, fmt.Errorf("[refresh Validate] %w", cerrors.ErrRefreshTokenExpired)
	}
	return rt, nil
}

// Revoke deletes a refresh token. Unknown tokens report cerrors.ErrInvalidRefreshToken.
func (m *Manager) Revoke(token string) error {
	if err := m.repo.Delete(token); err != nil {
		return fmt.Errorf("[refresh Revoke] %w", cerrors.ErrInvalidRefreshToken)
	}
	return nil
}
