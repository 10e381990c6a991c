package config

import "time"

// BackendConfig configures the development billing backend (cmd/devbackend).
type BackendConfig interface {
	GetBackendPort() string
	GetBaseDomain() string
	GetDefaultTenantID() string
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
	GetSeedPassword() string
}

type Backend struct{ source }

var _ BackendConfig = Backend{}

func (b Backend) GetBackendPort() string {
	return listenAddr(b.get("BACKEND_PORT", "8000"))
}

// GetBaseDomain is stripped from the request host to find the tenant subdomain.
func (b Backend) GetBaseDomain() string {
	return b.get("BASE_DOMAIN", "localhost")
}

// GetDefaultTenantID is used when the request host carries no subdomain.
func (b Backend) GetDefaultTenantID() string {
	return b.get("DEFAULT_TENANT", "demo")
}

func (b Backend) GetJWTSecret() string {
	return b.get("JWT_SECRET", "dev-secret-change-me")
}

func (b Backend) GetAccessTokenExpiry() time.Duration {
	return b.duration("ACCESS_TOKEN_EXPIRY", time.Hour)
}

func (b Backend) GetRefreshTokenExpiry() time.Duration {
	return b.duration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour)
}

func (Backend) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

// GetSeedPassword is given to every seeded staff account.
func (b Backend) GetSeedPassword() string {
	return b.get("SEED_PASSWORD", "password123")
}

func (b Backend) duration(envVar string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(b.get(envVar, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
