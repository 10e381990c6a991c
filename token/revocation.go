package token

import (
	"sync"
	"time"
)

// RevokedTokenCache remembers revoked access tokens by jti until they would have expired anyway.
type RevokedTokenCache interface {
	Add(jti string, exp time.Time)
	IsRevoked(jti string) bool
	Cleanup()
}

type InMemoryRevokedTokenCache struct {
	revoked map[string]time.Time
	now     func() time.Time
	mu      sync.RWMutex
}

func NewInMemoryRevokedTokenCache(now func() time.Time) *InMemoryRevokedTokenCache {
	if now == nil {
		now = time.Now
	}
	return &InMemoryRevokedTokenCache{
		revoked: make(map[string]time.Time),
		now:     now,
	}
}

func (c *InMemoryRevokedTokenCache) Add(jti string, exp time.Time) {
	if jti == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revoked[jti] = exp
}

func (c *InMemoryRevokedTokenCache) IsRevoked(jti string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.revoked[jti]
	return exists
}

// Cleanup drops entries whose token has expired.
func (c *InMemoryRevokedTokenCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for jti, exp := range c.revoked {
		if now.After(exp) {
			delete(c.revoked, jti)
		}
	}
}
