// Package storage holds the console's persistent client-side credential store: the access token,
// the refresh token and the serialized user record of the operator who is logged in.
package storage

import "context"

// Keys are a stable contract shared by the session store and the gateway client.
const (
	KeyAccessToken  = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "auth_user"
)

// SessionKeys lists every key written by a successful login.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// Store is a small string key/value store. Writes are last-writer-wins.
type Store interface {
	// Get returns the value stored under key; ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes keys, ignoring keys that are already absent.
	Remove(ctx context.Context, keys ...string) error
}
