package refresh

import (
	"time"
)

// StoredRefreshToken is the backend's record of an issued refresh token. The client only ever
// sees Token, an opaque random string.
type StoredRefreshToken struct {
	Token      string
	UserID     string
	AssemblyID string
	Iat        time.Time
}

// Repo stores refresh token metadata keyed by the token string.
type Repo interface {
	Upsert(refreshToken *StoredRefreshToken) error
	Delete(token string) error
	Get(token string) (*StoredRefreshToken, error)
	GetByUserID(userID string) (*StoredRefreshToken, error)
}
