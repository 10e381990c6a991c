package redisstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/billing-console/storage"
	"github.com/jrsteele09/billing-console/storage/redisstore"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only when REDIS_URL is set.
func TestStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	s, err := redisstore.New(ctx, url, "test-"+uuid.NewString())
	require.NoError(t, err)
	defer s.Close()
	defer s.Remove(ctx, storage.SessionKeys...)

	require.NoError(t, s.Set(ctx, storage.KeyAccessToken, "abc"))
	v, ok, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)

	require.NoError(t, s.Remove(ctx, storage.KeyAccessToken))
	_, ok, err = s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := redisstore.New(context.Background(), "not-a-redis-url", "ns")
	require.Error(t, err)
}
