package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	c := config.New()

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "http", c.GetAPIProtocol())
	require.Equal(t, "8000", c.GetAPIPort())
	require.Equal(t, "http://localhost:8000", c.GetFallbackBaseURL())
	require.Equal(t, "auth_token", c.GetSessionCookieName())
	require.Equal(t, []string{"/dashboard"}, c.GetProtectedPrefixes())
	require.Equal(t, ":8000", c.GetBackendPort())
	require.Equal(t, time.Hour, c.GetAccessTokenExpiry())
	require.False(t, c.GetSecureCookies())
}

func TestConfig_FileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	err := os.WriteFile(path, []byte("api_port: 9000\nAPI_PROTOCOL: https\nSTORAGE_DRIVER: memory\nACCESS_TOKEN_EXPIRY: 5m\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("API_PROTOCOL", "http")

	c, err := config.Load(path)
	require.NoError(t, err)

	t.Run("file overrides default", func(t *testing.T) {
		require.Equal(t, "9000", c.GetAPIPort())
		require.Equal(t, "memory", c.GetStorageDriver())
		require.Equal(t, 5*time.Minute, c.GetAccessTokenExpiry())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		require.Equal(t, "http", c.GetAPIProtocol())
	})
}

func TestConfig_LoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	_, err = config.Load(path)
	require.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	origins := config.New().GetAllowedOrigins()

	require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
	require.False(t, origins.IsAllowedOrigin("https://c.example.com"))
	require.True(t, config.AllowedOrigins{"*"}.IsAllowedOrigin("https://c.example.com"))
}

func TestConfig_JSONCFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.jsonc")
	doc := `{
	// backend reached by the gateway
	"API_PORT": 9100,
	"storage_driver": "postgres", /* shared profile */
	"COOKIE_SECURE": true,
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "9100", c.GetAPIPort())
	require.Equal(t, "postgres", c.GetStorageDriver())
	require.True(t, c.GetSecureCookies())

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"API_PORT": `), 0o600))
	_, err = config.Load(bad)
	require.Error(t, err)
}
