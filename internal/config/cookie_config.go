package config

import "strconv"

type CookieConfig interface {
	GetSessionCookieName() string
	GetSecureCookies() bool
	GetProtectedPrefixes() []string
}

type Cookies struct{ source }

var _ CookieConfig = Cookies{}

// GetSessionCookieName is the cookie mirroring the access token for the route guard.
func (c Cookies) GetSessionCookieName() string {
	return c.get("SESSION_COOKIE_NAME", "auth_token")
}

func (c Cookies) GetSecureCookies() bool {
	secure, err := strconv.ParseBool(c.get("COOKIE_SECURE", "false"))
	return err == nil && secure
}

func (c Cookies) GetProtectedPrefixes() []string {
	return splitList(c.get("PROTECTED_PREFIXES", "/dashboard"))
}
