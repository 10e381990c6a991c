package config

import "strings"

type Cors struct{ source }

var _ CorsConfig = Cors{}

type AllowedOrigins []string

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	for _, o := range a {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

func (a AllowedOrigins) String() string {
	return strings.Join(a, ", ")
}

// GetAllowedOrigins reads a comma separated CORS_ALLOWED_ORIGINS list.
func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return splitList(c.get("CORS_ALLOWED_ORIGINS", "*"))
}

func (Cors) GetAllowedMethods() []string {
	return []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
}

func (Cors) GetAllowedHeaders() []string {
	return []string{"Accept", "Content-Type", "Authorization", "X-Request-ID"}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
