package gateway

import (
	"context"
	"net"
	"strings"

	"github.com/jrsteele09/billing-console/browser"
	"github.com/jrsteele09/billing-console/internal/config"
)

// BaseURLResolver computes the backend base URL for one call.
type BaseURLResolver interface {
	Resolve(ctx context.Context) string
}

// Resolver maps the operator's current hostname onto the API host of the same tenant, so
// demo.example.com is served by <protocol>://demo.example.com:<port>. Protocol and port come from
// configuration; the hostname is read from the window on every call.
type Resolver struct {
	Protocol string
	Port     string
	// Fallback is used when the call carries no window (server-rendered context).
	Fallback string
}

var _ BaseURLResolver = Resolver{}

func NewResolver(cfg config.APIConfig) Resolver {
	return Resolver{
		Protocol: cfg.GetAPIProtocol(),
		Port:     cfg.GetAPIPort(),
		Fallback: cfg.GetFallbackBaseURL(),
	}
}

// BaseURL returns the API base URL for hostname.
func (r Resolver) BaseURL(hostname string) string {
	protocol := r.Protocol
	if protocol == "" {
		protocol = "http"
	}
	if r.Port == "" {
		if strings.Contains(hostname, ":") {
			hostname = "[" + hostname + "]"
		}
		return protocol + "://" + hostname
	}
	return protocol + "://" + net.JoinHostPort(hostname, r.Port)
}

func (r Resolver) Resolve(ctx context.Context) string {
	w, ok := browser.FromContext(ctx)
	if !ok || w.Location.Hostname() == "" {
		return strings.TrimRight(r.Fallback, "/")
	}
	return r.BaseURL(w.Location.Hostname())
}
