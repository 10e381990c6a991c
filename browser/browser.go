// Package browser models the parts of the operator's browser the console core depends on: the
// current location (read for tenant routing, assigned on forced re-login) and the cookie jar
// (holding the access token mirror read by the route guard).
//
// A Window travels on the context.Context of a call. A call whose context carries a Window runs
// "in a browser context"; a call without one is treated as server-rendered.
package browser

import "context"

type Location interface {
	// Hostname is the host of the current location, without port.
	Hostname() string
	// Assign navigates to path.
	Assign(path string)
}

type Cookies interface {
	Get(name string) (string, bool)
	Set(name, value string)
	Delete(name string)
}

type Window struct {
	Location Location
	Cookies  Cookies
}

type windowKey struct{}

// NewContext returns a copy of ctx carrying w.
func NewContext(ctx context.Context, w *Window) context.Context {
	return context.WithValue(ctx, windowKey{}, w)
}

// FromContext returns the Window carried by ctx, if any.
func FromContext(ctx context.Context) (*Window, bool) {
	w, ok := ctx.Value(windowKey{}).(*Window)
	if !ok || w == nil || w.Location == nil {
		return nil, false
	}
	return w, true
}
