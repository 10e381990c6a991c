package browser

import (
	"net"
	"net/http"
	"strings"
	"sync"
)

// CookieOptions controls the attributes of cookies written through an Exchange.
type CookieOptions struct {
	Secure bool
	// MaxAge in seconds; zero means a session cookie.
	MaxAge int
}

// Exchange binds a Window to one HTTP request/response pair served by the console. Navigation is
// recorded so the handler can turn it into a redirect, cookie writes become Set-Cookie headers.
type Exchange struct {
	w    http.ResponseWriter
	r    *http.Request
	opts CookieOptions

	mu       sync.Mutex
	redirect string
	written  map[string]string // cookies set or deleted ("") during this exchange
}

var (
	_ Location = (*Exchange)(nil)
	_ Cookies  = (*Exchange)(nil)
)

func ForRequest(w http.ResponseWriter, r *http.Request, opts CookieOptions) *Exchange {
	return &Exchange{w: w, r: r, opts: opts, written: make(map[string]string)}
}

// Window returns a Window backed by this exchange.
func (e *Exchange) Window() *Window {
	return &Window{Location: e, Cookies: e}
}

// Request returns the exchange's request with the Window attached to its context.
func (e *Exchange) Request() *http.Request {
	return e.r.WithContext(NewContext(e.r.Context(), e.Window()))
}

func (e *Exchange) Hostname() string {
	host := e.r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	// Bracketed IPv6 literal without a port.
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}

func (e *Exchange) Assign(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.redirect = path
}

// Redirected reports the last location assigned during the exchange.
func (e *Exchange) Redirected() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redirect, e.redirect != ""
}

func (e *Exchange) Get(name string) (string, bool) {
	e.mu.Lock()
	v, ok := e.written[name]
	e.mu.Unlock()
	if ok {
		return v, v != ""
	}
	c, err := e.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (e *Exchange) Set(name, value string) {
	e.mu.Lock()
	e.written[name] = value
	e.mu.Unlock()
	http.SetCookie(e.w, e.cookie(name, value, e.opts.MaxAge))
}

func (e *Exchange) Delete(name string) {
	e.mu.Lock()
	e.written[name] = ""
	e.mu.Unlock()
	http.SetCookie(e.w, e.cookie(name, "", -1))
}

func (e *Exchange) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   e.opts.Secure || e.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
