package browser

import "sync"

// Headless is an in-memory Window used by tests and command line tools.
type Headless struct {
	mu       sync.Mutex
	hostname string
	history  []string
	cookies  map[string]string
}

var (
	_ Location = (*Headless)(nil)
	_ Cookies  = (*Headless)(nil)
)

func NewHeadless(hostname string) *Headless {
	return &Headless{hostname: hostname, cookies: make(map[string]string)}
}

func (h *Headless) Window() *Window {
	return &Window{Location: h, Cookies: h}
}

func (h *Headless) Hostname() string {
	return h.hostname
}

func (h *Headless) Assign(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append(h.history, path)
}

// Href returns the last assigned path, or "" when no navigation happened.
func (h *Headless) Href() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.history) == 0 {
		return ""
	}
	return h.history[len(h.history)-1]
}

func (h *Headless) History() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.history...)
}

func (h *Headless) Get(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.cookies[name]
	return v, ok && v != ""
}

func (h *Headless) Set(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cookies[name] = value
}

func (h *Headless) Delete(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.cookies, name)
}
