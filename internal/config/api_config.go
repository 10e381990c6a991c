package config

// APIConfig describes how the console reaches the billing backend. The hostname is not
// configured: it is taken from the operator's current location on every request.
type APIConfig interface {
	GetAPIProtocol() string
	GetAPIPort() string
	GetFallbackBaseURL() string
}

type API struct{ source }

var _ APIConfig = API{}

func (a API) GetAPIProtocol() string {
	return a.get("API_PROTOCOL", "http")
}

// GetAPIPort defaults to the development backend's default port.
func (a API) GetAPIPort() string {
	return a.get("API_PORT", "8000")
}

// GetFallbackBaseURL is used for calls made outside of any browser context.
func (a API) GetFallbackBaseURL() string {
	return a.get("API_FALLBACK_BASE_URL", "http://localhost:8000")
}
