package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the portal (e.g., "https://console.example.com").
	// Its host doubles as the default forwarded-host hint on auth calls.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// MaxPageSize caps the limit parameter on list endpoints.
	MaxPageSize int `env:"HTTP_MAX_PAGE_SIZE" envDefault:"100"`

	// DefaultPageSize applies when no limit parameter is supplied.
	DefaultPageSize int `env:"HTTP_DEFAULT_PAGE_SIZE" envDefault:"20"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.MaxPageSize < 1 {
		h.MaxPageSize = 100
	}
	if h.DefaultPageSize < 1 {
		h.DefaultPageSize = 20
	}
	if h.DefaultPageSize > h.MaxPageSize {
		h.DefaultPageSize = h.MaxPageSize
	}
}
