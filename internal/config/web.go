package config

import (
	"strings"
	"time"
)

const defaultCacheTTL = 300 * time.Second

// WebConfig contains the configuration for the web server.
type WebConfig struct {
	// RequestLogging enables logging of all HTTP requests.
	RequestLogging bool `yaml:"request_logging"`
	// ExternalUrl is the URL where a client can access the portal.
	ExternalUrl string `yaml:"external_url"`
	// ListeningAddress is the address and port for the web server.
	ListeningAddress string `yaml:"listening_address"`
	// SessionIdentifier is the name of the session cookie.
	SessionIdentifier string `yaml:"session_identifier"`
	// CsrfSecret is the CSRF secret.
	CsrfSecret string `yaml:"csrf_secret"`
	// CertFile is the path to the TLS certificate file.
	CertFile string `yaml:"cert_file"`
	// KeyFile is the path to the TLS certificate key file.
	KeyFile string `yaml:"key_file"`
}

func (c *WebConfig) Sanitize() {
	c.ExternalUrl = strings.TrimRight(c.ExternalUrl, "/")
}

// DirectoryConfig contains tuning knobs for the user directory service.
type DirectoryConfig struct {
	// CacheTTL is the time-to-live of the cached user listing. Defaults to 300 seconds.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}
