package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

const defaultProviderTimeout = 10 * time.Second

// ProviderConfig contains the connection settings for the remote identity provider.
// The provider is the authoritative store for all user accounts; the portal itself
// never persists credentials.
type ProviderConfig struct {
	// BaseUrl is the base URL of the identity provider, for example https://myproject.supabase.co
	BaseUrl string `yaml:"base_url"`
	// ServiceRoleKey is the privileged API key that is used for the admin user-directory endpoints.
	// It must never be handed out to clients.
	ServiceRoleKey string `yaml:"service_role_key"`
	// Timeout bounds every provider round-trip. Defaults to 10 seconds.
	Timeout time.Duration `yaml:"timeout"`
}

// applyEnvironment fills unset provider credentials from the process environment.
// This keeps plain environment deployments working without a config file.
func (c *ProviderConfig) applyEnvironment() {
	if c.BaseUrl == "" {
		c.BaseUrl = os.Getenv("HRMS_PROVIDER_URL")
	}
	if c.ServiceRoleKey == "" {
		c.ServiceRoleKey = os.Getenv("HRMS_PROVIDER_KEY")
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultProviderTimeout
	}

	c.BaseUrl = strings.TrimRight(c.BaseUrl, "/")
}

// Validate ensures that the provider settings are usable. Without them the portal
// cannot authenticate anybody, so missing values are a startup failure.
func (c *ProviderConfig) Validate() error {
	if c.BaseUrl == "" {
		return errors.New("provider base URL is missing, set provider.base_url or HRMS_PROVIDER_URL")
	}
	if c.ServiceRoleKey == "" {
		return errors.New("provider service role key is missing, set provider.service_role_key or HRMS_PROVIDER_KEY")
	}

	return nil
}
