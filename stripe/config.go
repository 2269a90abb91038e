package stripe

import (
	"fmt"
	"strings"
)

// Config holds the complete Stripe gateway configuration. It is built once at
// process start (from flags/env in cmd/service) and injected into the service,
// instead of being read from the environment on every request.
type Config struct {
	// APIKey is the Stripe secret key (sk_test_... or sk_live_...).
	APIKey string
	// SuccessURL is the default redirect after a completed checkout session.
	SuccessURL string
	// CancelURL is the default redirect after an abandoned checkout session.
	CancelURL string
	// ReturnURL is the default redirect returned to one-time payment clients.
	ReturnURL string
	// DisableLink restricts payment intents to card only, turning off
	// Link and wallet payment methods.
	DisableLink bool
}

// Validate checks that the configuration is usable. Called once at startup.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("stripe secret key is required")
	}
	return nil
}

// HasKey reports whether a secret key is configured.
func (c *Config) HasKey() bool {
	return c.APIKey != ""
}

// KeyPrefix returns the first 7 characters of the secret key
// ("sk_test" / "sk_live"), never the key itself.
func (c *Config) KeyPrefix() string {
	if len(c.APIKey) < 7 {
		return c.APIKey
	}
	return c.APIKey[:7]
}

// LiveMode reports whether the configured key is a live-mode key.
func (c *Config) LiveMode() bool {
	return strings.HasPrefix(c.APIKey, "sk_live")
}
