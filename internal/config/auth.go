package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvAuthIssuer        = "TRIAGE_AUTH_ISSUER"
	EnvAuthClientID      = "TRIAGE_AUTH_CLIENT_ID"
	EnvAuthClientSecret  = "TRIAGE_AUTH_CLIENT_SECRET"
	EnvAuthRedirectURL   = "TRIAGE_AUTH_REDIRECT_URL"
	EnvAuthAllowedDomain = "TRIAGE_AUTH_ALLOWED_DOMAIN"
	EnvAuthSessionTTL    = "TRIAGE_AUTH_SESSION_TTL"
	EnvAuthCookieName    = "TRIAGE_AUTH_COOKIE_NAME"
	EnvAuthCookieSecure  = "TRIAGE_AUTH_COOKIE_SECURE"
)

// AuthConfig holds OIDC provider, domain restriction, and session parameters.
type AuthConfig struct {
	Issuer        string `toml:"issuer"`
	ClientID      string `toml:"client_id"`
	ClientSecret  string `toml:"client_secret"`
	RedirectURL   string `toml:"redirect_url"`
	AllowedDomain string `toml:"allowed_domain"`
	SessionTTL    string `toml:"session_ttl"`
	CookieName    string `toml:"cookie_name"`
	CookieSecure  bool   `toml:"cookie_secure"`
}

// SessionTTLDuration returns SessionTTL as a time.Duration.
func (c *AuthConfig) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.ClientSecret != "" {
		c.ClientSecret = overlay.ClientSecret
	}
	if overlay.RedirectURL != "" {
		c.RedirectURL = overlay.RedirectURL
	}
	if overlay.AllowedDomain != "" {
		c.AllowedDomain = overlay.AllowedDomain
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	c.CookieSecure = overlay.CookieSecure
}

func (c *AuthConfig) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "https://accounts.google.com"
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "12h"
	}
	if c.CookieName == "" {
		c.CookieName = "triage_session"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvAuthClientSecret); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv(EnvAuthRedirectURL); v != "" {
		c.RedirectURL = v
	}
	if v := os.Getenv(EnvAuthAllowedDomain); v != "" {
		c.AllowedDomain = v
	}
	if v := os.Getenv(EnvAuthSessionTTL); v != "" {
		c.SessionTTL = v
	}
	if v := os.Getenv(EnvAuthCookieName); v != "" {
		c.CookieName = v
	}
	if v := os.Getenv(EnvAuthCookieSecure); v != "" {
		c.CookieSecure = v == "true" || v == "1"
	}
}

func (c *AuthConfig) validate() error {
	if c.AllowedDomain == "" {
		return fmt.Errorf("allowed_domain required")
	}
	if _, err := time.ParseDuration(c.SessionTTL); err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	return nil
}
