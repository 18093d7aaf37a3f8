package portalauth

import (
	"errors"
	"net/url"
	"time"
)

// Config defines a public type used by portalauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Backend   BackendConfig
	Session   SessionConfig
	Presenter PresenterConfig
	Events    EventsConfig
	Metrics   MetricsConfig
}

/*
====================================
BACKEND CONFIG
====================================
*/

// BackendConfig defines a public type used by portalauth APIs.
//
// BackendConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BackendConfig struct {
	// BaseURL is the portal backend root, e.g. "http://localhost:8081".
	BaseURL string

	// RequestTimeout bounds each backend request. Zero means no deadline,
	// which is the original contract: a hung request keeps the submit
	// control disabled indefinitely.
	RequestTimeout time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by portalauth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RedisPrefix namespaces the single stored-session key.
	RedisPrefix string

	// SigningKey authenticates the persisted session blob. When empty,
	// Build generates an ephemeral key, so stored identities survive page
	// navigation but not a process restart (session-scoped persistence).
	SigningKey []byte

	// TTL expires the stored session. Zero means no expiry.
	TTL time.Duration
}

/*
====================================
PRESENTER CONFIG
====================================
*/

// PresenterConfig defines a public type used by portalauth APIs.
//
// PresenterConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PresenterConfig struct {
	// ErrorDismissAfter is how long an error message stays visible before
	// auto-dismissal. Success messages persist until the next user action.
	ErrorDismissAfter time.Duration
}

// EventsConfig defines a public type used by portalauth APIs.
//
// EventsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by portalauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			RequestTimeout: 0,
		},
		Session: SessionConfig{
			RedisPrefix: "ps",
			TTL:         0,
		},
		Presenter: PresenterConfig{
			ErrorDismissAfter: 5 * time.Second,
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation fails.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("Backend BaseURL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("Backend BaseURL must be an absolute URL")
	}
	if c.Backend.RequestTimeout < 0 {
		return errors.New("Backend RequestTimeout cannot be negative")
	}
	if c.Session.RedisPrefix == "" {
		return errors.New("Session RedisPrefix is required")
	}
	if c.Session.TTL < 0 {
		return errors.New("Session TTL cannot be negative")
	}
	if c.Presenter.ErrorDismissAfter <= 0 {
		return errors.New("Presenter ErrorDismissAfter must be positive")
	}
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return errors.New("Events BufferSize cannot be negative")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Session.SigningKey = cloneBytes(cfg.Session.SigningKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
