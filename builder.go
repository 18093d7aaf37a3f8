package portalauth

import (
	"crypto/rand"
	"errors"
	"net/http"

	"github.com/placement-sarthi/portalauth/internal/backend"
	"github.com/placement-sarthi/portalauth/session"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by portalauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	http   *http.Client

	renderer  Renderer
	eventSink EventSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Backend.BaseURL = baseURL
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(hc *http.Client) *Builder {
	b.http = hc
	return b
}

// WithRenderer describes the withrenderer operation and its observable behavior.
//
// WithRenderer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRenderer(r Renderer) *Builder {
	b.renderer = r
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.eventSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if b.renderer == nil {
		return nil, errors.New("renderer required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(cfg.Session.SigningKey) == 0 {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		cfg.Session.SigningKey = key
	}

	hc := b.http
	if hc == nil && cfg.Backend.RequestTimeout > 0 {
		hc = &http.Client{Timeout: cfg.Backend.RequestTimeout}
	}

	engine := &Engine{
		config:   cfg,
		renderer: b.renderer,
		store:    session.NewStore(b.redis, cfg.Session.RedisPrefix, cfg.Session.SigningKey, cfg.Session.TTL),
		gateway:  backend.New(cfg.Backend.BaseURL, hc),
		roles:    newRoleState(),
		metrics:  NewMetrics(cfg.Metrics),
	}
	engine.presenter = newPresenter(b.renderer, cfg.Presenter.ErrorDismissAfter)
	engine.events = newEventDispatcher(cfg.Events, b.eventSink)

	b.built = true

	return engine, nil
}
