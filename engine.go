package portalauth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/placement-sarthi/portalauth/internal/backend"
	"github.com/placement-sarthi/portalauth/session"
)

// Engine defines a public type used by portalauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	renderer  Renderer
	store     *session.Store
	gateway   *backend.Client
	roles     *roleState
	presenter *presenter
	events    *eventDispatcher
	metrics   *Metrics

	mu      sync.RWMutex
	current *Identity

	loginInFlight atomic.Bool
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.presenter != nil {
		e.presenter.close()
	}
	if e.events != nil {
		e.events.Close()
	}
}

// ActiveRole returns the currently selected role.
//
// ActiveRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ActiveRole() Role {
	if e == nil {
		return RoleStudent
	}
	return e.roles.activeRole()
}

// CurrentIdentity returns the active identity and whether one exists.
//
// CurrentIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CurrentIdentity() (Identity, bool) {
	if e == nil {
		return Identity{}, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current == nil {
		return Identity{}, false
	}
	return *e.current, true
}

// SelectRole transitions the role state machine. All transition effects
// (required markings, message clearing, display copy, form reset) are applied
// atomically from the caller's perspective. A role outside the enumerated set
// is a programming error and panics.
func (e *Engine) SelectRole(role Role) {
	if e == nil {
		return
	}
	previous := e.roles.selectRole(role, e.renderer, e.presenter)

	if previous != role {
		e.emit(context.Background(), Event{
			Type:    EventRoleChanged,
			Role:    role,
			Success: true,
		})
	}
}

// Logout destroys the active identity and clears the stored session
// unconditionally.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	var userID string
	if e.current != nil {
		userID = e.current.ID
	}
	e.current = nil
	e.mu.Unlock()

	err := e.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	e.metrics.Inc(MetricLogout)
	e.emit(ctx, Event{
		Type:    EventLogout,
		UserID:  userID,
		Success: true,
	})
	return nil
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EventsDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.events.Dropped()
}

func (e *Engine) emit(ctx context.Context, event Event) {
	if e == nil {
		return
	}
	e.events.Emit(ctx, event)
}

func (e *Engine) setCurrent(id Identity) {
	e.mu.Lock()
	e.current = &id
	e.mu.Unlock()
}

// recordFromIdentity externalizes an [Identity] into the stored-session form.
// The role-tagged data lands in exactly the field matching the role, which
// the session layer re-checks before persisting.
func recordFromIdentity(id Identity) (*session.Record, error) {
	if !id.Role.Valid() {
		return nil, ErrUnknownRole
	}
	if id.Data == nil || id.Data.RoleTag() != id.Role {
		return nil, fmt.Errorf("identity role %q does not match data tag", id.Role)
	}

	raw, err := json.Marshal(id.Data)
	if err != nil {
		return nil, err
	}

	rec := &session.Record{
		ID:    id.ID,
		Name:  id.Name,
		Role:  string(id.Role),
		Email: id.Email,
	}
	switch id.Role {
	case RoleStudent:
		rec.StudentData = raw
	case RoleCompany:
		rec.CompanyData = raw
	case RoleAdmin:
		rec.AdminData = raw
	}
	return rec, nil
}

// identityFromRecord rebuilds an [Identity] from its stored form.
func identityFromRecord(rec *session.Record) (Identity, error) {
	role := Role(rec.Role)
	if !role.Valid() {
		return Identity{}, ErrUnknownRole
	}

	var raw json.RawMessage
	switch role {
	case RoleStudent:
		raw = rec.StudentData
	case RoleCompany:
		raw = rec.CompanyData
	case RoleAdmin:
		raw = rec.AdminData
	}
	if len(raw) == 0 {
		return Identity{}, fmt.Errorf("stored session for role %q carries no role data", role)
	}

	data, err := decodeRoleData(role, raw)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		ID:    rec.ID,
		Name:  rec.Name,
		Role:  role,
		Email: rec.Email,
		Data:  data,
	}, nil
}
