package portalauth

import "context"

// Initialize is the explicit entry point the host page calls once after its
// own setup. It resets the role state machine to student, renders the initial
// role view, and attempts to restore a previously stored session:
//
//   - no stored session: returns a zero identity and false;
//   - stored session whose server-side counterpart is gone or unreachable:
//     the store is cleared and false is returned;
//   - live session: the profile is refreshed fail-open, the identity becomes
//     current, and true is returned.
//
// Malformed stored data is silently discarded and reported as absent.
func (e *Engine) Initialize(ctx context.Context) (Identity, bool) {
	if e == nil {
		return Identity{}, false
	}

	e.roles.selectRole(RoleStudent, e.renderer, e.presenter)

	rec, err := e.store.Load(ctx)
	if err != nil || rec == nil {
		return Identity{}, false
	}

	identity, err := identityFromRecord(rec)
	if err != nil {
		_ = e.store.Clear(ctx)
		return Identity{}, false
	}

	if _, _, err := e.gateway.CheckSession(ctx); err != nil {
		// Server session expired or unreachable: drop the local copy rather
		// than present a dashboard the backend will reject.
		_ = e.store.Clear(ctx)
		e.metrics.Inc(MetricSessionRejected)
		e.emit(ctx, Event{
			Type:   EventSessionRejected,
			Role:   identity.Role,
			UserID: identity.ID,
			Error:  err.Error(),
		})
		return Identity{}, false
	}

	identity = e.RefreshProfile(ctx, identity)
	e.setCurrent(identity)

	e.metrics.Inc(MetricSessionRestored)
	e.emit(ctx, Event{
		Type:    EventSessionRestored,
		Role:    identity.Role,
		UserID:  identity.ID,
		Success: true,
	})
	e.emit(ctx, Event{
		Type:    EventIdentityChanged,
		Role:    identity.Role,
		UserID:  identity.ID,
		Success: true,
	})

	return identity, true
}
