package portalauth

import "context"

// RefreshProfile reconciles an identity's cached role data with the backend.
//
// The merge policy is whole-replacement with a fail-open fallback: when the
// fetch succeeds, the fetched payload becomes the new role data in full and
// the merged identity is persisted; when it fails for any reason, the cached
// role data in the passed-in identity is kept unchanged and nothing is
// re-saved. The failure is counted and emitted as an event but never shown to
// the user, so a backend outage degrades silently to last known good data.
// With an unchanged backend, repeated calls return the same identity.
func (e *Engine) RefreshProfile(ctx context.Context, identity Identity) Identity {
	if e == nil || !identity.Role.Valid() {
		return identity
	}

	fallback := func(err error) Identity {
		e.metrics.Inc(MetricProfileSyncFallback)
		e.emit(ctx, Event{
			Type:   EventProfileSyncFallback,
			Role:   identity.Role,
			UserID: identity.ID,
			Error:  err.Error(),
		})
		return identity
	}

	payload, err := e.gateway.FetchProfile(ctx, identity.Role.pathSegment(), identity.ID)
	if err != nil {
		return fallback(err)
	}

	fresh, err := decodeRoleData(identity.Role, payload)
	if err != nil {
		return fallback(err)
	}

	merged := identity
	merged.Data = fresh

	rec, err := recordFromIdentity(merged)
	if err != nil {
		return fallback(err)
	}
	if err := e.store.Save(ctx, rec); err != nil {
		return fallback(err)
	}

	e.mu.Lock()
	if e.current != nil && e.current.ID == merged.ID && e.current.Role == merged.Role {
		e.current = &merged
	}
	e.mu.Unlock()

	e.metrics.Inc(MetricProfileSyncSuccess)
	e.emit(ctx, Event{
		Type:    EventProfileSynced,
		Role:    merged.Role,
		UserID:  merged.ID,
		Success: true,
	})

	return merged
}
