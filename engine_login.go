package portalauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SubmitLogin performs a login for the currently active role. This is the
// form-submission path: it drives the presenter on every outcome.
func (e *Engine) SubmitLogin(ctx context.Context, creds Credentials) (Identity, error) {
	return e.Login(ctx, e.roles.activeRole(), creds)
}

// Login authenticates credentials against the endpoint bound to role.
//
// Both credential fields must be non-empty after trimming; a violation fails
// locally with [ErrValidation] before any network call. Exactly one request
// is issued; success requires both transport success and the body-level
// success flag. On success the identity is persisted before Login returns,
// so any profile refresh triggered afterwards observes the saved session.
// While a login is in flight, further calls fail with [ErrLoginInFlight].
func (e *Engine) Login(ctx context.Context, role Role, creds Credentials) (Identity, error) {
	if e == nil {
		return Identity{}, ErrEngineNotReady
	}
	if !role.Valid() {
		return Identity{}, ErrUnknownRole
	}

	userID := strings.TrimSpace(creds.UserID)
	if userID == "" || strings.TrimSpace(creds.Password) == "" {
		e.metrics.Inc(MetricLoginValidationError)
		e.presenter.show(Present(ErrValidation))
		return Identity{}, ErrValidation
	}

	if !e.loginInFlight.CompareAndSwap(false, true) {
		e.metrics.Inc(MetricLoginInFlightRejected)
		return Identity{}, ErrLoginInFlight
	}
	defer e.loginInFlight.Store(false)

	attemptID := uuid.NewString()
	e.presenter.hide()

	payload, err := e.gateway.Login(ctx, role.pathSegment(), userID, creds.Password)
	if err != nil {
		err = sentinelFor(err)
		e.metrics.Inc(MetricLoginFailure)
		e.emit(ctx, Event{
			Type:      EventLoginFailure,
			Role:      role,
			UserID:    userID,
			AttemptID: attemptID,
			Error:     err.Error(),
		})
		e.presenter.show(Present(err))
		return Identity{}, err
	}

	identity, err := identityFromPayload(role, payload, userID)
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		e.emit(ctx, Event{
			Type:      EventLoginFailure,
			Role:      role,
			UserID:    userID,
			AttemptID: attemptID,
			Error:     err.Error(),
		})
		e.presenter.show(Present(err))
		return Identity{}, err
	}

	rec, err := recordFromIdentity(identity)
	if err != nil {
		return Identity{}, err
	}
	if err := e.store.Save(ctx, rec); err != nil {
		e.metrics.Inc(MetricLoginFailure)
		saveErr := fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
		e.emit(ctx, Event{
			Type:      EventLoginFailure,
			Role:      role,
			UserID:    identity.ID,
			AttemptID: attemptID,
			Error:     saveErr.Error(),
		})
		e.presenter.show(Present(saveErr))
		return Identity{}, saveErr
	}

	e.setCurrent(identity)

	e.metrics.Inc(MetricLoginSuccess)
	e.emit(ctx, Event{
		Type:      EventLoginSuccess,
		Role:      role,
		UserID:    identity.ID,
		AttemptID: attemptID,
		Success:   true,
	})
	e.emit(ctx, Event{
		Type:      EventIdentityChanged,
		Role:      role,
		UserID:    identity.ID,
		AttemptID: attemptID,
		Success:   true,
	})

	name := identity.Name
	if name == "" {
		name = "User"
	}
	e.presenter.show(DisplayMessage{
		Kind: MessageSuccess,
		Text: "Login successful! Welcome back, " + name,
	})

	return identity, nil
}
