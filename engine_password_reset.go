package portalauth

import (
	"context"
	"strings"
)

// resetText is the static per-role copy for the password-reset dialog.
type resetText struct {
	title       string
	description string
	label       string
	placeholder string
}

var resetTexts = map[Role]resetText{
	RoleStudent: {
		title:       "Reset Your Password",
		description: "Enter your student ID to receive a password reset link on your registered email.",
		label:       "Student ID",
		placeholder: "Enter your student ID",
	},
	RoleAdmin: {
		title:       "Reset Admin Password",
		description: "Enter your admin ID to receive a password reset link on your registered email.",
		label:       "Admin ID",
		placeholder: "Enter your admin ID",
	},
	RoleCompany: {
		title:       "Reset Company Password",
		description: "Enter your company ID to receive a password reset link on your registered email.",
		label:       "Company ID",
		placeholder: "Enter your company ID",
	},
}

// BeginPasswordReset renders the reset-dialog copy for the currently active
// role. No network traffic is involved; opening and closing the dialog stays
// with the host page.
func (e *Engine) BeginPasswordReset() {
	if e == nil {
		return
	}
	text := resetTexts[e.roles.activeRole()]
	e.renderer.RenderText(SlotResetTitle, text.title)
	e.renderer.RenderText(SlotResetDescription, text.description)
	e.renderer.RenderText(SlotResetLabel, text.label)
	e.renderer.RenderText(SlotResetPlaceholder, text.placeholder)
}

// RequestPasswordReset asks the backend to send a reset link for userID under
// the given role. A blank ID fails locally with [ErrValidation] and never
// reaches the network. Success requires both transport success and the
// body-level flag; the backend's message, when present, is surfaced verbatim.
func (e *Engine) RequestPasswordReset(ctx context.Context, role Role, userID string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if !role.Valid() {
		return ErrUnknownRole
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		e.presenter.show(Present(ErrValidation))
		return ErrValidation
	}

	if err := e.gateway.RequestPasswordReset(ctx, role.pathSegment(), userID); err != nil {
		err = sentinelFor(err)
		e.metrics.Inc(MetricResetFailure)
		e.emit(ctx, Event{
			Type:   EventResetFailure,
			Role:   role,
			UserID: userID,
			Error:  err.Error(),
		})
		e.presenter.show(Present(err))
		return err
	}

	e.metrics.Inc(MetricResetRequested)
	e.emit(ctx, Event{
		Type:    EventResetRequested,
		Role:    role,
		UserID:  userID,
		Success: true,
	})
	e.presenter.show(DisplayMessage{
		Kind: MessageSuccess,
		Text: "Password reset link has been sent to your registered email!",
	})
	return nil
}
