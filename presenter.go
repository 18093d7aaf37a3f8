package portalauth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/placement-sarthi/portalauth/internal/backend"
)

// MessageKind distinguishes error from success presentation.
type MessageKind uint8

const (
	// MessageError is an exported constant or variable used by the session core.
	MessageError MessageKind = iota
	// MessageSuccess is an exported constant or variable used by the session core.
	MessageSuccess
)

// DisplayMessage is the user-visible rendering of a classified failure or a
// success notice.
type DisplayMessage struct {
	Kind MessageKind
	Text string
}

// Present maps a classified failure to its fixed human-readable text. An
// explicit backend message takes precedence verbatim over every generic
// entry. Present is stateless and usable on its own.
func Present(err error) DisplayMessage {
	var berr *backend.Error
	if errors.As(err, &berr) {
		switch berr.Kind {
		case backend.KindBackendMessage:
			return DisplayMessage{Kind: MessageError, Text: berr.Message}
		case backend.KindInvalidCredentials:
			return DisplayMessage{Kind: MessageError, Text: "Invalid credentials. Please try again."}
		case backend.KindNotFound:
			return DisplayMessage{Kind: MessageError, Text: "Account not found. Please check your ID."}
		case backend.KindServer:
			return DisplayMessage{Kind: MessageError, Text: fmt.Sprintf("Server error (%d). Please try again later.", berr.Status)}
		default:
			return DisplayMessage{Kind: MessageError, Text: "Network error. Please check your connection and try again."}
		}
	}

	switch {
	case errors.Is(err, ErrValidation):
		return DisplayMessage{Kind: MessageError, Text: "Please fill in all fields"}
	case errors.Is(err, ErrLoginInFlight):
		return DisplayMessage{Kind: MessageError, Text: "A login is already in progress. Please wait."}
	case errors.Is(err, ErrSessionUnavailable):
		return DisplayMessage{Kind: MessageError, Text: "Could not save your session. Please try again."}
	default:
		return DisplayMessage{Kind: MessageError, Text: "Something went wrong. Please try again."}
	}
}

// presenter shows messages through the renderer and owns the dismissal timer.
// Error messages auto-dismiss after the configured delay; success messages
// persist until the next user action replaces or hides them.
type presenter struct {
	renderer     Renderer
	dismissAfter time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newPresenter(r Renderer, dismissAfter time.Duration) *presenter {
	return &presenter{
		renderer:     r,
		dismissAfter: dismissAfter,
	}
}

func (p *presenter) show(msg DisplayMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimerLocked()
	p.renderer.ShowMessage(msg.Kind, msg.Text)

	if msg.Kind == MessageError {
		p.timer = time.AfterFunc(p.dismissAfter, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.timer = nil
			p.renderer.HideMessage()
		})
	}
}

func (p *presenter) hide() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimerLocked()
	p.renderer.HideMessage()
}

func (p *presenter) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimerLocked()
}

func (p *presenter) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
