package portalauth

import (
	"errors"
	"fmt"

	"github.com/placement-sarthi/portalauth/internal/backend"
)

var (
	// ErrValidation is an exported constant or variable used by the session core.
	ErrValidation = errors.New("required input empty")
	// ErrInvalidCredentials is an exported constant or variable used by the session core.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an exported constant or variable used by the session core.
	ErrUserNotFound = errors.New("user not found")
	// ErrBackendRejected is an exported constant or variable used by the session core.
	ErrBackendRejected = errors.New("backend rejected request")
	// ErrServerFailure is an exported constant or variable used by the session core.
	ErrServerFailure = errors.New("server failure")
	// ErrNetwork is an exported constant or variable used by the session core.
	ErrNetwork = errors.New("network failure")
	// ErrUnknownRole is an exported constant or variable used by the session core.
	ErrUnknownRole = errors.New("unknown role")
	// ErrLoginInFlight is an exported constant or variable used by the session core.
	ErrLoginInFlight = errors.New("login already in flight")
	// ErrSessionUnavailable is an exported constant or variable used by the session core.
	ErrSessionUnavailable = errors.New("session store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the session core.
	ErrEngineNotReady = errors.New("engine not ready")
)

// sentinelFor pairs a classified backend failure with its exported sentinel.
// The classified type lives in an internal package, so callers outside the
// module match failure classes through errors.Is on these sentinels instead.
func sentinelFor(err error) error {
	var berr *backend.Error
	if !errors.As(err, &berr) {
		return err
	}
	switch berr.Kind {
	case backend.KindInvalidCredentials:
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, berr)
	case backend.KindNotFound:
		return fmt.Errorf("%w: %w", ErrUserNotFound, berr)
	case backend.KindBackendMessage:
		return fmt.Errorf("%w: %w", ErrBackendRejected, berr)
	case backend.KindServer:
		return fmt.Errorf("%w: %w", ErrServerFailure, berr)
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, berr)
	}
}
