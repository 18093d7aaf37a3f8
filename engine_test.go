package portalauth

import (
	"context"
	"errors"
	"testing"
)

func TestNilEngineIsInert(t *testing.T) {
	var e *Engine
	ctx := context.Background()

	e.SelectRole(RoleAdmin)
	e.BeginPasswordReset()
	e.Close()

	if got := e.ActiveRole(); got != RoleStudent {
		t.Fatalf("ActiveRole = %q, want student", got)
	}
	if _, ok := e.CurrentIdentity(); ok {
		t.Fatal("nil engine reported a current identity")
	}
	if _, restored := e.Initialize(ctx); restored {
		t.Fatal("nil engine restored a session")
	}
	if _, err := e.Login(ctx, RoleStudent, Credentials{UserID: "a", Password: "b"}); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("Login error = %v, want ErrEngineNotReady", err)
	}
	if err := e.RequestPasswordReset(ctx, RoleStudent, "a"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("RequestPasswordReset error = %v, want ErrEngineNotReady", err)
	}
	if err := e.Logout(ctx); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("Logout error = %v, want ErrEngineNotReady", err)
	}

	cached := testStudentIdentity()
	if got := e.RefreshProfile(ctx, cached); got.ID != cached.ID {
		t.Fatalf("RefreshProfile = %+v, want the input identity", got)
	}

	if e.EventsDropped() != 0 {
		t.Fatal("nil engine reported dropped events")
	}
	if snap := e.MetricsSnapshot(); len(snap.Counters) != 0 {
		t.Fatalf("nil engine snapshot = %v, want empty", snap.Counters)
	}
}
