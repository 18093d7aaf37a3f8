// Package portalauth is the client-side session and role-authentication core
// of the placement-portal front end. It owns which of the three account roles
// (student, admin, company) is active, performs login and password-reset
// requests against the portal backend, persists the authenticated identity for
// the lifetime of the session, and keeps the cached profile reconciled with
// the backend on every restore.
//
// The package is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Identity, Event, DisplayMessage, MetricsSnapshot). Wire
// plumbing — HTTP requests and failure classification — lives under internal/
// and is never exported. Persistence lives in the session sub-package.
//
// # Architecture boundaries
//
//   - The rendering layer is an external collaborator. portalauth drives it
//     exclusively through the [Renderer] interface ("render slot X with value
//     Y", "mark field F required") and never inspects page structure.
//   - The backend is a request/response boundary. portalauth never implements
//     server-side authentication, password storage, or authorization.
//   - Profile synchronization is fail-open: a fetch failure degrades silently
//     to the last known good data and is never surfaced to the user.
//
// # Concurrency contract
//
// Engine methods are safe to call from multiple goroutines after
// [Builder.Build], but the intended model is a single event-driven control
// flow: one login in flight at a time (enforced with [ErrLoginInFlight]), and
// at most one active identity, where a new login fully replaces the prior
// session.
package portalauth
