// Package session persists the single authenticated identity of the portal
// front end. At most one stored session exists at a time: Save fully replaces
// the previous record, Load returns it or reports absence, Clear removes it.
//
// The stored blob is a signed envelope around the record JSON. A blob that
// fails verification or decoding — tampered, truncated, or written under a
// different signing key — is treated as absent and removed, never surfaced to
// the caller. Together with an ephemeral per-process signing key this gives
// session-scoped persistence: identities survive page navigation but not a
// restart of the owning process.
package session
