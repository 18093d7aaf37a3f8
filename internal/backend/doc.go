// Package backend is the wire boundary to the placement-portal server. It
// performs the three suspension-point requests of the core (login, password
// reset, profile fetch) plus the server-session probe, and collapses every
// failure into a single classified [Error] shared by all callers.
//
// The package owns no state beyond an http.Client and never touches the
// session store or role state; the engine wires the stages together.
package backend
