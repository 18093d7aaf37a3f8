package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var errInvalidJSON = errors.New("server returned invalid response")

// Kind is the failure classification produced by every backend call. Exactly
// one Kind is assigned per failed request.
type Kind uint8

const (
	// KindNetwork is a transport or parse failure: no usable server response.
	KindNetwork Kind = iota
	// KindServer is a non-success status outside the explicitly classified set.
	KindServer
	// KindInvalidCredentials is an explicit unauthorized response.
	KindInvalidCredentials
	// KindNotFound is an explicit not-found response.
	KindNotFound
	// KindBackendMessage is a failure whose body carried an explicit message.
	KindBackendMessage
)

// Error is the classified failure returned by every backend operation.
// Status is the HTTP status code when a response was obtained (0 for
// KindNetwork); Message is the verbatim body message for KindBackendMessage.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

// Error describes the error operation and its observable behavior.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return "backend unreachable: " + e.Message
	case KindInvalidCredentials:
		return "backend: invalid credentials"
	case KindNotFound:
		return "backend: not found"
	case KindBackendMessage:
		return "backend: " + e.Message
	default:
		return fmt.Sprintf("backend: status %d", e.Status)
	}
}

func networkError(err error) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindNetwork, Message: msg}
}

// classify maps a parsed response to a single failure classification, or nil
// for success. Precedence is fixed: an explicit body message wins over any
// status-derived class, then unauthorized, then not-found, then a generic
// server failure carrying the status code. A 2xx status alone is not success;
// the body-level flag is authoritative.
func classify(status int, env *envelope) *Error {
	ok := status >= 200 && status < 300
	if ok && env != nil && env.Success {
		return nil
	}

	if env != nil && env.Message != "" {
		return &Error{Kind: KindBackendMessage, Status: status, Message: env.Message}
	}

	switch status {
	case http.StatusUnauthorized:
		return &Error{Kind: KindInvalidCredentials, Status: status}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status}
	}

	if !ok {
		return &Error{Kind: KindServer, Status: status}
	}

	// Transport succeeded with a 2xx but the body flag marked failure and no
	// message was supplied. The original front end showed the credentials
	// text here.
	return &Error{Kind: KindInvalidCredentials, Status: status}
}
