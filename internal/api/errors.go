package api

import (
	"errors"
	"fmt"
)

// InjectedErrorMarker is the message the catalog server returns when it
// deliberately fails a request for testing.
const InjectedErrorMarker = "Error injected for testing purposes"

// Kind classifies a failed request.
type Kind string

// Failure kinds produced by Client.Do.
const (
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindAPI          Kind = "api"
	KindTimeout      Kind = "timeout"
	KindNetwork      Kind = "network"
	KindInjected     Kind = "injected"
	KindDecode       Kind = "decode"
	KindCanceled     Kind = "canceled"
)

// Error is a classified request failure.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status when a response was received
	Message string // server supplied message when present
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel errors for use with errors.Is.
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrAPI          = &Error{Kind: KindAPI, Message: "request failed"}
	ErrTimeout      = &Error{Kind: KindTimeout, Message: "request timed out"}
	ErrNetwork      = &Error{Kind: KindNetwork, Message: "network unavailable"}
	ErrInjected     = &Error{Kind: KindInjected, Message: InjectedErrorMarker}
	ErrDecode       = &Error{Kind: KindDecode, Message: "decode response"}
	ErrCanceled     = &Error{Kind: KindCanceled, Message: "request canceled"}
)

// NewError builds an Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Status: e.Status, Message: e.Message, cause: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
