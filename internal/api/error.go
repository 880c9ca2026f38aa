package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies how a request failed. Exactly one kind applies to any error
// the client returns.
type Kind int

const (
	// KindNetworkFailure means no usable response was obtained: offline, DNS,
	// timeout, cancelled context.
	KindNetworkFailure Kind = iota + 1
	// KindInvalidResponseBody means a response arrived but its body was not
	// parseable JSON.
	KindInvalidResponseBody
	// KindServerRejected means the server answered with a non-2xx status.
	KindServerRejected
)

func (k Kind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network failure"
	case KindInvalidResponseBody:
		return "invalid response body"
	case KindServerRejected:
		return "server rejected"
	}
	return "unknown"
}

// Error is the single failure type produced by every client call.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, set only for KindServerRejected
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Kind == KindServerRejected {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsUnauthorized reports whether err is a server rejection with status 401.
// Callers holding a session should treat this as an expired token and log out.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) &&
		apiErr.Kind == KindServerRejected &&
		apiErr.Status == http.StatusUnauthorized
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetworkFailure, Message: err.Error(), Err: err}
}
