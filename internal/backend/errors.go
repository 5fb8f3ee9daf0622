package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call. Handlers use it to decide between a
// blocking page-level error and a transient toast.
type Kind string

const (
	// KindTransport means the request never completed (DNS, refused, timeout).
	KindTransport Kind = "transport"
	// KindStatus means the backend answered with a non-success HTTP status.
	KindStatus Kind = "status"
	// KindEnvelope means HTTP succeeded but the envelope carried success=false.
	KindEnvelope Kind = "envelope"
	// KindParse means the response body was not the JSON shape we expect.
	KindParse Kind = "parse"
)

type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s error: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("backend %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("backend %s error", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

func statusError(code int, message string) *Error {
	return &Error{Kind: KindStatus, StatusCode: code, Message: message}
}

func envelopeError(message string) *Error {
	return &Error{Kind: KindEnvelope, Message: message}
}

func parseError(err error) *Error {
	return &Error{Kind: KindParse, Err: err}
}

// KindOf extracts the failure class, defaulting to transport for unknown errors.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindTransport
}

// IsNotFound reports whether the backend answered 404 for the request.
func IsNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindStatus && be.StatusCode == 404
}

// IsUnauthorized reports whether the backend rejected the bearer token.
func IsUnauthorized(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindStatus && (be.StatusCode == 401 || be.StatusCode == 403)
}
