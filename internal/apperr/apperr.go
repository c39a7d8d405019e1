// Package apperr defines the error taxonomy shared by every layer of the
// service. Each failure carries a Kind that the HTTP layer maps onto a
// status code, together with the message shown to the caller. Anything that
// does not carry a Kind is treated as an internal fault and must never leak
// its detail to the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names a class of failure. The string value doubles as the "type"
// field of the JSON error envelope.
type Kind string

const (
	KindInvalidInput         Kind = "InvalidInput"
	KindAuthenticationFailed Kind = "AuthenticationFailed"
	KindMissingToken         Kind = "MissingToken"
	KindInvalidToken         Kind = "InvalidToken"
	KindCorruptedToken       Kind = "CorruptedToken"
	KindUnauthorized         Kind = "Unauthorized"
	KindNotFound             Kind = "NotFound"
	KindConflict             Kind = "PersistenceConflict"
	KindInternal             Kind = "Internal"
)

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err. Errors outside the taxonomy report
// KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// Status maps err onto an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindAuthenticationFailed, KindMissingToken, KindInvalidToken, KindCorruptedToken:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Payload is the wire form of a classified error.
type Payload struct {
	Success bool   `json:"success"`
	Error   Detail `json:"error"`
}

// Detail carries the error type and caller-facing message.
type Detail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// BodyOf builds the response envelope for err. Internal faults get a
// generic message; the real error stays server-side.
func BodyOf(err error) Payload {
	kind := KindOf(err)
	msg := err.Error()
	if kind == KindInternal {
		msg = "Internal server error"
	}
	return Payload{Error: Detail{Type: string(kind), Message: msg}}
}
