package errors

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes surfaced to callers.
type Kind int

const (
	InternalFailure Kind = iota
	MalformedInput
	Unauthenticated
	NotFound
	Conflict
	WrongCredentials
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed_input"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case WrongCredentials:
		return "wrong_credentials"
	case InternalFailure:
		return "internal_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a classified failure. Err, when set, is the underlying cause and is
// never shown to callers.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrConflict) holds
// for wrapped causes too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrMalformedInput   = &Error{Kind: MalformedInput}
	ErrUnauthenticated  = &Error{Kind: Unauthenticated}
	ErrAccountNotFound  = &Error{Kind: NotFound}
	ErrAccountExists    = &Error{Kind: Conflict}
	ErrWrongCredentials = &Error{Kind: WrongCredentials}
	ErrInternal         = &Error{Kind: InternalFailure}
)

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Internal classifies err as InternalFailure unless it already carries a Kind.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: InternalFailure, Err: err}
}

// KindOf returns the classification carried by err. Unclassified errors are
// InternalFailure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return InternalFailure
}
