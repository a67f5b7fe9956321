package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP boundary can map it to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindUpstream
	KindParse
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	case KindParse:
		return "parse"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Error carries a kind, the operation that failed and a message that is safe
// to show to the caller. Err keeps the underlying cause for server-side logs.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op, msg string) error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op, msg string, err error) error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

func Validation(op, msg string) error   { return New(KindValidation, op, msg) }
func NotFound(op, msg string) error     { return New(KindNotFound, op, msg) }
func Unauthorized(op, msg string) error { return New(KindUnauthorized, op, msg) }
func Conflict(op, msg string) error     { return New(KindConflict, op, msg) }

// Validationf formats the message like fmt.Sprintf.
func Validationf(op, format string, args ...any) error {
	return New(KindValidation, op, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first *Error in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message for err. Internal errors never leak
// their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func Is(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }
