// internals/helpers/errs/errs.go
package errs

import (
	"errors"
	"fmt"
)

// Kind membedakan kelas outcome yang dikembalikan ke caller.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindInconsistency
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInconsistency:
		return "inconsistency"
	case KindUnavailable:
		return "store_unavailable"
	}
	return "unknown"
}

// Error is the typed outcome every service returns instead of raw faults.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying cause (store/driver error), may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

/* ======================= CONSTRUCTORS ======================= */

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Inconsistency(format string, args ...any) *Error {
	return &Error{Kind: KindInconsistency, Msg: fmt.Sprintf(format, args...)}
}

// Unavailable wraps a store/driver failure so callers can decide to retry.
func Unavailable(op string, err error) *Error {
	return &Error{Kind: KindUnavailable, Msg: op, Err: err}
}

/* ======================= PREDICATES ======================= */

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool    { return kindOf(err) == KindValidation }
func IsNotFound(err error) bool      { return kindOf(err) == KindNotFound }
func IsConflict(err error) bool      { return kindOf(err) == KindConflict }
func IsInconsistency(err error) bool { return kindOf(err) == KindInconsistency }
func IsUnavailable(err error) bool   { return kindOf(err) == KindUnavailable }
