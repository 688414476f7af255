// Package apperr classifies failures so the HTTP layer can pick a status
// without inspecting store internals.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind is the failure class of an Error.
type Kind int

const (
	// Validation means required input was missing or malformed.
	Validation Kind = iota + 1
	// NotFound means an id did not resolve to an existing row.
	NotFound
	// Conflict means a uniqueness or foreign-key constraint rejected a write.
	Conflict
	// Unavailable means the store itself failed; the request cannot proceed.
	Unavailable
)

// Error is a classified failure. Msg is safe to surface to clients.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a Validation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: Conflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 if err carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Translate classifies a store error. Requires the gorm dialector to be
// opened with TranslateError so duplicate-key and FK failures arrive as
// gorm sentinel errors rather than driver-specific ones.
func Translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: NotFound, Msg: msg, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: Conflict, Msg: msg, Err: err}
	default:
		return &Error{Kind: Unavailable, Msg: msg, Err: err}
	}
}
