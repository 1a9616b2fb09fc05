// Package errors defines the categorized error type shared by the
// rendering and progress packages.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies an error by how the library treats it.
type Category string

const (
	// Configuration errors - malformed construction input, rejected before
	// any rendering begins
	CategoryConfig Category = "config"
	// State errors - an operation invoked in a lifecycle state that does
	// not permit it (caller bug, always surfaced)
	CategoryState Category = "state"
	// Render errors - the backend could not write to its target; the
	// session degrades and keeps going
	CategoryRender Category = "render"
	// Environment errors - probing the execution context failed; treated
	// as "capability absent", never surfaced
	CategoryEnvironment Category = "environment"
)

// Error is a categorized error with the package that raised it.
type Error struct {
	Category Category
	Module   string
	Op       string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Module != "" {
		return fmt.Sprintf("purrgress/%s: %s", e.Module, msg)
	}
	return fmt.Sprintf("purrgress: %s", msg)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by category (and module, when the target
// names one).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		if t.Module != "" && t.Module != e.Module {
			return false
		}
		return e.Category == t.Category
	}
	return errors.Is(e.Cause, target)
}

// New creates an error with the given category.
func New(module, message string, category Category) *Error {
	return &Error{
		Module:   module,
		Message:  message,
		Category: category,
	}
}

// Newf creates an error with a formatted message.
func Newf(module string, category Category, format string, args ...interface{}) *Error {
	return &Error{
		Module:   module,
		Message:  fmt.Sprintf(format, args...),
		Category: category,
	}
}

// Configf creates a configuration error with a formatted message.
func Configf(module, format string, args ...interface{}) *Error {
	return Newf(module, CategoryConfig, format, args...)
}

// Statef creates a lifecycle-state error with a formatted message.
func Statef(module, format string, args ...interface{}) *Error {
	return Newf(module, CategoryState, format, args...)
}

// Renderf creates a render-write error with a formatted message.
func Renderf(module, format string, args ...interface{}) *Error {
	return Newf(module, CategoryRender, format, args...)
}

// Environmentf creates an environment-probe error with a formatted message.
func Environmentf(module, format string, args ...interface{}) *Error {
	return Newf(module, CategoryEnvironment, format, args...)
}

// WithCause attaches an underlying error without changing the receiver's
// category.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// Wrap wraps an existing error, preserving its category when it already
// carries one.
func Wrap(err error, module, message string) *Error {
	if err == nil {
		return nil
	}
	wrapped := &Error{
		Module:  module,
		Message: message,
		Cause:   err,
	}
	var inner *Error
	if errors.As(err, &inner) {
		wrapped.Category = inner.Category
		wrapped.Op = inner.Op
		return wrapped
	}
	wrapped.Category = CategoryRender
	return wrapped
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, module, format string, args ...interface{}) *Error {
	return Wrap(err, module, fmt.Sprintf(format, args...))
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, category Category) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return IsCategory(err, CategoryConfig)
}

// IsState reports whether err is a lifecycle-state error.
func IsState(err error) bool {
	return IsCategory(err, CategoryState)
}

// IsRender reports whether err is a render-write error.
func IsRender(err error) bool {
	return IsCategory(err, CategoryRender)
}

// IsEnvironment reports whether err is an environment-probe error.
func IsEnvironment(err error) bool {
	return IsCategory(err, CategoryEnvironment)
}

// GetModule returns the module name carried by err, if any.
func GetModule(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Module
	}
	return ""
}
