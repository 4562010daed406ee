package errx

import (
	"errors"
	"sync/atomic"
)

// Error is the base error type raised by framework code.
type Error struct {
	code        string
	description string
	message     string
	context     map[string]any
	cause       error
	base        error
	trace       atomic.Pointer[Stack]
}

// New creates a new Error with the provided code, description, and message.
// The stack of the caller is captured.
func New(code, description, message string) *Error {
	e := &Error{
		code:        code,
		description: description,
		message:     message,
	}
	e.setTrace(Capture(1))
	return e
}

// Wrap creates a new Error and attaches a cause error.
func Wrap(code, description, message string, cause error) *Error {
	e := &Error{
		code:        code,
		description: description,
		message:     message,
		cause:       cause,
	}
	e.setTrace(Capture(1))
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.message != "" {
		return e.message
	}
	if e.description != "" {
		return e.description
	}
	if e.code != "" {
		return e.code
	}
	return "error"
}

// Unwrap returns the immediate wrapped error (cause).
// This follows Go's error wrapping convention where Unwrap() returns
// the direct cause, not the base sentinel.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is implements error matching for sentinel errors.
// This allows errors.Is(err, sentinel) to match the base sentinel
// even though Unwrap() returns the cause.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if e.base != nil && errors.Is(e.base, target) {
		return true
	}
	return errors.Is(e.cause, target)
}

// Framework marks Error as raised by the framework rather than by application code.
func (e *Error) Framework() bool {
	return e != nil
}

// Code returns the stable category code.
func (e *Error) Code() string {
	if e == nil {
		return ""
	}
	return e.code
}

// Description returns the category description.
func (e *Error) Description() string {
	if e == nil {
		return ""
	}
	return e.description
}

// Message returns the user-facing message.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Context returns a copy of the structured context.
func (e *Error) Context() map[string]any {
	if e == nil || len(e.context) == 0 {
		return nil
	}
	return cloneContext(e.context)
}

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Base returns the sentinel base error, if any.
func (e *Error) Base() error {
	if e == nil {
		return nil
	}
	return e.base
}

// StackTrace returns the frames currently attached to the error.
func (e *Error) StackTrace() Stack {
	if e == nil {
		return nil
	}
	if s := e.trace.Load(); s != nil {
		return *s
	}
	return nil
}

// SetStackTrace attaches a copy of frames, replacing the previous trace.
// The previously attached slice is never modified.
func (e *Error) SetStackTrace(frames Stack) {
	if e == nil {
		return
	}
	e.setTrace(frames.Clone())
}

func (e *Error) setTrace(frames Stack) {
	e.trace.Store(&frames)
}

// WithContext adds a context key/value pair.
// Returns a new error with the added context to avoid mutating the original.
func (e *Error) WithContext(key string, value any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if clone.context == nil {
		clone.context = make(map[string]any)
	}
	clone.context[key] = value
	return clone
}

// WithContextMap merges a context map into the error context.
// Always returns a clone, even if ctx is empty.
func (e *Error) WithContextMap(ctx map[string]any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if len(ctx) > 0 {
		if clone.context == nil {
			clone.context = make(map[string]any, len(ctx))
		}
		for key, value := range ctx {
			clone.context[key] = value
		}
	}
	return clone
}

// WithBase sets the sentinel base error used for errors.Is matching.
func (e *Error) WithBase(base error) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.base = base
	return clone
}

// WithCause replaces the wrapped error.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.cause = cause
	return clone
}

// clone copies every field; the trace slice is shared because it is never mutated.
func (e *Error) clone() *Error {
	c := &Error{
		code:        e.code,
		description: e.description,
		message:     e.message,
		cause:       e.cause,
		base:        e.base,
		context:     cloneContext(e.context),
	}
	if s := e.trace.Load(); s != nil {
		c.trace.Store(s)
	}
	return c
}

func cloneContext(ctx map[string]any) map[string]any {
	if ctx == nil {
		return nil
	}
	clone := make(map[string]any, len(ctx))
	for key, value := range ctx {
		clone[key] = value
	}
	return clone
}

// IsFramework reports whether err itself (not its causes) was raised by the framework.
func IsFramework(err error) bool {
	f, ok := err.(interface{ Framework() bool })
	return ok && f.Framework()
}
