package errx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Accessors(t *testing.T) {
	err := New(CodeRouting, DescRouting, "no route")

	assert.Equal(t, CodeRouting, err.Code())
	assert.Equal(t, DescRouting, err.Description())
	assert.Equal(t, "no route", err.Message())
	assert.Equal(t, "no route", err.Error())
	assert.Nil(t, err.Cause())
	assert.Nil(t, err.Unwrap())
	assert.True(t, err.Framework())
}

func TestError_ErrorFallbacks(t *testing.T) {
	assert.Equal(t, DescRouting, New(CodeRouting, DescRouting, "").Error())
	assert.Equal(t, CodeRouting, New(CodeRouting, "", "").Error())
	assert.Equal(t, "error", New("", "", "").Error())
}

func TestError_WrapAndIs(t *testing.T) {
	base := errors.New("base")
	cause := errors.New("cause")
	err := Wrap(CodeRouting, DescRouting, "test", cause).WithBase(base)

	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, cause)
	assert.Same(t, base, err.Base())
	// Unwrap returns the cause, never the base.
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_WithHelpersDoNotMutate(t *testing.T) {
	orig := New(CodeRouting, DescRouting, "test")

	withCtx := orig.WithContext("endpoint", "in")
	assert.Nil(t, orig.Context())
	assert.Equal(t, map[string]any{"endpoint": "in"}, withCtx.Context())

	merged := withCtx.WithContextMap(map[string]any{"flow": "orders"})
	assert.Len(t, withCtx.Context(), 1)
	assert.Equal(t, map[string]any{"endpoint": "in", "flow": "orders"}, merged.Context())

	cause := errors.New("cause")
	withCause := orig.WithCause(cause)
	assert.Nil(t, orig.Cause())
	assert.Same(t, cause, withCause.Cause())

	// The clone starts with the same trace as the original.
	assert.Equal(t, orig.StackTrace(), withCause.StackTrace())
}

func TestError_ContextIsCopied(t *testing.T) {
	err := New(CodeRouting, DescRouting, "test").WithContext("k", "v")
	ctx := err.Context()
	ctx["k"] = "changed"
	assert.Equal(t, "v", err.Context()["k"])
}

func TestError_NilReceiver(t *testing.T) {
	var err *Error
	assert.Empty(t, err.Error())
	assert.Empty(t, err.Code())
	assert.Nil(t, err.Unwrap())
	assert.Nil(t, err.StackTrace())
	assert.False(t, err.Framework())
	assert.Nil(t, err.WithContext("k", "v"))
}

func TestError_CapturesCallerStack(t *testing.T) {
	err := New(CodeRouting, DescRouting, "test")
	trace := err.StackTrace()
	require.NotEmpty(t, trace)
	assert.True(t, strings.HasSuffix(trace[0].Function, "TestError_CapturesCallerStack"), trace[0].Function)
}

func TestError_SetStackTraceReplacesWithCopy(t *testing.T) {
	err := New(CodeRouting, DescRouting, "test")
	frames := Stack{{Function: "a.f", Line: 1}, {Function: "b.g", Line: 2}}
	err.SetStackTrace(frames)
	frames[0].Function = "mutated"

	assert.Equal(t, "a.f", err.StackTrace()[0].Function)
}

func TestIsFramework(t *testing.T) {
	assert.True(t, IsFramework(Routing("x")))
	assert.False(t, IsFramework(errors.New("x")))
	assert.False(t, IsFramework(nil))
	// Only the node itself is inspected.
	assert.False(t, IsFramework(&InvocationError{Op: "call", Target: Routing("x")}))
}
