package diag

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"errdiag/pkg/errx"
)

type causer struct {
	cause error
}

func (c causer) Error() string { return "causer" }
func (c causer) Cause() error  { return c.cause }

func TestDefaultReader(t *testing.T) {
	inner := errors.New("inner")
	r := DefaultReader{}

	assert.Equal(t, errorType, r.Type())
	assert.Same(t, inner, r.Cause(fmt.Errorf("outer: %w", inner)))
	assert.Nil(t, r.Cause(inner))
	assert.Equal(t, "inner", r.Message(inner))
	assert.Empty(t, r.Info(inner))
}

func TestPlainCause(t *testing.T) {
	first := errors.New("first")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unwrap", errx.WrapRouting("no route", first), first},
		{"cause method", causer{cause: first}, first},
		{"joined skips nil", errors.Join(nil, first, errors.New("second")), first},
		{"leaf", first, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainCause(tt.err))
		})
	}
}

func TestReaders_Resolve(t *testing.T) {
	hidden := NewReader(
		func(e *hiddenError) error { return e.reason },
		func(e *hiddenError) string { return "hidden: " + e.msg },
		func(e *hiddenError) map[string]any { return map[string]any{"hidden": true} },
	)
	specific := NewReader[*SpecificError](nil, func(e *SpecificError) string { return "specific" }, nil)
	r := NewReaders(hidden, specific)

	t.Run("claimed type", func(t *testing.T) {
		reason := errors.New("disk full")
		err := &hiddenError{msg: "write failed", reason: reason}

		got := r.Resolve(err)
		assert.Same(t, reason, got.Cause(err))
		assert.Equal(t, "hidden: write failed", got.Message(err))
		assert.Equal(t, map[string]any{"hidden": true}, got.Info(err))
	})

	t.Run("embedding type inherits reader", func(t *testing.T) {
		child := &SpecificErrorChild{SpecificError: &SpecificError{msg: "child"}}
		got := r.Resolve(child)
		assert.Equal(t, TypeOf[*SpecificError](), got.Type())
		assert.Equal(t, "specific", got.Message(child))
	})

	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, DefaultReader{}, r.Resolve(errors.New("plain")))
		assert.Equal(t, DefaultReader{}, r.Resolve(nil))
	})

	t.Run("first match wins", func(t *testing.T) {
		override := NewReader[*hiddenError](nil, func(*hiddenError) string { return "second" }, nil)
		r.Register(override)
		assert.Equal(t, "hidden: x", r.Resolve(&hiddenError{msg: "x"}).Message(&hiddenError{msg: "x"}))
	})

	t.Run("nil reader ignored", func(t *testing.T) {
		before := r.Len()
		r.Register(nil)
		assert.Equal(t, before, r.Len())
	})
}

func specificReader() Reader {
	return NewReader(
		func(e *SpecificError) error { return e.reason },
		func(e *SpecificError) string { return "custom:" + e.msg },
		func(e *SpecificError) map[string]any { return map[string]any{"specific": e.msg} },
	)
}

func TestTypedReader_EmbeddedValue(t *testing.T) {
	r := NewReaders(specificReader())
	reason := errors.New("disk full")

	tests := []struct {
		name string
		err  error
	}{
		{"claimed type", &SpecificError{msg: "x", reason: reason}},
		{"embedded pointer", &SpecificErrorChild{SpecificError: &SpecificError{msg: "x", reason: reason}}},
		{"embedded value", &specificValueChild{SpecificError: SpecificError{msg: "x", reason: reason}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.err)
			assert.Equal(t, TypeOf[*SpecificError](), got.Type())
			assert.Same(t, reason, got.Cause(tt.err))
			assert.Equal(t, "custom:x", got.Message(tt.err))
			assert.Equal(t, map[string]any{"specific": "x"}, got.Info(tt.err))
		})
	}

	t.Run("nil embedded pointer falls back", func(t *testing.T) {
		child := &SpecificErrorChild{}
		got := r.Resolve(child)
		assert.Nil(t, got.Cause(child))
		assert.Empty(t, got.Info(child))
	})
}

func TestReaders_InterfaceClaim(t *testing.T) {
	type timeout interface {
		error
		Timeout() bool
	}
	r := NewReaders(NewReader[timeout](nil, func(timeout) string { return "timed out" }, nil))

	err := &url.Error{Op: "Get", URL: "http://x", Err: errors.New("boom")}
	assert.Equal(t, "timed out", r.Resolve(err).Message(err))
	assert.Equal(t, DefaultReader{}, r.Resolve(errors.New("plain")))
}

func TestBuiltinReaders(t *testing.T) {
	r := NewReaders(builtinReaders()...)

	pathErr := &fs.PathError{Op: "open", Path: "/etc/app.yaml", Err: fs.ErrNotExist}
	assert.Equal(t, map[string]any{"path.op": "open", "path": "/etc/app.yaml"}, r.Resolve(pathErr).Info(pathErr))
	assert.Equal(t, fs.ErrNotExist, r.Resolve(pathErr).Cause(pathErr))

	xe := errx.Routing("no route").WithContext("endpoint", "orders")
	assert.Equal(t, map[string]any{
		"endpoint":    "orders",
		"code":        errx.CodeRouting,
		"description": errx.DescRouting,
	}, r.Resolve(xe).Info(xe))
	assert.Equal(t, "no route", r.Resolve(xe).Message(xe))

	urlErr := &url.Error{Op: "Get", URL: "http://x", Err: pathErr}
	assert.Same(t, pathErr, r.Resolve(urlErr).Cause(urlErr))
}
