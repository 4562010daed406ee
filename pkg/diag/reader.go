package diag

import (
	"io/fs"
	"net"
	"net/url"
	"os"
	"reflect"
	"sync"

	"errdiag/pkg/errx"
)

// Reader extracts the cause, message and auxiliary info from errors of the
// type it claims. Readers let the chain engine see through errors that keep
// their real cause or details in non-standard places.
type Reader interface {
	// Type is the claimed type. An interface type claims every implementer;
	// a concrete type claims itself and every type that embeds it.
	Type() reflect.Type
	Cause(err error) error
	Message(err error) string
	Info(err error) map[string]any
}

// DefaultReader answers for any error using the standard unwrap conventions.
type DefaultReader struct{}

func (DefaultReader) Type() reflect.Type { return errorType }

// Cause follows Unwrap() error, then Cause() error, then the first non-nil
// entry of Unwrap() []error.
func (DefaultReader) Cause(err error) error {
	return plainCause(err)
}

func (DefaultReader) Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (DefaultReader) Info(error) map[string]any {
	return map[string]any{}
}

func plainCause(err error) error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		return e.Unwrap()
	case interface{ Cause() error }:
		return e.Cause()
	case interface{ Unwrap() []error }:
		for _, c := range e.Unwrap() {
			if c != nil {
				return c
			}
		}
	}
	return nil
}

type typedReader[T error] struct {
	cause   func(T) error
	message func(T) string
	info    func(T) map[string]any
}

// NewReader builds a Reader claiming T from plain functions. An error whose
// type embeds T is read through its embedded T. A nil function, or an
// embedded T that cannot be reached, falls back to DefaultReader behavior.
func NewReader[T error](cause func(T) error, message func(T) string, info func(T) map[string]any) Reader {
	return typedReader[T]{cause: cause, message: message, info: info}
}

func (r typedReader[T]) Type() reflect.Type { return TypeOf[T]() }

func (r typedReader[T]) Cause(err error) error {
	if e, ok := embeddedAs[T](err); ok && r.cause != nil {
		return r.cause(e)
	}
	return DefaultReader{}.Cause(err)
}

func (r typedReader[T]) Message(err error) string {
	if e, ok := embeddedAs[T](err); ok && r.message != nil {
		return r.message(e)
	}
	return DefaultReader{}.Message(err)
}

func (r typedReader[T]) Info(err error) map[string]any {
	if e, ok := embeddedAs[T](err); ok && r.info != nil {
		if info := r.info(e); info != nil {
			return info
		}
	}
	return DefaultReader{}.Info(err)
}

// Readers is the ordered reader registry. Resolution is first match in
// registration order, falling back to DefaultReader.
type Readers struct {
	mu       sync.RWMutex
	readers  []Reader
	fallback Reader
}

// NewReaders returns a registry holding readers in the given order.
func NewReaders(readers ...Reader) *Readers {
	r := &Readers{fallback: DefaultReader{}}
	for _, reader := range readers {
		r.Register(reader)
	}
	return r
}

// Register appends reader. Registration is meant for startup; readers added
// later are only seen by subsequent lookups.
func (r *Readers) Register(reader Reader) {
	if reader == nil || reader.Type() == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers = append(r.readers, reader)
}

// Resolve returns the first reader claiming err's type. It never returns nil.
func (r *Readers) Resolve(err error) Reader {
	if err == nil {
		return r.fallback
	}
	actual := reflect.TypeOf(err)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reader := range r.readers {
		if claims(reader.Type(), actual) {
			return reader
		}
	}
	return r.fallback
}

// Len returns the number of registered readers, excluding the default.
func (r *Readers) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readers)
}

func claims(claimed, actual reflect.Type) bool {
	if claimed.Kind() == reflect.Interface {
		return actual.Implements(claimed)
	}
	for _, a := range Ancestors(actual) {
		if sameType(a, claimed) {
			return true
		}
	}
	return false
}

// builtinReaders are registered ahead of any collaborator reader.
func builtinReaders() []Reader {
	return []Reader{
		NewReader(
			func(e *errx.Error) error { return e.Cause() },
			func(e *errx.Error) string { return errx.UserString(e) },
			func(e *errx.Error) map[string]any {
				info := e.Context()
				if info == nil {
					info = make(map[string]any, 2)
				}
				if e.Code() != "" {
					info["code"] = e.Code()
				}
				if e.Description() != "" {
					info["description"] = e.Description()
				}
				return info
			},
		),
		NewReader(
			func(e *url.Error) error { return e.Err },
			nil,
			func(e *url.Error) map[string]any {
				return map[string]any{"url.op": e.Op, "url": e.URL}
			},
		),
		NewReader(
			func(e *net.OpError) error { return e.Err },
			nil,
			func(e *net.OpError) map[string]any {
				info := map[string]any{"net.op": e.Op, "net": e.Net}
				if e.Addr != nil {
					info["net.addr"] = e.Addr.String()
				}
				return info
			},
		),
		NewReader(
			func(e *fs.PathError) error { return e.Err },
			nil,
			func(e *fs.PathError) map[string]any {
				return map[string]any{"path.op": e.Op, "path": e.Path}
			},
		),
		NewReader(
			func(e *os.SyscallError) error { return e.Err },
			nil,
			func(e *os.SyscallError) map[string]any {
				return map[string]any{"syscall": e.Syscall}
			},
		),
	}
}
