package diag

import (
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// TypeOf returns the reflect.Type of T. It is the handle used for every
// type-keyed query, e.g. TypeOf[*fs.PathError]().
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// TypeName returns the fully-qualified name used as the key in code, mapping
// and documentation tables. Pointers are dereferenced, so *fs.PathError and
// fs.PathError both map to "io/fs.PathError".
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	t = elem(t)
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Ancestors returns t followed by the chain of error types it embeds.
//
// A struct error type that embeds another error type (or a pointer to one) is
// treated as a subtype of the first such embedded type:
//
//	type TimeoutError struct{ *ConnectorError }
//
// makes ConnectorError the parent of TimeoutError. The chain stops at the
// first type without such a field.
func Ancestors(t reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	out := []reflect.Type{t}
	seen := map[reflect.Type]bool{elem(t): true}
	for {
		parent, ok := embeddedError(t)
		if !ok || seen[elem(parent)] {
			return out
		}
		seen[elem(parent)] = true
		out = append(out, parent)
		t = parent
	}
}

func embeddedError(t reflect.Type) (reflect.Type, bool) {
	s := elem(t)
	if s.Kind() != reflect.Struct {
		return nil, false
	}
	i, ok := embeddedIndex(s)
	if !ok {
		return nil, false
	}
	return s.Field(i).Type, true
}

// embeddedIndex returns the index of the first anonymous field of struct type
// s whose type is an error.
func embeddedIndex(s reflect.Type) (int, bool) {
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Anonymous && implementsError(f.Type) {
			return i, true
		}
	}
	return 0, false
}

// embeddedAs returns the T that err is, or the T reached by following the
// same embedded error fields Ancestors follows. It fails on a nil or
// unexported field along the way.
func embeddedAs[T error](err error) (T, bool) {
	var zero T
	if e, ok := err.(T); ok {
		return e, true
	}
	if err == nil {
		return zero, false
	}
	v := reflect.ValueOf(err)
	for depth := 0; depth < maxChainDepth; depth++ {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return zero, false
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return zero, false
		}
		i, ok := embeddedIndex(v.Type())
		if !ok {
			return zero, false
		}
		v = v.Field(i)
		if !v.CanInterface() {
			return zero, false
		}
		if e, ok := v.Interface().(T); ok {
			return e, true
		}
		if v.Kind() == reflect.Struct && v.CanAddr() {
			if e, ok := v.Addr().Interface().(T); ok {
				return e, true
			}
		}
	}
	return zero, false
}

func implementsError(t reflect.Type) bool {
	if t.Implements(errorType) {
		return true
	}
	return t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
		reflect.PointerTo(t).Implements(errorType)
}

// sameType compares types ignoring one level of pointer indirection.
func sameType(a, b reflect.Type) bool {
	return elem(a) == elem(b)
}

func elem(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
