package diag

import (
	"reflect"
)

// maxChainDepth bounds traversal for errors whose identity cannot be tracked.
const maxChainDepth = 1 << 10

// Evaluator inspects one node of a cause chain. Returning ok stops the
// traversal with value.
type Evaluator[T any] func(err error, r Reader) (value T, ok bool)

// visited tracks the nodes of one traversal. Comparable errors are tracked by
// value (pointer errors by address); other errors are treated as unseen and
// the walk is bounded by maxChainDepth instead.
type visited struct {
	seen  map[error]struct{}
	steps int
}

func newVisited() *visited {
	return &visited{seen: make(map[error]struct{}, 8)}
}

// mark reports whether err is new to this traversal and records it.
func (v *visited) mark(err error) (fresh bool) {
	v.steps++
	if v.steps > maxChainDepth {
		return false
	}
	if !reflect.TypeOf(err).Comparable() {
		return true
	}
	// A comparable struct may still hold a non-comparable value in an
	// interface field, which panics as a map key.
	defer func() {
		if recover() != nil {
			fresh = true
		}
	}()
	if _, ok := v.seen[err]; ok {
		return false
	}
	v.seen[err] = struct{}{}
	return true
}

// Traverse walks err's cause chain outward, resolving a reader for every node
// and following that reader's Cause. It returns the first value eval accepts.
// The walk ends at a nil cause or at any node already visited, so chains that
// loop back on themselves terminate.
func Traverse[T any](s *Service, err error, eval Evaluator[T]) (T, bool) {
	var zero T
	seen := newVisited()
	for cur := err; cur != nil; {
		if !seen.mark(cur) {
			break
		}
		r := s.readers.Resolve(cur)
		if v, ok := eval(cur, r); ok {
			return v, true
		}
		cur = r.Cause(cur)
	}
	return zero, false
}

// TraverseInnermost collects the chain by plain unwrapping and evaluates it
// from the innermost cause outward.
func TraverseInnermost[T any](s *Service, err error, eval Evaluator[T]) (T, bool) {
	var zero T
	var chain []error
	seen := newVisited()
	for cur := err; cur != nil && seen.mark(cur); cur = plainCause(cur) {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if v, ok := eval(chain[i], s.readers.Resolve(chain[i])); ok {
			return v, true
		}
	}
	return zero, false
}

func (s *Service) walk(err error, visit func(err error, r Reader)) {
	Traverse(s, err, func(node error, r Reader) (struct{}, bool) {
		visit(node, r)
		return struct{}{}, false
	})
}

// Root returns the innermost cause of err, sanitized unless full stack traces
// are enabled. An error that is its own cause is its own root.
func (s *Service) Root(err error) error {
	var root error
	s.walk(err, func(node error, _ Reader) {
		root = node
	})
	return s.SanitizeIfNeeded(root)
}

// RootParent returns the error whose cause is the root of err's chain, or err
// itself when it has no cause. A looping chain yields err.
func (s *Service) RootParent(err error) error {
	parent := err
	found, ok := Traverse(s, err, func(node error, r Reader) (error, bool) {
		if r.Cause(node) == nil {
			return parent, true
		}
		parent = node
		return nil, false
	})
	if ok {
		return found
	}
	return err
}

// FirstNonFramework returns the first error in err's chain that was not raised
// by the framework. err itself is returned when it is not a framework error;
// nil is returned when every error in the chain is.
func (s *Service) FirstNonFramework(err error) error {
	if err == nil || !s.framework(err) {
		return err
	}
	found, _ := Traverse(s, err, func(node error, _ Reader) (error, bool) {
		if !s.framework(node) {
			return node, true
		}
		return nil, false
	})
	return found
}

// DeepestFramework returns the innermost framework error in err's chain, or
// nil if there is none. Causes visited on the way are sanitized unless full
// stack traces are enabled.
func (s *Service) DeepestFramework(err error) error {
	var deepest error
	first := true
	s.walk(err, func(node error, _ Reader) {
		if !first {
			s.filterFrames(node)
		}
		first = false
		if s.framework(node) {
			deepest = node
		}
	})
	return deepest
}

// Chain returns every error in err's chain, innermost cause first and err last.
func (s *Service) Chain(err error) []error {
	var chain []error
	s.walk(err, func(node error, _ Reader) {
		chain = append([]error{node}, chain...)
	})
	return chain
}

// Info merges the reader info of every error in err's chain. Keys from
// deeper causes overwrite keys from the errors wrapping them.
func (s *Service) Info(err error) map[string]any {
	info := make(map[string]any)
	s.walk(err, func(node error, r Reader) {
		for k, v := range r.Info(node) {
			info[k] = v
		}
	})
	return info
}
