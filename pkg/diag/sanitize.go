package diag

import (
	"strings"

	"errdiag/pkg/errx"
)

// Sanitize removes internal frames from the stack traces carried by err and
// every error it wraps. A frame is internal when its function name starts
// with one of Config.StackTraceFilter. Traces are replaced, never edited in
// place. Sanitize does nothing when Config.FullStackTraces is set and returns
// err for chaining.
func (s *Service) Sanitize(err error) error {
	if err == nil || s.cfg.FullStackTraces {
		return err
	}
	seen := newVisited()
	for cur := err; cur != nil && seen.mark(cur); cur = plainCause(cur) {
		s.filterFrames(cur)
	}
	return err
}

// SanitizeIfNeeded is the entry point used by chain traversal.
func (s *Service) SanitizeIfNeeded(err error) error {
	return s.Sanitize(err)
}

// Summarize sanitizes err and truncates its own stack trace to the first
// depth frames. A negative depth drops every frame.
func (s *Service) Summarize(err error, depth int) error {
	s.Sanitize(err)
	st, ok := err.(errx.StackTracer)
	if !ok {
		return err
	}
	depth = max(depth, 0)
	trace := st.StackTrace()
	if len(trace) > depth {
		st.SetStackTrace(trace[:depth])
	}
	return err
}

// filterFrames sanitizes the single node err.
func (s *Service) filterFrames(err error) {
	if s.cfg.FullStackTraces || len(s.cfg.StackTraceFilter) == 0 {
		return
	}
	st, ok := err.(errx.StackTracer)
	if !ok {
		return
	}
	trace := st.StackTrace()
	kept := make(errx.Stack, 0, len(trace))
	for _, f := range trace {
		if !s.internalFrame(f) {
			kept = append(kept, f)
		}
	}
	if len(kept) != len(trace) {
		st.SetStackTrace(kept)
	}
}

func (s *Service) internalFrame(f errx.Frame) bool {
	for _, prefix := range s.cfg.StackTraceFilter {
		if strings.HasPrefix(f.Function, prefix) {
			return true
		}
	}
	return false
}
