package diag

import (
	"fmt"
	"reflect"
	"strings"

	"errdiag/pkg/errx"
)

// FormatChainSummary renders err's chain, innermost cause first, one numbered
// line per error:
//
//	1. connection refused (os.SyscallError)
//
// In verbose mode an error carrying a stack trace gets a second line with its
// innermost frame and API documentation link. When threshold is positive only
// the first threshold entries are written, followed by "(K more...)" where K
// is the number of entries left out.
func (s *Service) FormatChainSummary(err error, threshold int) string {
	chain := s.Chain(err)
	var b strings.Builder
	for i, node := range chain {
		n := i + 1
		if threshold > 0 && n > threshold {
			fmt.Fprintf(&b, "(%d more...)", len(chain)-i)
			break
		}
		t := reflect.TypeOf(node)
		fmt.Fprintf(&b, "%d. %s (%s)\n", n, s.readers.Resolve(node).Message(node), TypeName(t))
		if !s.cfg.Verbose {
			continue
		}
		st, ok := node.(errx.StackTracer)
		if !ok {
			continue
		}
		trace := st.StackTrace()
		if len(trace) == 0 {
			continue
		}
		if url, ok := s.GoDocURL(t); ok {
			fmt.Fprintf(&b, "  %s:%d (%s)\n", trace[0].Function, trace[0].Line, url)
		} else {
			fmt.Fprintf(&b, "  %s:%d\n", trace[0].Function, trace[0].Line)
		}
	}
	return b.String()
}

// ChainSummary is FormatChainSummary with the configured exception threshold.
func (s *Service) ChainSummary(err error) string {
	return s.FormatChainSummary(err, s.cfg.ExceptionThreshold)
}

// WriteError renders err as "<message>. Type: <type name>".
func (s *Service) WriteError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s. Type: %s", s.readers.Resolve(err).Message(err), TypeName(reflect.TypeOf(err)))
}
