package errx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UserString returns the message meant for users: the message, description
// or code of the first *Error in err's chain, or err.Error() when the chain
// holds none.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// DebugString renders err and every error it wraps, one numbered line each.
// Lines for an *Error carry its code, description and sorted context, and are
// followed by the frame that raised it:
//
//	1. *errx.Error [69000 Configuration error] failed to read config {path=/x}
//	   at errdiag/internal/cli.loadConfig (config.go:42)
//	2. *fs.PathError open /x: permission denied
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	for i, item := range causes(err) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %T", i+1, item)
		e, ok := item.(*Error)
		if !ok {
			fmt.Fprintf(&b, " %s", item.Error())
			continue
		}
		if e.code != "" || e.description != "" {
			b.WriteString(" [" + strings.TrimSpace(e.code+" "+e.description) + "]")
		}
		if e.message != "" {
			b.WriteString(" " + e.message)
		}
		if len(e.context) > 0 {
			b.WriteString(" {" + formatContext(e.context) + "}")
		}
		if trace := e.StackTrace(); len(trace) > 0 {
			b.WriteString("\n   at " + trace[0].String())
		}
	}
	return b.String()
}

// maxChainEntries bounds causes so that self-referencing errors terminate.
const maxChainEntries = 64

// causes lists err and everything it wraps, depth first. Joined errors
// contribute each of their members in order.
func causes(err error) []error {
	var out []error
	stack := []error{err}
	for len(stack) > 0 && len(out) < maxChainEntries {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == nil {
			continue
		}
		out = append(out, current)
		switch u := current.(type) {
		case interface{ Unwrap() []error }:
			inner := u.Unwrap()
			for i := len(inner) - 1; i >= 0; i-- {
				stack = append(stack, inner[i])
			}
		case interface{ Unwrap() error }:
			stack = append(stack, u.Unwrap())
		}
	}
	return out
}

func formatContext(ctx map[string]any) string {
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, ctx[key]))
	}
	return strings.Join(parts, ", ")
}
