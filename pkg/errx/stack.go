package errx

import (
	"fmt"
	"runtime"
	"strings"
)

// MaxStackDepth bounds the number of frames recorded by Capture.
const MaxStackDepth = 64

// Frame is a single call site in a stack trace.
type Frame struct {
	Function string // package-qualified function name, e.g. "errdiag/pkg/errx.New"
	File     string
	Line     int
}

// String renders the frame as "function (file:line)".
func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// Stack is a sequence of frames, most recent call first.
type Stack []Frame

// Clone returns a copy of s that does not share its backing array.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// String renders one frame per line.
func (s Stack) String() string {
	var b strings.Builder
	for i, f := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("\tat ")
		b.WriteString(f.String())
	}
	return b.String()
}

// StackTracer is implemented by errors that carry a replaceable stack trace.
type StackTracer interface {
	StackTrace() Stack
	SetStackTrace(Stack)
}

// Capture records the stack of its caller, skipping skip additional frames.
func Capture(skip int) Stack {
	// +2 skips runtime.Callers and Capture itself.
	pc := make([]uintptr, MaxStackDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			Function: fr.Function,
			File:     fr.File,
			Line:     fr.Line,
		})
		if !more {
			break
		}
	}
	return out
}
