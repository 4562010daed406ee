package diag

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"errdiag/pkg/errx"
)

// SpecificError keeps its reason in a field no unwrap method exposes.
type SpecificError struct {
	msg    string
	reason error
}

func (e *SpecificError) Error() string { return e.msg }

type SpecificErrorChild struct {
	*SpecificError
}

type specificValueChild struct {
	SpecificError
}

type appError struct {
	msg   string
	cause error
}

func (e *appError) Error() string { return e.msg }
func (e *appError) Unwrap() error { return e.cause }

// hiddenError keeps its cause in a field no unwrap convention exposes.
type hiddenError struct {
	msg    string
	reason error
}

func (e *hiddenError) Error() string { return e.msg }

type selfError struct{}

func (e *selfError) Error() string { return "self" }
func (e *selfError) Unwrap() error { return e }

type loopError struct {
	name string
	next *loopError
}

func (e *loopError) Error() string { return e.name }
func (e *loopError) Unwrap() error { return e.next }

type tracedError struct {
	msg   string
	cause error
	trace errx.Stack
}

func (e *tracedError) Error() string              { return e.msg }
func (e *tracedError) Unwrap() error              { return e.cause }
func (e *tracedError) StackTrace() errx.Stack     { return e.trace }
func (e *tracedError) SetStackTrace(s errx.Stack) { e.trace = s.Clone() }

func frames(functions ...string) errx.Stack {
	out := make(errx.Stack, len(functions))
	for i, fn := range functions {
		out[i] = errx.Frame{Function: fn, File: "file.go", Line: i + 1}
	}
	return out
}

const (
	testCodes = `errdiag/pkg/diag.SpecificError = 42001
errdiag/pkg/diag.appError = 42002
errdiag/pkg/diag.tracedError = 42003
errdiag/pkg/errx.Error = 10001
io/fs.PathError = 20001
`
	testDocs = `doc.errdiag = https://errdiag.example/docs
godoc.errdiag = https://docs.example
godoc.io = https://pkg.go.dev
godoc.go1.24.net = https://go124.example
godoc.net = https://pkg.go.dev
`
	testMappings = `errdiag/pkg/diag.SpecificError = 42
42002 = APP
`
)

func testResources() fstest.MapFS {
	return fstest.MapFS{
		"services/exception/errdiag-exception-codes.properties": {Data: []byte(testCodes)},
		"services/exception/errdiag-exception-config.properties": {Data: []byte(testDocs)},
		"services/exception/test-exception-mappings.properties":  {Data: []byte(testMappings)},
	}
}

func testConfig() Config {
	return Config{
		StackTraceFilter: []string{"internal."},
		GoVersion:        "go1.24",
	}
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithOnlyResources(testResources())}, opts...)
	s, err := New(testConfig(), opts...)
	require.NoError(t, err)
	return s
}

func newObservedService(t *testing.T, opts ...Option) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append(opts, WithLogger(zap.New(core)))
	return newTestService(t, opts...), logs
}
