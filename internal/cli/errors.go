package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for the CLI and configuration categories
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with diagnostics fields
//   - Debug mode management for error output

import (
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"errdiag/pkg/diag"
	"errdiag/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError writes structured error logs to the terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs maps sentinel errors to their error codes and descriptions.
// Must be declared before the sentinels so it exists when they register.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

func newWithSentinel(base error, msg string) error {
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

func wrapWithSentinel(base, cause error, msg string) error {
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// CLI errors.
	ErrInvalidCodeArgument = newSentinelError("invalid error code", errx.CodeCLI, errx.DescCLI)
	ErrUnknownTypeName     = newSentinelError("unknown error type", errx.CodeCLI, errx.DescCLI)
	ErrCodeNotFound        = newSentinelError("no error type registered for code", errx.CodeCLI, errx.DescCLI)
	ErrDocNotFound         = newSentinelError("no documentation entry for type", errx.CodeCLI, errx.DescCLI)
	ErrMappingFailed       = newSentinelError("failed to map error type", errx.CodeCLI, errx.DescCLI)

	// Config errors.
	ErrGetHomeDirectoryFailed = newSentinelError("failed to get home directory", errx.CodeConfig, errx.DescConfig)
	ErrReadConfigFailed       = newSentinelError("failed to read config", errx.CodeConfig, errx.DescConfig)
	ErrUnmarshalConfigFailed  = newSentinelError("failed to unmarshal config", errx.CodeConfig, errx.DescConfig)
	ErrInvalidEnvValue        = newSentinelError("invalid environment value", errx.CodeConfig, errx.DescConfig)
	ErrResourceDirNotFound    = newSentinelError("resource directory not found", errx.CodeConfig, errx.DescConfig)
	ErrServiceInitFailed      = newSentinelError("failed to initialize diagnostics service", errx.CodeConfig, errx.DescConfig)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// logStructuredError logs an error with structured fields to the terminal.
// Only logs when debug mode is enabled (via --debug flag).
//
// Fields for an errx.Error:
//   - error.code: "69000"
//   - error.category: "Configuration error"
//   - error.message: "failed to read config"
//   - error.context.<key>: one field per context entry
//   - error.chain: numbered cause chain, innermost first
//
// The chain is summarized by svc so it honors the resolved stack filter and
// threshold. Without a service, as when the configuration itself failed, it
// falls back to errx.DebugString.
func logStructuredError(logger *zap.Logger, svc *diag.Service, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("error.code", errxErr.Code()),
		zap.String("error.category", errxErr.Description()),
		zap.String("error.message", errxErr.Message()),
		zap.Error(err),
	}
	ctx := errxErr.Context()
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, zap.Any("error.context."+key, ctx[key]))
	}
	if errxErr.Cause() != nil {
		fields = append(fields, zap.String("error.chain", chainSummary(svc, err)))
	}
	logger.Error(msg, fields...)
}

func chainSummary(svc *diag.Service, err error) string {
	if svc == nil {
		return errx.DebugString(err)
	}
	return svc.ChainSummary(err)
}
