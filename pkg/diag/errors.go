package diag

import (
	"errors"

	"errdiag/pkg/errx"
)

type errorSpec struct {
	code        string
	description string
}

// errorSpecs maps sentinel errors to their category. Populated by newSentinelError
// during variable initialization, so it must be declared before the sentinels.
var errorSpecs = make(map[error]errorSpec)

func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// Sentinel errors returned (as the base of an *errx.Error) by the diagnostics service.
var (
	ErrTablesUnavailable = newSentinelError("exception tables unavailable", errx.CodeConfig, errx.DescConfig)
	ErrInvalidCode       = newSentinelError("invalid error code", errx.CodeConfig, errx.DescConfig)
	ErrMappingLoad       = newSentinelError("failed to load protocol exception mappings", errx.CodeConfig, errx.DescConfig)
	ErrUnknownType       = newSentinelError("unknown error type", errx.CodeMessaging, errx.DescMessaging)
)

func lookupSpec(sentinel error) (code, description string) {
	spec := errorSpecs[sentinel]
	return spec.code, spec.description
}

func newWithSentinel(base error, msg string) *errx.Error {
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

func wrapWithSentinel(base, cause error, msg string) *errx.Error {
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}
