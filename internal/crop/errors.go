package crop

import (
	"errors"
	"fmt"

	"vidcrop/internal/services"
)

var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrInvalidTrim     = errors.New("invalid trim")
	ErrLaunchFailure   = errors.New("launch failure")
	ErrEncodeFailure   = errors.New("encode failure")
)

// Error is returned by every failing crop operation. Its message is meant to
// be shown to the user as-is; Kind is one of the sentinels above and the
// matching services marker is reachable through errors.Is as well.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind, marker(e.Kind)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func marker(kind error) error {
	switch kind {
	case ErrInvalidGeometry, ErrInvalidTrim:
		return services.ErrValidation
	default:
		return services.ErrExternalTool
	}
}

func newError(kind error, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// LaunchError reports that the encoder process could not be started.
func LaunchError(binary string, err error) error {
	return newError(ErrLaunchFailure, err, "failed to run %s: %v", binary, err)
}

// EncodeError reports a non-zero encoder exit with the diagnostic excerpt.
func EncodeError(binary, diagnostics string) error {
	return newError(ErrEncodeFailure, nil, "%s failed:\n%s", binary, diagnostics)
}
