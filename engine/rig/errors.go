package rig

import (
	"errors"
	"fmt"
)

// Severity distinguishes configuration problems that disable the rig from ones it recovers from.
type Severity int

const (
	// SeverityWarning is recoverable: a default is substituted and the rig keeps running.
	SeverityWarning Severity = iota

	// SeverityFatal disables the rig for the rest of the session.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var (
	ErrNoPoseSink           = errors.New("no camera pose sink")
	ErrNoPresets            = errors.New("no presets defined")
	ErrInvalidNeighbor      = errors.New("invalid neighbor reference")
	ErrStartIndexOutOfRange = errors.New("start index out of range")
	ErrAlreadyInitialized   = errors.New("rig controller already initialized")
	ErrNotInitialized       = errors.New("rig controller not initialized")
	ErrControllerDisabled   = errors.New("rig controller disabled")
	ErrPresetOutOfRange     = errors.New("preset index out of range")
	ErrNoInputSource        = errors.New("no input source")
)

// ConfigurationError describes a problem with the rig's static configuration.
// Fatal errors are reported as "configuration error", warnings as "configuration warning".
type ConfigurationError struct {
	Severity Severity
	Err      error
	Detail   string
}

// NewConfigurationError builds a ConfigurationError. Loaders use it so their graph problems
// carry the same severity as the controller's own checks.
//
// Parameters:
//   - severity: SeverityWarning or SeverityFatal
//   - err: the sentinel or underlying error, exposed through Unwrap
//   - format: optional detail format, empty for none
//   - args: format arguments
//
// Returns:
//   - *ConfigurationError: the error
func NewConfigurationError(severity Severity, err error, format string, args ...any) *ConfigurationError {
	ce := &ConfigurationError{Severity: severity, Err: err}
	if format != "" {
		ce.Detail = fmt.Sprintf(format, args...)
	}
	return ce
}

func (e *ConfigurationError) Error() string {
	kind := "configuration error"
	if e.Severity == SeverityWarning {
		kind = "configuration warning"
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", kind, e.Err, e.Detail)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a fatal ConfigurationError.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - bool: true if err wraps a *ConfigurationError with SeverityFatal
func IsFatal(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce) && ce.Severity == SeverityFatal
}
