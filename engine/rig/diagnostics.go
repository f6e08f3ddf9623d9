package rig

import (
	"log"
)

// Diagnostics receives human-readable reports about configuration problems.
type Diagnostics interface {
	// Report delivers a single problem.
	//
	// Parameters:
	//   - severity: SeverityFatal if the rig disabled itself, SeverityWarning if it recovered
	//   - err: the problem, usually a *ConfigurationError
	Report(severity Severity, err error)
}

// DiagnosticsFunc adapts a plain function to the Diagnostics interface.
type DiagnosticsFunc func(severity Severity, err error)

func (f DiagnosticsFunc) Report(severity Severity, err error) {
	f(severity, err)
}

type logDiagnostics struct {
	logger *log.Logger
}

// NewLogDiagnostics creates a Diagnostics that writes through a standard logger.
//
// Parameters:
//   - logger: destination logger, or nil for log.Default()
//
// Returns:
//   - Diagnostics: the logging diagnostics sink
func NewLogDiagnostics(logger *log.Logger) Diagnostics {
	if logger == nil {
		logger = log.Default()
	}
	return &logDiagnostics{logger: logger}
}

func (d *logDiagnostics) Report(severity Severity, err error) {
	d.logger.Printf("[CameraRig] %s: %v", severity, err)
}
