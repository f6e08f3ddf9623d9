package rig

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationErrorMessages(t *testing.T) {
	fatal := NewConfigurationError(SeverityFatal, ErrNoPresets, "")
	assert.Equal(t, "configuration error: no presets defined", fatal.Error())

	warn := NewConfigurationError(SeverityWarning, ErrStartIndexOutOfRange, "start index %d", 7)
	assert.Equal(t, "configuration warning: start index out of range: start index 7", warn.Error())
}

func TestIsFatalThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading rig: %w", NewConfigurationError(SeverityFatal, ErrInvalidNeighbor, ""))
	assert.True(t, IsFatal(err))
	assert.True(t, errors.Is(err, ErrInvalidNeighbor))

	assert.False(t, IsFatal(NewConfigurationError(SeverityWarning, ErrStartIndexOutOfRange, "")))
	assert.False(t, IsFatal(errors.New("plain")))
	assert.False(t, IsFatal(nil))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "fatal", SeverityFatal.String())
	assert.Equal(t, "unknown", Severity(9).String())
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogDiagnostics(log.New(&buf, "", 0))
	d.Report(SeverityFatal, NewConfigurationError(SeverityFatal, ErrNoPoseSink, ""))
	assert.Equal(t, "[CameraRig] fatal: configuration error: no camera pose sink\n", buf.String())
}

func TestDiagnosticsFunc(t *testing.T) {
	var got Severity = -1
	DiagnosticsFunc(func(s Severity, _ error) { got = s }).Report(SeverityWarning, ErrNoPresets)
	assert.Equal(t, SeverityWarning, got)
}
