// Package rig implements a preset camera rig: a directional graph of authored camera poses and a
// controller that animates a camera between neighboring presets in response to directional input.
package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// RigController moves a camera between the presets of a PresetGraph.
// The controller is idle or running exactly one transition. Input is ignored until Initialize
// succeeds and while a transition is in flight. A fatal configuration error leaves the
// controller permanently inert.
type RigController interface {
	// Initialize validates the configuration, places the camera at the start preset and
	// enables input. An out-of-range startIndex is reported as a warning and replaced with 0.
	// Fatal problems are reported to the diagnostics sink, returned, and disable the controller.
	//
	// Parameters:
	//   - graph: the preset graph to navigate
	//   - startIndex: the preset the camera starts at
	//   - sink: the camera to drive
	//
	// Returns:
	//   - error: a fatal *ConfigurationError, or ErrAlreadyInitialized on a second call
	Initialize(graph *PresetGraph, startIndex int, sink PoseSink) error

	// Fail reports err as fatal and disables the controller, the same way Initialize does for
	// its own checks. Hosts call it when the configuration is unusable before Initialize can run.
	// An err that is not already a fatal *ConfigurationError is wrapped in one.
	//
	// Parameters:
	//   - err: the configuration problem
	//
	// Returns:
	//   - error: the fatal error that was reported
	Fail(err error) error

	// Start subscribes the controller to a directional input source.
	// Calling Start again first drops the previous subscription.
	//
	// Parameters:
	//   - source: the input source
	//
	// Returns:
	//   - error: ErrNoInputSource if source is nil
	Start(source input.Source) error

	// Stop unsubscribes from the current input source. Safe to call when not started.
	Stop()

	// OnDirectionalInput handles one directional input event.
	// The dominant axis selects the direction (see ResolveDirection). Dead ends are ignored silently.
	//
	// Parameters:
	//   - direction: the raw 2D input vector
	OnDirectionalInput(direction mgl32.Vec2)

	// Move follows the link in dir from the current preset under the same rules as
	// OnDirectionalInput.
	//
	// Parameters:
	//   - dir: the direction to follow
	//
	// Returns:
	//   - bool: true if a transition started
	Move(dir Direction) bool

	// TransitionTo starts a transition to any preset, bypassing the input-blocking rule.
	// An in-flight transition is cancelled and the new one starts from the camera's current,
	// possibly mid-flight, pose.
	//
	// Parameters:
	//   - index: the target preset
	//
	// Returns:
	//   - error: ErrNotInitialized, ErrControllerDisabled or ErrPresetOutOfRange
	TransitionTo(index int) error

	// Tick advances the active transition by deltaTime seconds. Does nothing while idle.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Tick(deltaTime float32)

	// CurrentIndex returns the preset the camera occupies or is leaving, or NoNeighbor before
	// initialization.
	CurrentIndex() int

	// CurrentPreset returns the preset at CurrentIndex.
	//
	// Returns:
	//   - Preset: the current preset
	//   - bool: false before initialization
	CurrentPreset() (Preset, bool)

	// Target returns the destination of the in-flight transition, or NoNeighbor while idle.
	Target() int

	// State returns the state machine phase.
	State() State

	// Progress returns normalized progress of the in-flight transition, 0 while idle.
	Progress() float32

	// IsMoving reports whether a transition is in flight.
	IsMoving() bool

	// IsInitialized reports whether Initialize succeeded.
	IsInitialized() bool

	// Disabled reports whether a fatal configuration error made the controller inert.
	Disabled() bool

	// MoveDuration returns the configured transition duration in seconds.
	MoveDuration() float32

	// Graph returns the preset graph, or nil before initialization.
	Graph() *PresetGraph
}

// ResolveDirection applies the dominant-axis rule to an input vector.
// Horizontal wins only when |x| is strictly greater than |y|; ties, including the zero vector,
// resolve vertically. Positive y is up, positive x is right.
//
// Parameters:
//   - v: the input vector
//
// Returns:
//   - Direction: exactly one of the four directions
func ResolveDirection(v mgl32.Vec2) Direction {
	if abs32(v.X()) > abs32(v.Y()) {
		if v.X() > 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	if v.Y() > 0 {
		return DirectionUp
	}
	return DirectionDown
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
