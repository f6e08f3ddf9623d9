package rig

// RigControllerOption is a functional option for configuring a RigController.
type RigControllerOption func(*rigControllerImpl)

// WithMoveDuration sets how long a transition between presets takes.
// Zero or negative durations make transitions complete on the first tick.
//
// Parameters:
//   - seconds: transition duration in seconds (default 0.3)
//
// Returns:
//   - RigControllerOption: functional option to set the duration
func WithMoveDuration(seconds float32) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.moveDuration = seconds
	}
}

// WithEasing sets the curve that shapes transition progress. A nil easing keeps the default.
//
// Parameters:
//   - easing: the easing curve (default Linear)
//
// Returns:
//   - RigControllerOption: functional option to set the easing
func WithEasing(easing Easing) RigControllerOption {
	return func(rc *rigControllerImpl) {
		if easing != nil {
			rc.easing = easing
		}
	}
}

// WithDiagnostics sets where configuration problems are reported. A nil sink keeps the default.
//
// Parameters:
//   - diagnostics: the diagnostics sink (default logs through the standard logger)
//
// Returns:
//   - RigControllerOption: functional option to set the diagnostics sink
func WithDiagnostics(diagnostics Diagnostics) RigControllerOption {
	return func(rc *rigControllerImpl) {
		if diagnostics != nil {
			rc.diagnostics = diagnostics
		}
	}
}

// WithOnArrive registers a callback fired after each transition snaps to its target.
// The callback runs with the controller locked and must not call back into it.
//
// Parameters:
//   - callback: receives the index of the preset arrived at
//
// Returns:
//   - RigControllerOption: functional option to set the arrival callback
func WithOnArrive(callback func(index int)) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.onArrive = callback
	}
}
