package rig

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PoseSink is the camera the rig drives. The rig reads the live pose when a transition starts
// and writes it on initialization, on every transition tick and once more on arrival.
// The rig assumes it is the only writer while it is active.
type PoseSink interface {
	// Position returns the current world-space position.
	Position() mgl32.Vec3

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - position: world-space position
	SetPosition(position mgl32.Vec3)

	// Orientation returns the current orientation.
	Orientation() mgl32.Quat

	// SetOrientation rotates the camera.
	//
	// Parameters:
	//   - orientation: unit quaternion
	SetOrientation(orientation mgl32.Quat)
}
