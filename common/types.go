// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a world-space camera placement: a position and an orientation quaternion.
type Pose struct {
	// Position is the world-space location of the camera.
	Position mgl32.Vec3

	// Orientation is the unit quaternion rotating camera space into world space.
	Orientation mgl32.Quat
}

// NewPose builds a Pose from a position and Euler angles in degrees.
// The angles follow the Z, X, Y application order described by EulerToQuat.
//
// Parameters:
//   - position: world-space position
//   - eulerDegrees: rotation around the X, Y and Z axes in degrees
//
// Returns:
//   - Pose: the resulting pose
func NewPose(position, eulerDegrees mgl32.Vec3) Pose {
	return Pose{
		Position:    position,
		Orientation: EulerToQuat(eulerDegrees),
	}
}

// ApproxEqual reports whether two poses match within the default mgl32 epsilon.
// Orientations q and -q describe the same rotation and compare equal.
//
// Parameters:
//   - other: the pose to compare against
//
// Returns:
//   - bool: true if both position and orientation match
func (p Pose) ApproxEqual(other Pose) bool {
	if !p.Position.ApproxEqual(other.Position) {
		return false
	}
	if p.Orientation.ApproxEqual(other.Orientation) {
		return true
	}
	return p.Orientation.ApproxEqual(other.Orientation.Scale(-1))
}

func (p Pose) String() string {
	return fmt.Sprintf("pos(%.3f, %.3f, %.3f) rot(w=%.3f, %.3f, %.3f, %.3f)",
		p.Position[0], p.Position[1], p.Position[2],
		p.Orientation.W, p.Orientation.V[0], p.Orientation.V[1], p.Orientation.V[2],
	)
}
