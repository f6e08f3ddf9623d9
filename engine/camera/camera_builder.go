package camera

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithOrientation sets the camera's initial orientation.
//
// Parameters:
//   - orientation: unit quaternion
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithOrientation(orientation mgl32.Quat) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orientation = orientation
	}
}

// WithEuler sets the camera's initial orientation from Euler angles in degrees.
//
// Parameters:
//   - x, y, z: rotation around each axis in degrees (see common.EulerToQuat)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithEuler(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orientation = common.EulerToQuat(mgl32.Vec3{x, y, z})
	}
}
