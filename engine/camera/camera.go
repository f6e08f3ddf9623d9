package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position    mgl32.Vec3
	orientation mgl32.Quat

	viewMatrix mgl32.Mat4
}

// Camera is a world-space camera pose plus the view matrix derived from it.
// Camera implements rig.PoseSink, so a RigController can drive it directly.
// Projection parameters are owned by whatever renders through the camera, not by the camera.
type Camera interface {
	rig.PoseSink

	// Pose returns the position and orientation as a single value.
	//
	// Returns:
	//   - common.Pose: the current pose
	Pose() common.Pose

	// SetPose sets position and orientation together.
	//
	// Parameters:
	//   - pose: the new pose
	SetPose(pose common.Pose)

	// Forward returns the world-space direction the camera looks along (local -Z).
	//
	// Returns:
	//   - mgl32.Vec3: normalized forward vector
	Forward() mgl32.Vec3

	// ViewMatrix returns the world-to-camera matrix for the current pose.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		orientation: mgl32.QuatIdent(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(orientation mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = orientation
	c.updateMatrices()
}

func (c *cameraImpl) Pose() common.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Pose{Position: c.position, Orientation: c.orientation}
}

func (c *cameraImpl) SetPose(pose common.Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pose.Position
	c.orientation = pose.Orientation
	c.updateMatrices()
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ForwardVector(c.orientation)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

// updateMatrices recomputes the view matrix as the inverse of the camera's world transform:
// the conjugate rotation applied after translating by -position.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	p := c.position
	c.viewMatrix = c.orientation.Conjugate().Normalize().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}
