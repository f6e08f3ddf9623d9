package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World axes used when composing Euler rotations.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// EulerToQuat converts Euler angles in degrees into a unit quaternion.
// The rotation is applied around Z first, then X, then Y (q = Ry * Rx * Rz), which is the
// convention preset files are authored in.
//
// Parameters:
//   - degrees: rotation around the X, Y and Z axes in degrees
//
// Returns:
//   - mgl32.Quat: the composed rotation
func EulerToQuat(degrees mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(degrees[0]), AxisX)
	qy := mgl32.QuatRotate(mgl32.DegToRad(degrees[1]), AxisY)
	qz := mgl32.QuatRotate(mgl32.DegToRad(degrees[2]), AxisZ)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatToEuler is the inverse of EulerToQuat: it returns X, Y, Z angles in degrees such that
// EulerToQuat(QuatToEuler(q)) is q (or -q). X is in [-90, 90]; at the poles Z is folded into Y.
//
// Parameters:
//   - q: a unit quaternion
//
// Returns:
//   - mgl32.Vec3: rotation around the X, Y and Z axes in degrees
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()

	// For R = Ry * Rx * Rz: m[1][2] = -sin(x), m[0][2] = sin(y)cos(x), m[2][2] = cos(y)cos(x),
	// m[1][0] = cos(x)sin(z), m[1][1] = cos(x)cos(z).
	sx := float64(mgl32.Clamp(-m.At(1, 2), -1, 1))
	x := math.Asin(sx)

	var y, z float64
	if math.Abs(sx) < 0.9999 {
		y = math.Atan2(float64(m.At(0, 2)), float64(m.At(2, 2)))
		z = math.Atan2(float64(m.At(1, 0)), float64(m.At(1, 1)))
	} else {
		y = math.Atan2(-float64(m.At(2, 0)), float64(m.At(0, 0)))
	}

	return mgl32.Vec3{
		mgl32.RadToDeg(float32(x)),
		mgl32.RadToDeg(float32(y)),
		mgl32.RadToDeg(float32(z)),
	}
}

// Clamp01 clamps t into the closed unit interval.
//
// Parameters:
//   - t: the value to clamp
//
// Returns:
//   - float32: t limited to [0, 1]
func Clamp01(t float32) float32 {
	return mgl32.Clamp(t, 0, 1)
}

// LerpVec3 linearly interpolates between a and b.
// t is not clamped.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation fraction
//
// Returns:
//   - mgl32.Vec3: a + (b - a) * t
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// SlerpShortest spherically interpolates between two orientations along the shortest arc.
// mgl32.QuatSlerp follows whichever hemisphere the inputs are in, so b is flipped first when
// the quaternions point away from each other.
//
// Parameters:
//   - a: orientation at t = 0
//   - b: orientation at t = 1
//   - t: interpolation fraction, clamped to [0, 1]
//
// Returns:
//   - mgl32.Quat: the interpolated unit quaternion
func SlerpShortest(a, b mgl32.Quat, t float32) mgl32.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t).Normalize()
}

// ForwardVector returns the direction a camera with the given orientation looks along.
// Cameras look down their local -Z axis.
//
// Parameters:
//   - orientation: the camera orientation
//
// Returns:
//   - mgl32.Vec3: the normalized world-space forward vector
func ForwardVector(orientation mgl32.Quat) mgl32.Vec3 {
	return orientation.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}
