package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon bounds below which a rotation axis component is treated as zero.
const epsilon = 1e-8

// ExtractEulerAngles decomposes the rotation part of a matrix into XYZ
// Euler angles such that RotationMatrix(angles) rebuilds it. Two candidate
// decompositions exist away from gimbal lock; the one with the smaller
// angles is preferred so round trips through composition stay stable.
// Reference: Slabaugh, "Computing Euler angles from a rotation matrix".
func ExtractEulerAngles(m mgl64.Mat4) mgl64.Vec3 {
	// m.At(row, col)
	if math.Abs(math.Abs(m.At(2, 0))-1.0) < 1e-5 {
		// Gimbal lock: m(2,0) == ±1, x and z are coupled. Fix z = 0.
		var angles mgl64.Vec3
		if m.At(2, 0) < 0 {
			angles[1] = 0.5 * math.Pi
			angles[0] = angles[2] + math.Atan2(m.At(0, 1), m.At(0, 2))
		} else {
			angles[1] = -0.5 * math.Pi
			angles[0] = -angles[2] + math.Atan2(-m.At(0, 1), -m.At(0, 2))
		}
		return angles
	}

	var first, second mgl64.Vec3
	first[1] = -math.Asin(m.At(2, 0))
	invCos := 1.0 / math.Cos(first[1])
	first[0] = math.Atan2(m.At(2, 1)*invCos, m.At(2, 2)*invCos)
	first[2] = math.Atan2(m.At(1, 0)*invCos, m.At(0, 0)*invCos)

	second[1] = math.Pi - first[1]
	invCos = 1.0 / math.Cos(second[1])
	second[0] = math.Atan2(m.At(2, 1)*invCos, m.At(2, 2)*invCos)
	second[2] = math.Atan2(m.At(1, 0)*invCos, m.At(0, 0)*invCos)

	if minAbsCoeff(first) <= minAbsCoeff(second) {
		return first
	}
	return second
}

func minAbsCoeff(v mgl64.Vec3) float64 {
	m := math.Abs(v[0])
	if a := math.Abs(v[1]); a < m {
		m = a
	}
	if a := math.Abs(v[2]); a < m {
		m = a
	}
	return m
}

// eulerQuat builds the world-space quaternion for XYZ Euler angles
// (same composition order as RotationMatrix: Rz*Ry*Rx).
func eulerQuat(rotation mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatRotate(rotation[2], mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(rotation[1], mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(rotation[0], mgl64.Vec3{1, 0, 0}))
}

// rotationDiff returns the quaternion taking the "from" orientation to the
// "to" orientation, both given as XYZ Euler angles.
func rotationDiff(from, to mgl64.Vec3) mgl64.Quat {
	return eulerQuat(to).Mul(eulerQuat(from).Inverse())
}

// axisAngle converts a quaternion to a rotation axis and an angle in
// [0, pi]. A near-identity quaternion reports the X axis and angle 0.
func axisAngle(q mgl64.Quat) (mgl64.Vec3, float64) {
	q = q.Normalize()
	if q.W < 0 {
		q = mgl64.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	sinHalf := q.V.Len()
	if sinHalf < epsilon {
		return mgl64.Vec3{1, 0, 0}, 0
	}
	return q.V.Mul(1 / sinHalf), 2 * math.Atan2(sinHalf, q.W)
}

// RotationDiffZ returns the signed Z angle between two Euler rotations.
// Callers must guarantee the two rotations differ only around Z.
func RotationDiffZ(from, to mgl64.Vec3) float64 {
	axis, angle := axisAngle(rotationDiff(from, to))
	if axis[2] < 0 {
		return -angle
	}
	return angle
}

// IsRotationXYSynchronized reports whether the two Euler rotations differ
// only by a rotation around the Z axis (within epsilon).
func IsRotationXYSynchronized(from, to mgl64.Vec3) bool {
	axis, angle := axisAngle(rotationDiff(from, to))
	if math.Abs(angle) < epsilon {
		return true
	}
	return math.Abs(axis[0]) < epsilon && math.Abs(axis[1]) < epsilon &&
		math.Abs(math.Abs(axis[2])-1) < epsilon
}
