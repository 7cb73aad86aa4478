package geom

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Axis indexes a world or local coordinate axis.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Transformation stores a rigid-body transform decomposed the way the
// editor edits it: offset, XYZ Euler rotation (radians), per-axis scale
// factors, and per-axis mirror signs (+1 or -1). The composed matrix is
// Translate * Rotate * Scale * Mirror.
type Transformation struct {
	Offset   mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Mirror   mgl64.Vec3
}

// NewTransformation returns an identity transformation (unit scale, unit mirror).
func NewTransformation() Transformation {
	return Transformation{
		Scale:  mgl64.Vec3{1, 1, 1},
		Mirror: mgl64.Vec3{1, 1, 1},
	}
}

// RotationMatrix builds the rotation matrix Rz*Ry*Rx for XYZ Euler angles.
func RotationMatrix(rotation mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(rotation[2]).
		Mul4(mgl64.HomogRotate3DY(rotation[1])).
		Mul4(mgl64.HomogRotate3DX(rotation[0]))
}

// ScaleMatrix builds a diagonal scale matrix from per-axis factors.
func ScaleMatrix(scale mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(scale[0], scale[1], scale[2])
}

// RotationMatrix returns the matrix of the rotation component alone.
func (t Transformation) RotationMatrix() mgl64.Mat4 {
	return RotationMatrix(t.Rotation)
}

// ScaleMatrix returns the matrix of the scale component alone.
func (t Transformation) ScaleMatrix() mgl64.Mat4 {
	return ScaleMatrix(t.Scale)
}

// MirrorMatrix returns the matrix of the mirror component alone.
func (t Transformation) MirrorMatrix() mgl64.Mat4 {
	return mgl64.Scale3D(t.Mirror[0], t.Mirror[1], t.Mirror[2])
}

// Matrix returns the full composed matrix: Translate * Rotate * Scale * Mirror.
func (t Transformation) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Offset[0], t.Offset[1], t.Offset[2]).
		Mul4(t.RotationMatrix()).
		Mul4(t.ScaleMatrix()).
		Mul4(t.MirrorMatrix())
}

// TransformPoint applies the matrix to a point (w = 1).
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformVector applies the matrix to a direction (w = 0, no translation).
func TransformVector(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}
