package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d", i)
	}
}

// TestNewTransformation starts with unit scale and mirror so Matrix is
// the identity.
func TestNewTransformation(t *testing.T) {
	tr := NewTransformation()
	assert.Equal(t, mgl64.Ident4(), tr.Matrix())
}

// TestTransformation_MatrixOrder checks the translate-rotate-scale-mirror
// composition by pushing a point through it step by step.
func TestTransformation_MatrixOrder(t *testing.T) {
	tr := NewTransformation()
	tr.Offset = mgl64.Vec3{10, 0, 0}
	tr.Rotation = mgl64.Vec3{0, 0, mgl64.DegToRad(90)}
	tr.Scale = mgl64.Vec3{2, 2, 2}
	tr.Mirror = mgl64.Vec3{-1, 1, 1}

	// (1,0,0) -> mirror (-1,0,0) -> scale (-2,0,0) -> rotate Z90 (0,-2,0)
	// -> translate (10,-2,0)
	p := TransformPoint(tr.Matrix(), mgl64.Vec3{1, 0, 0})
	assertVec3InDelta(t, mgl64.Vec3{10, -2, 0}, p, 1e-12)
}

// TestTransformVector ignores the translation part.
func TestTransformVector(t *testing.T) {
	tr := NewTransformation()
	tr.Offset = mgl64.Vec3{5, 6, 7}
	tr.Rotation = mgl64.Vec3{0, 0, mgl64.DegToRad(90)}

	v := TransformVector(tr.Matrix(), mgl64.Vec3{1, 0, 0})
	assertVec3InDelta(t, mgl64.Vec3{0, 1, 0}, v, 1e-12)
}

// TestRotationMatrix_AxisOrder applies the X, Y, Z intrinsic order: the
// combined matrix equals Rz * Ry * Rx.
func TestRotationMatrix_AxisOrder(t *testing.T) {
	rot := mgl64.Vec3{0.4, -0.8, 1.5}
	expected := mgl64.HomogRotate3DZ(rot[2]).Mul4(mgl64.HomogRotate3DY(rot[1])).Mul4(mgl64.HomogRotate3DX(rot[0]))
	actual := RotationMatrix(rot)
	for i := 0; i < 16; i++ {
		assert.InDelta(t, expected[i], actual[i], 1e-12)
	}
}

// TestBoundingBox_MergeAndCenter grows a box from points.
func TestBoundingBox_MergeAndCenter(t *testing.T) {
	var box BoundingBox
	assert.False(t, box.Defined)

	box.MergePoint(mgl64.Vec3{-1, 0, 2})
	box.MergePoint(mgl64.Vec3{3, 4, -2})

	assert.True(t, box.Defined)
	assertVec3InDelta(t, mgl64.Vec3{1, 2, 0}, box.Center(), 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{4, 4, 4}, box.Size(), 1e-12)

	other := NewBoundingBox(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{0, 0, 0})
	box.Merge(other)
	assert.Equal(t, -5.0, box.Min[0])
}

// TestBoundingBox_Transformed keeps the box axis-aligned: rotating a unit
// cube by 45 degrees about Z widens it to sqrt(2).
func TestBoundingBox_Transformed(t *testing.T) {
	box := NewBoundingBox(mgl64.Vec3{-0.5, -0.5, -0.5}, mgl64.Vec3{0.5, 0.5, 0.5})
	rotated := box.Transformed(mgl64.HomogRotate3DZ(mgl64.DegToRad(45)))

	sqrt2 := 1.4142135623730951
	assert.InDelta(t, sqrt2, rotated.Size()[0], 1e-12)
	assert.InDelta(t, sqrt2, rotated.Size()[1], 1e-12)
	assert.InDelta(t, 1.0, rotated.Size()[2], 1e-12)
}
