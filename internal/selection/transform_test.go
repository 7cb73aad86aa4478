package selection

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-editor/internal/geom"
	"model-editor/internal/model"
)

func assertVec3InDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d", i)
	}
}

// TestTranslate_InstanceMode moves the instance offsets of the selected
// instance and leaves its sibling in place.
func TestTranslate_InstanceMode(t *testing.T) {
	s, volumes := twoObjectScene()
	s.SetVerify(true)

	s.AddInstance(0, 0, true)
	s.StartDragging()
	s.Translate(mgl64.Vec3{1, 2, 3}, false)

	assertVec3InDelta(t, mgl64.Vec3{1, 2, 4}, (*volumes)[0].Instance.Offset, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{1, 2, 4}, (*volumes)[1].Instance.Offset, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{10, 0, 1}, (*volumes)[2].Instance.Offset, 1e-12)
}

// TestTranslate_CumulativeFromSnapshot: repeated calls during one drag
// apply against the drag-start positions, not additively.
func TestTranslate_CumulativeFromSnapshot(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddInstance(0, 0, true)
	s.StartDragging()
	s.Translate(mgl64.Vec3{1, 0, 0}, false)
	s.Translate(mgl64.Vec3{2, 0, 0}, false)

	assertVec3InDelta(t, mgl64.Vec3{2, 0, 1}, (*volumes)[0].Instance.Offset, 1e-12)
}

// TestTranslate_VolumeModeWorld converts a world displacement through
// the inverse instance frame, and the sibling part in the other
// instance follows verbatim.
func TestTranslate_VolumeModeWorld(t *testing.T) {
	s, volumes := twoObjectScene()
	(*volumes)[0].Instance.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	(*volumes)[2].Instance.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}

	s.AddPart(0, 0, 0, true)
	s.StartDragging()
	s.Translate(mgl64.Vec3{1, 0, 0}, false)

	// World +X through the inverse of a 90 degree Z spin is local -Y.
	assertVec3InDelta(t, mgl64.Vec3{0, -1, 0}, (*volumes)[0].Part.Offset, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{0, -1, 0}, (*volumes)[2].Part.Offset, 1e-12)
	// Other parts untouched.
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 0}, (*volumes)[1].Part.Offset, 1e-12)
}

// TestTranslate_VolumeModeLocal applies the displacement directly.
func TestTranslate_VolumeModeLocal(t *testing.T) {
	s, volumes := twoObjectScene()
	(*volumes)[0].Instance.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	(*volumes)[2].Instance.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}

	s.AddPart(0, 0, 0, true)
	s.StartDragging()
	s.Translate(mgl64.Vec3{1, 0, 0}, true)

	assertVec3InDelta(t, mgl64.Vec3{1, 0, 0}, (*volumes)[0].Part.Offset, 1e-12)
}

// TestRotate_ZJointOrbitsAroundCenter: a joint Z rotation turns the
// whole selection as a rigid body around the dragging center.
func TestRotate_ZJointOrbitsAroundCenter(t *testing.T) {
	m := &model.Model{Objects: []*model.Object{
		{Name: "pin", PartCount: 1, InstanceCount: 2},
	}}
	s, volumes := bindScene(m,
		newTestVolume(0, 0, 0, mgl64.Vec3{0, 0, 1}),
		newTestVolume(0, 1, 0, mgl64.Vec3{10, 0, 1}),
	)
	s.SetVerify(true)

	s.AddAll()
	s.StartDragging() // center (5, 0, 1)
	s.Rotate(mgl64.Vec3{0, 0, math.Pi / 2}, WorldRelativeJoint)

	assertVec3InDelta(t, mgl64.Vec3{5, -5, 1}, (*volumes)[0].Instance.Offset, 1e-9)
	assertVec3InDelta(t, mgl64.Vec3{5, 5, 1}, (*volumes)[1].Instance.Offset, 1e-9)
	assert.InDelta(t, math.Pi/2, (*volumes)[0].Instance.Rotation[2], 1e-9)
	assert.InDelta(t, math.Pi/2, (*volumes)[1].Instance.Rotation[2], 1e-9)
}

// TestRotate_ZeroRestoresSnapshot cancels an in-progress rotation.
func TestRotate_ZeroRestoresSnapshot(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddInstance(0, 0, true)
	s.StartDragging()
	s.Rotate(mgl64.Vec3{0, 0, 1.1}, WorldRelativeJoint)
	s.Rotate(mgl64.Vec3{}, WorldRelativeJoint)

	assertVec3InDelta(t, mgl64.Vec3{0, 0, 1}, (*volumes)[0].Instance.Offset, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{}, (*volumes)[0].Instance.Rotation, 1e-12)
}

// TestRotate_WorldComposesOntoSnapshot: the final orientation matrix
// equals the applied rotation times the drag-start orientation.
func TestRotate_WorldComposesOntoSnapshot(t *testing.T) {
	s, volumes := twoObjectScene()
	initial := mgl64.Vec3{0.2, -0.3, 0.7}
	(*volumes)[4].Instance.Rotation = initial

	s.Add(4, false)
	require.True(t, s.IsSingleFullInstance())
	s.StartDragging()

	applied := mgl64.Vec3{0.4, 0, 0}
	s.Rotate(applied, WorldRelativeJoint)

	expected := geom.RotationMatrix(applied).Mul4(geom.RotationMatrix(initial))
	actual := geom.RotationMatrix((*volumes)[4].Instance.Rotation)
	for i := 0; i < 16; i++ {
		assert.InDelta(t, expected[i], actual[i], 1e-8, "element %d", i)
	}
}

// TestRotate_ZRoundTrip: rotating by theta in one gesture and by -theta
// in the next returns the instance to its original rotation.
func TestRotate_ZRoundTrip(t *testing.T) {
	s, volumes := twoObjectScene()
	initial := mgl64.Vec3{0, 0, 0.45}
	(*volumes)[4].Instance.Rotation = initial

	s.Add(4, false)
	s.StartDragging()
	s.Rotate(mgl64.Vec3{0, 0, 0.9}, WorldRelativeJoint)
	s.StartDragging()
	s.Rotate(mgl64.Vec3{0, 0, -0.9}, WorldRelativeJoint)

	assertVec3InDelta(t, initial, (*volumes)[4].Instance.Rotation, 1e-8)
}

// TestRotate_FollowerKeepsOwnZSpin: with several instances of one object
// selected, a rotation about X tilts the first instance and the later
// ones copy its live rotation, offset by their own snapshot Z spin.
func TestRotate_FollowerKeepsOwnZSpin(t *testing.T) {
	m := &model.Model{Objects: []*model.Object{
		{Name: "pin", PartCount: 1, InstanceCount: 2},
	}}
	s, volumes := bindScene(m,
		newTestVolume(0, 0, 0, mgl64.Vec3{0, 0, 1}),
		newTestVolume(0, 1, 0, mgl64.Vec3{10, 0, 1}),
	)
	(*volumes)[0].Instance.Rotation = mgl64.Vec3{0, 0, 0.3}
	(*volumes)[1].Instance.Rotation = mgl64.Vec3{0, 0, 0.8}

	s.AddObject(0, true)
	s.StartDragging()
	s.Rotate(mgl64.Vec3{0.5, 0, 0}, LocalRelativeJoint)

	assertVec3InDelta(t, mgl64.Vec3{0.5, 0, 0.3}, (*volumes)[0].Instance.Rotation, 1e-9)
	assertVec3InDelta(t, mgl64.Vec3{0.5, 0, 0.8}, (*volumes)[1].Instance.Rotation, 1e-9)
}

// TestRotate_SingleVolumeIndependent: an independent relative rotation on
// a lone part composes onto its live rotation.
func TestRotate_SingleVolumeIndependent(t *testing.T) {
	s, volumes := twoObjectScene()
	(*volumes)[0].Part.Rotation = mgl64.Vec3{0, 0, 0.2}

	s.AddPart(0, 0, 0, true)
	require.Equal(t, SingleVolume, s.GetType())
	s.StartDragging()
	s.Rotate(mgl64.Vec3{0, 0, 0.4}, WorldRelativeIndependent)

	assertVec3InDelta(t, mgl64.Vec3{0, 0, 0.6}, (*volumes)[0].Part.Rotation, 1e-9)
	// The same part in the unselected sibling instance follows.
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 0.6}, (*volumes)[2].Part.Rotation, 1e-9)
}

// TestRotate_GeneralSyncPreservesZOffsets: rotating one instance about X
// forces the same X/Y tilt onto the unselected sibling while keeping its
// own Z spin relative to the selected one.
func TestRotate_GeneralSyncPreservesZOffsets(t *testing.T) {
	m := &model.Model{Objects: []*model.Object{
		{Name: "pin", PartCount: 1, InstanceCount: 2},
	}}
	s, volumes := bindScene(m,
		newTestVolume(0, 0, 0, mgl64.Vec3{0, 0, 1}),
		newTestVolume(0, 1, 0, mgl64.Vec3{10, 0, 1}),
	)
	(*volumes)[0].Instance.Rotation = mgl64.Vec3{0, 0, 0.3}
	(*volumes)[1].Instance.Rotation = mgl64.Vec3{0, 0, 0.8}
	s.SetVerify(true)

	s.AddInstance(0, 0, true)
	s.StartDragging()
	s.Rotate(mgl64.Vec3{0.5, 0, 0}, LocalRelativeJoint)

	assertVec3InDelta(t, mgl64.Vec3{0.5, 0, 0.3}, (*volumes)[0].Instance.Rotation, 1e-9)
	assertVec3InDelta(t, mgl64.Vec3{0.5, 0, 0.8}, (*volumes)[1].Instance.Rotation, 1e-9)
	assert.True(t, geom.IsRotationXYSynchronized(
		(*volumes)[0].Instance.Rotation, (*volumes)[1].Instance.Rotation))
}

// TestFlatteningRotate points the given body-frame normal straight down
// and forces the sibling instance to the exact same orientation.
func TestFlatteningRotate(t *testing.T) {
	m := &model.Model{Objects: []*model.Object{
		{Name: "wedge", PartCount: 1, InstanceCount: 2},
	}}
	s, volumes := bindScene(m,
		newTestVolume(0, 0, 0, mgl64.Vec3{0, 0, 1}),
		newTestVolume(0, 1, 0, mgl64.Vec3{10, 0, 1}),
	)

	s.AddInstance(0, 0, true)
	s.StartDragging()
	normal := mgl64.Vec3{1, 0, 0}
	s.FlatteningRotate(normal)

	down := geom.TransformVector(geom.RotationMatrix((*volumes)[0].Instance.Rotation), normal)
	assertVec3InDelta(t, mgl64.Vec3{0, 0, -1}, down, 1e-8)
	assertVec3InDelta(t, (*volumes)[0].Instance.Rotation, (*volumes)[1].Instance.Rotation, 1e-12)
}

// TestScale_SingleInstanceReseatsOnBed: scaling pushes the hull through
// the bed, then the instance is lifted back so its lowest point sits at
// z = 0.
func TestScale_SingleInstanceReseatsOnBed(t *testing.T) {
	s, volumes := twoObjectScene()

	s.Add(4, false)
	s.StartDragging()
	s.Scale(mgl64.Vec3{2, 2, 2}, true)

	v := (*volumes)[4]
	assertVec3InDelta(t, mgl64.Vec3{2, 2, 2}, v.Instance.Scale, 1e-12)
	assert.InDelta(t, 0.0, v.TransformedHullBox().Min[2], 1e-12)
	assert.InDelta(t, 2.0, v.Instance.Offset[2], 1e-12)
}

// TestScale_JointGrowsInPlace: a non-local multi-instance scale rescales
// the offsets around the dragging center so the layout spreads with the
// geometry.
func TestScale_JointGrowsInPlace(t *testing.T) {
	m := &model.Model{Objects: []*model.Object{
		{Name: "pin", PartCount: 1, InstanceCount: 2},
	}}
	s, volumes := bindScene(m,
		newTestVolume(0, 0, 0, mgl64.Vec3{0, 0, 1}),
		newTestVolume(0, 1, 0, mgl64.Vec3{10, 0, 1}),
	)

	s.AddAll()
	s.StartDragging() // center (5, 0, 1)
	s.Scale(mgl64.Vec3{2, 2, 2}, false)

	assertVec3InDelta(t, mgl64.Vec3{2, 2, 2}, (*volumes)[0].Instance.Scale, 1e-12)
	// Offsets doubled away from the center in x; z re-seated on the bed.
	assert.InDelta(t, -5.0, (*volumes)[0].Instance.Offset[0], 1e-12)
	assert.InDelta(t, 15.0, (*volumes)[1].Instance.Offset[0], 1e-12)
	assert.InDelta(t, 0.0, (*volumes)[0].TransformedHullBox().Min[2], 1e-12)
}

// TestMirror_SingleFullInstance flips the instance mirror and the
// sibling instance follows.
func TestMirror_SingleFullInstance(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddInstance(0, 0, true)
	s.StartDragging()
	s.Mirror(geom.X)

	assert.Equal(t, -1.0, (*volumes)[0].Instance.Mirror[0])
	assert.Equal(t, -1.0, (*volumes)[2].Instance.Mirror[0])
	assert.Equal(t, 1.0, (*volumes)[4].Instance.Mirror[0])
}

// TestMirror_VolumeMode flips the part mirror of the selected part.
func TestMirror_VolumeMode(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddPart(0, 0, 0, true)
	s.Mirror(geom.Z)

	assert.Equal(t, -1.0, (*volumes)[0].Part.Mirror[2])
	// Synchronized sibling part.
	assert.Equal(t, -1.0, (*volumes)[2].Part.Mirror[2])
	assert.Equal(t, 1.0, (*volumes)[1].Part.Mirror[2])
}

// TestMirror_UnsupportedShapeIsNoOp leaves a multi-object instance
// selection untouched.
func TestMirror_UnsupportedShapeIsNoOp(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddAll()
	s.Mirror(geom.Y)

	for _, v := range *volumes {
		assert.Equal(t, 1.0, v.Instance.Mirror[1])
	}
}

// TestTranslateObject moves every instance of the object, unselected
// volumes included.
func TestTranslateObject(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddPart(0, 0, 0, true)
	s.TranslateObject(0, mgl64.Vec3{0, 7, 0})

	for i := 0; i < 4; i++ {
		assert.InDelta(t, 7.0, (*volumes)[i].Instance.Offset[1], 1e-12, "volume %d", i)
	}
	assert.InDelta(t, 0.0, (*volumes)[4].Instance.Offset[1], 1e-12)
}

// TestTranslateInstance moves one placement only.
func TestTranslateInstance(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddPart(0, 0, 0, true)
	s.TranslateInstance(0, 0, mgl64.Vec3{0, 7, 0})

	assert.InDelta(t, 7.0, (*volumes)[0].Instance.Offset[1], 1e-12)
	assert.InDelta(t, 7.0, (*volumes)[1].Instance.Offset[1], 1e-12)
	assert.InDelta(t, 0.0, (*volumes)[2].Instance.Offset[1], 1e-12)
}

// TestTransformsRequireSnapshot: drag transforms without StartDragging
// are no-ops.
func TestTransformsRequireSnapshot(t *testing.T) {
	s, volumes := twoObjectScene()

	s.AddInstance(0, 0, true)
	s.Translate(mgl64.Vec3{1, 1, 1}, false)
	s.Rotate(mgl64.Vec3{0, 0, 1}, WorldRelativeJoint)
	s.Scale(mgl64.Vec3{2, 2, 2}, true)

	assertVec3InDelta(t, mgl64.Vec3{0, 0, 1}, (*volumes)[0].Instance.Offset, 1e-12)
	assertVec3InDelta(t, mgl64.Vec3{1, 1, 1}, (*volumes)[0].Instance.Scale, 1e-12)
}

// TestRotate_VerifyRejectsAbsoluteWorld: the debug check refuses the
// meaningless frame/variant combination.
func TestRotate_VerifyRejectsAbsoluteWorld(t *testing.T) {
	s, _ := twoObjectScene()
	s.SetVerify(true)

	s.AddInstance(0, 0, true)
	s.StartDragging()

	assert.Panics(t, func() {
		s.Rotate(mgl64.Vec3{0, 0, 1}, WorldAbsoluteJoint)
	})
}
