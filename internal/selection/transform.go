package selection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/geom"
	"model-editor/internal/model"
)

// Translate moves the selection by displacement. In Volume mode (and for
// the wipe tower) the part offset moves: directly when local, otherwise
// the displacement is taken through the inverse of the instance's
// rotation*scale*mirror so the part moves along world axes. In Instance
// mode the instance offsets move. Requires a StartDragging snapshot.
func (s *Selection) Translate(displacement mgl64.Vec3, local bool) {
	if !s.valid || s.snapshot == nil {
		return
	}

	for _, i := range s.list {
		v := (*s.volumes)[i]
		cache := s.snapshot[i]
		if s.mode == Volume || v.WipeTower {
			if local {
				v.Part.Offset = cache.part.position.Add(displacement)
			} else {
				inv := cache.instance.rotationMatrix.
					Mul4(cache.instance.scaleMatrix).
					Mul4(cache.instance.mirrorMatrix).Inv()
				v.Part.Offset = cache.part.position.Add(geom.TransformVector(inv, displacement))
			}
		} else if s.mode == Instance {
			v.Instance.Offset = cache.instance.position.Add(displacement)
		}
	}

	if s.mode == Instance {
		s.syncUnselectedInstances(syncRotationNone)
	} else if s.mode == Volume {
		s.syncUnselectedVolumes()
	}
	s.boxDirty = true
}

// Rotate rotates the selection. Only one component of rotation is
// expected to be non-zero; the dominant axis decides the policy. A zero
// rotation restores every selected volume's rotation and offset from the
// drag snapshot, cancelling an in-progress rotation. For Z-axis joint
// rotations the selection turns as a rigid body around the dragging
// center; for other axes each instance rotates locally, instances of one
// object after the first following it through their Z offsets only.
// Requires a StartDragging snapshot.
func (s *Selection) Rotate(rotation mgl64.Vec3, kind TransformKind) {
	if !s.valid || s.snapshot == nil {
		return
	}
	if s.verify && kind.World() && kind.Absolute() {
		// Only relative values make sense in the world frame.
		panic("selection: absolute world rotation")
	}

	rotAxisMax := 0
	if rotation.ApproxEqualThreshold(mgl64.Vec3{}, 1e-12) {
		for _, i := range s.list {
			v := (*s.volumes)[i]
			cache := s.snapshot[i]
			if s.mode == Instance {
				v.Instance.Rotation = cache.instance.rotation
				v.Instance.Offset = cache.instance.position
			} else if s.mode == Volume {
				v.Part.Rotation = cache.part.rotation
				v.Part.Offset = cache.part.position
			}
		}
	} else {
		rotAxisMax = dominantAxis(rotation)

		// First volume rotated per object in this call; later instances of
		// the same object follow it instead of rotating rigidly.
		firstRotated := make(map[int]int)

		rotateInstance := func(v *model.Volume, i int) {
			cache := s.snapshot[i]
			if firstIdx, seen := firstRotated[v.ObjectIdx]; rotAxisMax != 2 && seen {
				// Generic rotation around X or Y: keep it local per volume.
				// Derive this instance from the first one's live rotation,
				// shifted by the snapshot Z difference between the two.
				first := (*s.volumes)[firstIdx]
				firstRotation := first.Instance.Rotation
				zDiff := geom.RotationDiffZ(s.snapshot[firstIdx].instance.rotation, cache.instance.rotation)
				v.Instance.Rotation = mgl64.Vec3{firstRotation[0], firstRotation[1], firstRotation[2] + zDiff}
				return
			}

			var newRotation mgl64.Vec3
			switch {
			case kind.World():
				newRotation = geom.ExtractEulerAngles(geom.RotationMatrix(rotation).Mul4(cache.instance.rotationMatrix))
			case kind.Absolute():
				newRotation = rotation
			default:
				newRotation = rotation.Add(cache.instance.rotation)
			}
			if rotAxisMax == 2 && kind.Joint() {
				// Rigid body around the dragging center, Z only.
				zDelta := newRotation[2] - cache.instance.rotation[2]
				spin := geom.RotationMatrix(mgl64.Vec3{0, 0, zDelta})
				offset := geom.TransformVector(spin, cache.instance.position.Sub(s.draggingCenter))
				v.Instance.Offset = s.draggingCenter.Add(offset)
			}
			v.Instance.Rotation = newRotation
			firstRotated[v.ObjectIdx] = i
		}

		for _, i := range s.list {
			v := (*s.volumes)[i]
			if s.IsSingleFullInstance() {
				rotateInstance(v, i)
			} else if s.IsSingleVolume() || s.IsSingleModifier() {
				if kind.Independent() {
					v.Part.Rotation = v.Part.Rotation.Add(rotation)
				} else {
					m := geom.RotationMatrix(rotation)
					v.Part.Rotation = geom.ExtractEulerAngles(m.Mul4(s.snapshot[i].part.rotationMatrix))
				}
			} else if s.mode == Instance {
				rotateInstance(v, i)
			} else if s.mode == Volume {
				cache := s.snapshot[i]
				m := geom.RotationMatrix(rotation)
				newRotation := geom.ExtractEulerAngles(m.Mul4(cache.part.rotationMatrix))
				if kind.Joint() {
					localPivot := geom.TransformPoint(cache.instance.fullMatrix.Inv(), s.draggingCenter)
					offset := geom.TransformVector(m, cache.part.position.Sub(localPivot))
					v.Part.Offset = localPivot.Add(offset)
				}
				v.Part.Rotation = newRotation
			}
		}
	}

	if s.mode == Instance {
		syncType := syncRotationGeneral
		if rotAxisMax == 2 {
			syncType = syncRotationNone
		}
		s.syncUnselectedInstances(syncType)
	} else if s.mode == Volume {
		s.syncUnselectedVolumes()
	}
	s.boxDirty = true
}

// FlatteningRotate rotates each selected instance so that the given face
// normal (in the entity's untransformed frame) points straight down.
// Used for place-on-face. Sibling instances are forced to the exact new
// rotation afterwards, Z included, since the orientation change is not a
// pure Z spin. Requires a StartDragging snapshot.
func (s *Selection) FlatteningRotate(normal mgl64.Vec3) {
	if !s.valid || s.snapshot == nil {
		return
	}

	for _, i := range s.list {
		v := (*s.volumes)[i]
		cache := s.snapshot[i]

		wst := cache.instance.scaleMatrix
		scaling := mgl64.Vec3{1 / wst.At(0, 0), 1 / wst.At(1, 1), 1 / wst.At(2, 2)}
		wmt := cache.instance.mirrorMatrix
		mirror := mgl64.Vec3{wmt.At(0, 0), wmt.At(1, 1), wmt.At(2, 2)}
		rotation := geom.ExtractEulerAngles(cache.instance.rotationMatrix)

		frame := geom.Transformation{Rotation: rotation, Scale: scaling, Mirror: mirror}
		transformedNormal := geom.TransformVector(frame.Matrix(), normal).Normalize()

		var axis mgl64.Vec3
		if transformedNormal[2] > 0.999 {
			axis = mgl64.Vec3{1, 0, 0}
		} else {
			axis = transformedNormal.Cross(mgl64.Vec3{0, 0, -1}).Normalize()
		}

		extraRotation := mgl64.HomogRotate3D(math.Acos(-transformedNormal[2]), axis)
		v.Instance.Rotation = geom.ExtractEulerAngles(extraRotation.Mul4(cache.instance.rotationMatrix))
	}

	// Sync Z as well, otherwise flattening one of several identical
	// instances leaves the others spun.
	if s.mode == Instance {
		s.syncUnselectedInstances(syncRotationFull)
	}
	s.boxDirty = true
}

// Scale rescales the selection. A lone full instance or lone part gets
// the factors directly. Multi selections compose the factors onto the
// snapshot scale matrix and read the new per-axis factors off the column
// norms; unless local, offsets are rescaled around the dragging center so
// the selection grows in place. Instances are re-seated on the bed
// afterwards. Requires a StartDragging snapshot.
func (s *Selection) Scale(scale mgl64.Vec3, local bool) {
	if !s.valid || s.snapshot == nil {
		return
	}

	for _, i := range s.list {
		v := (*s.volumes)[i]
		if s.IsSingleFullInstance() {
			if !local {
				m := geom.ScaleMatrix(scale)
				cache := s.snapshot[i]
				v.Instance.Offset = s.draggingCenter.Add(
					geom.TransformVector(m, cache.instance.position.Sub(s.draggingCenter)))
			}
			v.Instance.Scale = scale
		} else if s.IsSingleVolume() || s.IsSingleModifier() {
			v.Part.Scale = scale
		} else {
			cache := s.snapshot[i]
			m := geom.ScaleMatrix(scale)
			if s.mode == Instance {
				newScale := columnNorms(m.Mul4(cache.instance.scaleMatrix))
				if !local {
					v.Instance.Offset = s.draggingCenter.Add(
						geom.TransformVector(m, cache.instance.position.Sub(s.draggingCenter)))
				}
				v.Instance.Scale = newScale
			} else if s.mode == Volume {
				newScale := columnNorms(m.Mul4(cache.part.scaleMatrix))
				if !local {
					offset := geom.TransformVector(m,
						cache.part.position.Add(cache.instance.position).Sub(s.draggingCenter))
					v.Part.Offset = s.draggingCenter.Sub(cache.instance.position).Add(offset)
				}
				v.Part.Scale = newScale
			}
		}
	}

	if s.mode == Instance {
		s.syncUnselectedInstances(syncRotationNone)
	} else if s.mode == Volume {
		s.syncUnselectedVolumes()
	}

	s.ensureOnBed()
	s.boxDirty = true
}

// Mirror flips the selection along the axis. Mirroring only applies to a
// single full instance (instance mirror) or to parts in Volume mode
// (part mirror); any other selection shape is left untouched.
func (s *Selection) Mirror(axis geom.Axis) {
	if !s.valid {
		return
	}

	singleFullInstance := s.IsSingleFullInstance()
	for _, i := range s.list {
		v := (*s.volumes)[i]
		if singleFullInstance {
			v.Instance.Mirror[axis] = -v.Instance.Mirror[axis]
		} else if s.mode == Volume {
			v.Part.Mirror[axis] = -v.Part.Mirror[axis]
		}
	}

	if s.mode == Instance {
		s.syncUnselectedInstances(syncRotationNone)
	} else if s.mode == Volume {
		s.syncUnselectedVolumes()
	}
	s.boxDirty = true
}

// TranslateObject shifts every instance of one object by displacement:
// first the selected volumes of that object, then the remaining volumes
// of every selected volume's object. No snapshot involved; offsets move
// from their current values.
func (s *Selection) TranslateObject(objectIdx int, displacement mgl64.Vec3) {
	if !s.valid {
		return
	}

	for _, i := range s.list {
		v := (*s.volumes)[i]
		if v.ObjectIdx == objectIdx {
			v.Instance.Offset = v.Instance.Offset.Add(displacement)
		}
	}

	done := make(map[int]bool, len(s.list))
	for _, i := range s.list {
		done[i] = true
	}
	for _, i := range s.list {
		if len(done) == len(*s.volumes) {
			break
		}
		obj := (*s.volumes)[i].ObjectIdx
		if obj >= model.AuxObjectIdx {
			continue
		}
		for j, v := range *s.volumes {
			if done[j] || v.ObjectIdx != obj {
				continue
			}
			v.Instance.Offset = v.Instance.Offset.Add(displacement)
			done[j] = true
		}
	}

	s.boxDirty = true
}

// TranslateInstance shifts one instance of one object by displacement,
// selected volumes first, then their unselected siblings of the same
// instance.
func (s *Selection) TranslateInstance(objectIdx, instanceIdx int, displacement mgl64.Vec3) {
	if !s.valid {
		return
	}

	for _, i := range s.list {
		v := (*s.volumes)[i]
		if v.ObjectIdx == objectIdx && v.InstanceIdx == instanceIdx {
			v.Instance.Offset = v.Instance.Offset.Add(displacement)
		}
	}

	done := make(map[int]bool, len(s.list))
	for _, i := range s.list {
		done[i] = true
	}
	for _, i := range s.list {
		if len(done) == len(*s.volumes) {
			break
		}
		obj := (*s.volumes)[i].ObjectIdx
		if obj >= model.AuxObjectIdx {
			continue
		}
		inst := (*s.volumes)[i].InstanceIdx
		for j, v := range *s.volumes {
			if done[j] || v.ObjectIdx != obj || v.InstanceIdx != inst {
				continue
			}
			v.Instance.Offset = v.Instance.Offset.Add(displacement)
			done[j] = true
		}
	}

	s.boxDirty = true
}

// ensureOnBed drops every instance to the bed: per (object, instance),
// the minimum world Z of its printable volumes is subtracted from the
// instance offset.
func (s *Selection) ensureOnBed() {
	type objInst struct{ obj, inst int }
	minZ := make(map[objInst]float64)

	for _, v := range *s.volumes {
		if v.WipeTower || v.Modifier {
			continue
		}
		key := objInst{v.ObjectIdx, v.InstanceIdx}
		z := v.TransformedHullBox().Min[2]
		if cur, ok := minZ[key]; !ok || z < cur {
			minZ[key] = z
		}
	}

	for _, v := range *s.volumes {
		if z, ok := minZ[objInst{v.ObjectIdx, v.InstanceIdx}]; ok {
			v.Instance.Offset[2] -= z
		}
	}
}

// dominantAxis returns the index of the largest-magnitude component.
func dominantAxis(v mgl64.Vec3) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) > math.Abs(v[axis]) {
			axis = i
		}
	}
	return axis
}

// columnNorms reads per-axis scale factors off the columns of the upper
// 3x3 block of a composed scale matrix.
func columnNorms(m mgl64.Mat4) mgl64.Vec3 {
	var out mgl64.Vec3
	for col := 0; col < 3; col++ {
		out[col] = (mgl64.Vec3{m.At(0, col), m.At(1, col), m.At(2, col)}).Len()
	}
	return out
}
