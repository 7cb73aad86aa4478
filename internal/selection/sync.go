package selection

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/geom"
	"model-editor/internal/model"
)

// syncRotationType selects how instance rotations propagate to
// unselected sibling instances.
type syncRotationType int

const (
	// syncRotationNone: the transform only changed Z rotation (or none at
	// all), siblings keep their own rotation. X/Y stay synchronized by
	// construction; verified when debug checks are on.
	syncRotationNone syncRotationType = iota
	// syncRotationFull: force the exact new rotation, Z included. Used
	// after flattening, which changes orientation non-trivially.
	syncRotationFull
	// syncRotationGeneral: take the new X/Y and shift Z by each sibling's
	// own snapshot Z difference, preserving relative spins.
	syncRotationGeneral
)

// syncUnselectedInstances propagates the final rotation/scale/mirror of
// each selected volume's instance to every unselected volume of the same
// object in a different instance. Auxiliary volumes are skipped. Each
// sibling is processed once even when several selected volumes share an
// instance.
func (s *Selection) syncUnselectedInstances(syncType syncRotationType) {
	done := make(map[int]bool, len(s.list))
	for _, i := range s.list {
		done[i] = true
	}

	for _, i := range s.list {
		if len(done) == len(*s.volumes) {
			break
		}

		volume := (*s.volumes)[i]
		if volume.ObjectIdx >= model.AuxObjectIdx {
			continue
		}

		objectIdx := volume.ObjectIdx
		instanceIdx := volume.InstanceIdx
		rotation := volume.Instance.Rotation
		scale := volume.Instance.Scale
		mirror := volume.Instance.Mirror

		for j, v := range *s.volumes {
			if len(done) == len(*s.volumes) {
				break
			}
			if done[j] || v.ObjectIdx != objectIdx || v.InstanceIdx == instanceIdx {
				continue
			}

			if s.verify && s.snapshot != nil {
				assertXYSynchronized(s.snapshot[i].instance.rotation, s.snapshot[j].instance.rotation)
			}
			switch syncType {
			case syncRotationNone:
				// Z-only change; the sibling's rotation is already right.
				if s.verify {
					assertXYSynchronized(rotation, v.Instance.Rotation)
				}
			case syncRotationFull:
				v.Instance.Rotation = rotation
			case syncRotationGeneral:
				zDiff := geom.RotationDiffZ(s.snapshot[i].instance.rotation, s.snapshot[j].instance.rotation)
				v.Instance.Rotation = mgl64.Vec3{rotation[0], rotation[1], rotation[2] + zDiff}
			}

			v.Instance.Scale = scale
			v.Instance.Mirror = mirror

			done[j] = true
		}
	}

	if s.verify {
		s.verifyInstancesRotationSynchronized()
	}
}

// syncUnselectedVolumes copies each selected volume's part transform
// verbatim onto the unselected volumes carrying the same part in other
// instances: parts of one object stay in lock-step across instances.
func (s *Selection) syncUnselectedVolumes() {
	for _, i := range s.list {
		volume := (*s.volumes)[i]
		if volume.ObjectIdx >= model.AuxObjectIdx {
			continue
		}

		objectIdx := volume.ObjectIdx
		partIdx := volume.PartIdx

		for j, v := range *s.volumes {
			if j == i || v.ObjectIdx != objectIdx || v.PartIdx != partIdx {
				continue
			}
			v.Part.Offset = volume.Part.Offset
			v.Part.Rotation = volume.Part.Rotation
			v.Part.Scale = volume.Part.Scale
			v.Part.Mirror = volume.Part.Mirror
		}
	}
}

// verifyInstancesRotationSynchronized checks that across all instances of
// each object the rotations differ only around Z. Debug-only; violations
// are programmer errors, not runtime failures.
func (s *Selection) verifyInstancesRotationSynchronized() {
	for objectIdx := range s.model.Objects {
		first := -1
		for i, v := range *s.volumes {
			if v.ObjectIdx == objectIdx {
				first = i
				break
			}
		}
		if first == -1 {
			continue
		}
		rotation0 := (*s.volumes)[first].Instance.Rotation
		for _, v := range (*s.volumes)[first+1:] {
			if v.ObjectIdx == objectIdx {
				assertXYSynchronized(v.Instance.Rotation, rotation0)
			}
		}
	}
}

func assertXYSynchronized(from, to mgl64.Vec3) {
	if !geom.IsRotationXYSynchronized(from, to) {
		panic(fmt.Sprintf("selection: instance rotations desynchronized beyond Z: %v vs %v", from, to))
	}
}
