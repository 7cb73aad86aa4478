package model

import (
	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/geom"
)

// AuxObjectIdx is the first object index reserved for auxiliary volumes
// (support meshes, pads) that are rendered but not part of the persisted
// object hierarchy. Such volumes are skipped by synchronization and by
// deletion requests.
const AuxObjectIdx = 1000

// Volume is one renderable volume of the viewport: a single part of a
// single instance, or an auxiliary mesh, or the wipe tower. Identity is
// (ObjectIdx, InstanceIdx, PartIdx); PartIdx is negative for auxiliary
// meshes that exist only in the render list.
type Volume struct {
	Name string

	ObjectIdx   int
	InstanceIdx int
	PartIdx     int

	Modifier  bool
	WipeTower bool

	Selected bool
	Disabled bool

	// Part is the volume-local transform; Instance is the transform of the
	// instance the volume belongs to. World placement is Instance then Part.
	Part     geom.Transformation
	Instance geom.Transformation

	// HullBox bounds the volume's convex hull in its untransformed frame.
	HullBox geom.BoundingBox
}

// NewVolume returns a volume with identity transforms for the given identity.
func NewVolume(objectIdx, instanceIdx, partIdx int) *Volume {
	return &Volume{
		ObjectIdx:   objectIdx,
		InstanceIdx: instanceIdx,
		PartIdx:     partIdx,
		Part:        geom.NewTransformation(),
		Instance:    geom.NewTransformation(),
	}
}

// IsAux reports whether the volume is auxiliary geometry outside the
// persisted object hierarchy.
func (v *Volume) IsAux() bool {
	return v.ObjectIdx >= AuxObjectIdx
}

// WorldMatrix returns the composed instance*part matrix.
func (v *Volume) WorldMatrix() mgl64.Mat4 {
	return v.Instance.Matrix().Mul4(v.Part.Matrix())
}

// TransformedHullBox returns the world-space axis-aligned box of the
// volume's convex hull under the current transforms.
func (v *Volume) TransformedHullBox() geom.BoundingBox {
	return v.HullBox.Transformed(v.WorldMatrix())
}

// VolumeList is the flat render list the selection operates on. The
// selection holds a pointer to it so the list can be swapped and rebound.
type VolumeList []*Volume
