package selection

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/geom"
	"model-editor/internal/model"
)

// Mode controls the granularity of selection and transforms: whole rigid
// instances or individual parts.
type Mode int

const (
	// Volume mode selects and transforms individual parts.
	Volume Mode = iota
	// Instance mode selects and transforms whole instances.
	Instance
)

// Type is the derived classification of the current selection shape. It
// is recomputed from scratch on every mutation and drives which transform
// policy applies.
type Type int

const (
	Invalid Type = iota
	Empty
	WipeTower
	SingleModifier
	MultipleModifier
	SingleVolume
	MultipleVolume
	SingleFullObject
	MultipleFullObject
	SingleFullInstance
	MultipleFullInstance
	Mixed
)

var typeNames = map[Type]string{
	Invalid:              "Invalid",
	Empty:                "Empty",
	WipeTower:            "WipeTower",
	SingleModifier:       "SingleModifier",
	MultipleModifier:     "MultipleModifier",
	SingleVolume:         "SingleVolume",
	MultipleVolume:       "MultipleVolume",
	SingleFullObject:     "SingleFullObject",
	MultipleFullObject:   "MultipleFullObject",
	SingleFullInstance:   "SingleFullInstance",
	MultipleFullInstance: "MultipleFullInstance",
	Mixed:                "Mixed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// transformCache is the drag-start decomposition of one transformation:
// the stored components plus their matrices, captured once so every
// transform call during the drag works from the same base.
type transformCache struct {
	position       mgl64.Vec3
	rotation       mgl64.Vec3
	scale          mgl64.Vec3
	mirror         mgl64.Vec3
	rotationMatrix mgl64.Mat4
	scaleMatrix    mgl64.Mat4
	mirrorMatrix   mgl64.Mat4
	fullMatrix     mgl64.Mat4
}

func newTransformCache(t geom.Transformation) transformCache {
	return transformCache{
		position:       t.Offset,
		rotation:       t.Rotation,
		scale:          t.Scale,
		mirror:         t.Mirror,
		rotationMatrix: t.RotationMatrix(),
		scaleMatrix:    t.ScaleMatrix(),
		mirrorMatrix:   t.MirrorMatrix(),
		fullMatrix:     t.Matrix(),
	}
}

// volumeCache snapshots both transform levels of one volume.
type volumeCache struct {
	part     transformCache
	instance transformCache
}

// Selection owns the set of selected volume indices over an externally
// owned volume list and model. It classifies the selection shape, applies
// transforms to the selected volumes, and keeps unselected sibling
// geometry synchronized. Non-owning: SetVolumes/SetModel rebind it when
// the externals are swapped, and every operation is a no-op until both
// are live.
type Selection struct {
	volumes *model.VolumeList
	model   *model.Model

	mode  Mode
	typ   Type
	valid bool

	// list holds the selected volume indices, sorted, no duplicates.
	list []int
	// content maps object index to the set of selected instance indices.
	content map[int]map[int]bool

	// Drag snapshot: per-volume transform caches plus the shared pivot,
	// populated by StartDragging and read by every transform op.
	snapshot       map[int]volumeCache
	draggingCenter mgl64.Vec3

	box      geom.BoundingBox
	boxDirty bool

	// onClearFields invalidates externally cached numeric-field displays.
	onClearFields func()

	verify bool
}

// New returns an unbound selection (Instance mode, Empty type).
func New() *Selection {
	return &Selection{
		mode:     Instance,
		typ:      Empty,
		content:  make(map[int]map[int]bool),
		boxDirty: true,
	}
}

// SetVolumes rebinds the selection to a volume list. Pass the live list
// pointer owned by the viewport; the selection never copies it.
func (s *Selection) SetVolumes(volumes *model.VolumeList) {
	s.volumes = volumes
	s.updateValid()
}

// SetModel rebinds the selection to the hierarchical model.
func (s *Selection) SetModel(m *model.Model) {
	s.model = m
	s.updateValid()
}

// SetOnClearFields registers the callback invoked by Clear so external
// numeric-field caches can be invalidated.
func (s *Selection) SetOnClearFields(fn func()) {
	s.onClearFields = fn
}

// SetVerify enables debug verification of the cross-instance rotation
// invariant after synchronization. Violations panic; leave this off
// outside tests.
func (s *Selection) SetVerify(on bool) {
	s.verify = on
}

// Valid reports whether the selection is bound to a live list and model.
func (s *Selection) Valid() bool { return s.valid }

// GetMode returns the current selection mode.
func (s *Selection) GetMode() Mode { return s.mode }

// SetMode sets the selection mode. Mutators may override it based on the
// kind of volume being selected.
func (s *Selection) SetMode(mode Mode) { s.mode = mode }

// GetType returns the derived selection classification.
func (s *Selection) GetType() Type { return s.typ }

func (s *Selection) updateValid() {
	s.valid = s.volumes != nil && s.model != nil
}

// Indices returns the selected volume indices in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, len(s.list))
	copy(out, s.list)
	return out
}

// Contains reports whether the volume index is selected.
func (s *Selection) Contains(volumeIdx int) bool {
	i := sort.SearchInts(s.list, volumeIdx)
	return i < len(s.list) && s.list[i] == volumeIdx
}

// Add selects the volume at volumeIdx. Selecting a modifier part forces
// Volume mode; selecting a non-modifier that is not yet selected forces
// Instance mode. The wipe tower is mutually exclusive with everything
// else, and modifier/non-modifier volumes never coexist: crossing either
// boundary clears the previous selection first, as does exclusive=true.
// In Volume mode the volume is only added when it belongs to the same
// instance as the current selection; in Instance mode every volume of
// the same (object, instance) pair is added.
func (s *Selection) Add(volumeIdx int, exclusive bool) {
	if !s.valid || volumeIdx < 0 || volumeIdx >= len(*s.volumes) {
		return
	}

	v := (*s.volumes)[volumeIdx]
	if s.IsWipeTower() && v.WipeTower {
		return
	}

	needsReset := exclusive
	needsReset = needsReset || v.WipeTower
	needsReset = needsReset || (s.IsWipeTower() && !v.WipeTower)
	needsReset = needsReset || (!s.IsAnyModifier() && v.Modifier)
	needsReset = needsReset || (s.IsAnyModifier() && !v.Modifier)
	if needsReset {
		s.Clear()
	}

	if v.Modifier {
		s.mode = Volume
	} else if !s.Contains(volumeIdx) {
		s.mode = Instance
	}

	switch s.mode {
	case Volume:
		if v.PartIdx >= 0 && (s.IsEmpty() || v.InstanceIdx == s.InstanceIdx()) {
			s.selectVolume(volumeIdx)
		}
	case Instance:
		s.selectInstance(v.ObjectIdx, v.InstanceIdx)
	}

	s.updateType()
	s.boxDirty = true
}

// Remove deselects the volume at volumeIdx. In Instance mode this removes
// every volume of the same (object, instance) pair.
func (s *Selection) Remove(volumeIdx int) {
	if !s.valid || volumeIdx < 0 || volumeIdx >= len(*s.volumes) {
		return
	}

	v := (*s.volumes)[volumeIdx]
	switch s.mode {
	case Volume:
		s.deselectVolume(volumeIdx)
	case Instance:
		s.deselectInstance(v.ObjectIdx, v.InstanceIdx)
	}

	s.updateType()
	s.boxDirty = true
}

// AddObject selects every volume of the object and forces Instance mode.
func (s *Selection) AddObject(objectIdx int, exclusive bool) {
	if !s.valid {
		return
	}
	if exclusive {
		s.Clear()
	}
	s.mode = Instance
	for i, v := range *s.volumes {
		if v.ObjectIdx == objectIdx {
			s.selectVolume(i)
		}
	}
	s.updateType()
	s.boxDirty = true
}

// RemoveObject deselects every volume of the object.
func (s *Selection) RemoveObject(objectIdx int) {
	if !s.valid {
		return
	}
	for i, v := range *s.volumes {
		if v.ObjectIdx == objectIdx {
			s.deselectVolume(i)
		}
	}
	s.updateType()
	s.boxDirty = true
}

// AddInstance selects every volume of one instance and forces Instance mode.
func (s *Selection) AddInstance(objectIdx, instanceIdx int, exclusive bool) {
	if !s.valid {
		return
	}
	if exclusive {
		s.Clear()
	}
	s.mode = Instance
	s.selectInstance(objectIdx, instanceIdx)
	s.updateType()
	s.boxDirty = true
}

// RemoveInstance deselects every volume of one instance.
func (s *Selection) RemoveInstance(objectIdx, instanceIdx int) {
	if !s.valid {
		return
	}
	s.deselectInstance(objectIdx, instanceIdx)
	s.updateType()
	s.boxDirty = true
}

// AddPart selects a part across instances and forces Volume mode.
// instanceIdx restricts the selection to one instance; pass -1 to select
// the part in every instance.
func (s *Selection) AddPart(objectIdx, partIdx, instanceIdx int, exclusive bool) {
	if !s.valid {
		return
	}
	if exclusive {
		s.Clear()
	}
	s.mode = Volume
	for i, v := range *s.volumes {
		if v.ObjectIdx == objectIdx && v.PartIdx == partIdx {
			if instanceIdx == -1 || v.InstanceIdx == instanceIdx {
				s.selectVolume(i)
			}
		}
	}
	s.updateType()
	s.boxDirty = true
}

// RemovePart deselects a part in every instance.
func (s *Selection) RemovePart(objectIdx, partIdx int) {
	if !s.valid {
		return
	}
	for i, v := range *s.volumes {
		if v.ObjectIdx == objectIdx && v.PartIdx == partIdx {
			s.deselectVolume(i)
		}
	}
	s.updateType()
	s.boxDirty = true
}

// AddAll selects every volume except the wipe tower and forces Instance mode.
func (s *Selection) AddAll() {
	if !s.valid {
		return
	}
	s.mode = Instance
	s.Clear()
	for i, v := range *s.volumes {
		if !v.WipeTower {
			s.selectVolume(i)
		}
	}
	s.updateType()
	s.boxDirty = true
}

// Clear deselects everything and notifies the numeric-field cache.
func (s *Selection) Clear() {
	if !s.valid {
		return
	}
	for _, i := range s.list {
		(*s.volumes)[i].Selected = false
	}
	s.list = s.list[:0]
	s.updateType()
	s.boxDirty = true

	if s.onClearFields != nil {
		s.onClearFields()
	}
}

// VolumesChanged remaps the selection after the volume list was rebuilt.
// oldToNew maps old indices to new ones; entries of -1 drop out. In
// Instance mode, volumes newly added to a previously selected
// (object, instance) pair are selected too, so instance selection stays
// consistent when parts are added or removed.
func (s *Selection) VolumesChanged(oldToNew []int) {
	if !s.valid {
		return
	}

	var listNew []int
	type objInst struct{ obj, inst int }
	instances := make(map[objInst]bool)
	for _, idx := range s.list {
		if idx >= len(oldToNew) || oldToNew[idx] < 0 {
			continue
		}
		newIdx := oldToNew[idx]
		listNew = append(listNew, newIdx)
		if s.mode == Instance {
			v := (*s.volumes)[newIdx]
			instances[objInst{v.ObjectIdx, v.InstanceIdx}] = true
		}
	}
	sort.Ints(listNew)
	s.list = listNew

	if len(instances) > 0 {
		for i, v := range *s.volumes {
			if instances[objInst{v.ObjectIdx, v.InstanceIdx}] {
				s.selectVolume(i)
			}
		}
	}

	s.updateType()
	s.boxDirty = true
}

// StartDragging snapshots every volume's transforms and the selection's
// bounding-box center as the shared pivot. Call once at drag start; every
// transform op during the drag reads this snapshot.
func (s *Selection) StartDragging() {
	if !s.valid {
		return
	}
	s.snapshot = make(map[int]volumeCache, len(*s.volumes))
	for i, v := range *s.volumes {
		s.snapshot[i] = volumeCache{
			part:     newTransformCache(v.Part),
			instance: newTransformCache(v.Instance),
		}
	}
	s.draggingCenter = s.BoundingBox().Center()
}

// BoundingBox returns the cumulative world-space box of the selected
// volumes' transformed convex hulls, recomputing it when stale.
func (s *Selection) BoundingBox() geom.BoundingBox {
	if s.boxDirty {
		s.box = geom.BoundingBox{}
		if s.valid {
			for _, i := range s.list {
				s.box.Merge((*s.volumes)[i].TransformedHullBox())
			}
		}
		s.boxDirty = false
	}
	return s.box
}

// Volume returns the volume at the index, or nil when unbound or out of
// range.
func (s *Selection) Volume(volumeIdx int) *model.Volume {
	if !s.valid || volumeIdx < 0 || volumeIdx >= len(*s.volumes) {
		return nil
	}
	return (*s.volumes)[volumeIdx]
}

// selectVolume inserts the index keeping the list sorted and flags the volume.
func (s *Selection) selectVolume(volumeIdx int) {
	i := sort.SearchInts(s.list, volumeIdx)
	if i < len(s.list) && s.list[i] == volumeIdx {
		return
	}
	s.list = append(s.list, 0)
	copy(s.list[i+1:], s.list[i:])
	s.list[i] = volumeIdx
	(*s.volumes)[volumeIdx].Selected = true
}

func (s *Selection) deselectVolume(volumeIdx int) {
	i := sort.SearchInts(s.list, volumeIdx)
	if i >= len(s.list) || s.list[i] != volumeIdx {
		return
	}
	s.list = append(s.list[:i], s.list[i+1:]...)
	(*s.volumes)[volumeIdx].Selected = false
}

func (s *Selection) selectInstance(objectIdx, instanceIdx int) {
	for i, v := range *s.volumes {
		if v.ObjectIdx == objectIdx && v.InstanceIdx == instanceIdx {
			s.selectVolume(i)
		}
	}
}

func (s *Selection) deselectInstance(objectIdx, instanceIdx int) {
	for i, v := range *s.volumes {
		if v.ObjectIdx == objectIdx && v.InstanceIdx == instanceIdx {
			s.deselectVolume(i)
		}
	}
}
