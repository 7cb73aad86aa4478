package selection

import (
	"sort"

	"model-editor/internal/model"
)

// updateType rebuilds the object->instances membership cache and
// reclassifies the selection. Called after every mutation.
//
// Single-object selections are disambiguated by comparing the selected
// volume count against the object's part and instance counts; auxiliary
// volumes (negative part index) count toward the per-object volume total
// exactly like persisted parts. Multi-object selections collapse to
// MultipleFullObject only when every volume of every touched object is
// selected, otherwise they are Mixed.
//
// Side effect: strict single-instance shapes (single/multiple volume or
// modifier) set the Disabled flag on every volume outside that exact
// (object, instance) pair so the renderer can dim them; all other shapes
// clear the flag everywhere.
func (s *Selection) updateType() {
	s.content = make(map[int]map[int]bool)
	s.typ = Mixed

	for _, i := range s.list {
		v := (*s.volumes)[i]
		insts, ok := s.content[v.ObjectIdx]
		if !ok {
			insts = make(map[int]bool)
			s.content[v.ObjectIdx] = insts
		}
		insts[v.InstanceIdx] = true
	}

	requiresDisable := false

	if !s.valid {
		s.typ = Invalid
	} else if len(s.list) == 0 {
		s.typ = Empty
	} else if len(s.list) == 1 {
		first := (*s.volumes)[s.list[0]]
		switch {
		case first.WipeTower:
			s.typ = WipeTower
		case first.Modifier:
			s.typ = SingleModifier
			requiresDisable = true
		case first.ObjectIdx < 0 || first.ObjectIdx >= len(s.model.Objects):
			// Render-only volume with no model entry; stays Mixed.
		default:
			obj := s.model.Objects[first.ObjectIdx]
			switch {
			case obj.PartCount*obj.InstanceCount == 1:
				s.typ = SingleFullObject
				s.mode = Instance
			case obj.PartCount == 1: // more than one instance
				s.typ = SingleFullInstance
				s.mode = Instance
			default:
				s.typ = SingleVolume
				requiresDisable = true
			}
		}
	} else if len(s.content) == 1 {
		// Multiple volumes of a single object.
		objectIdx, insts := s.singleContentEntry()
		if objectIdx >= 0 && objectIdx < len(s.model.Objects) {
			obj := s.model.Objects[objectIdx]
			auxCount := 0
			for _, i := range s.list {
				if (*s.volumes)[i].PartIdx < 0 {
					auxCount++
				}
			}
			volumesCount := obj.PartCount + auxCount
			selectedInstances := len(insts)
			switch {
			case volumesCount*obj.InstanceCount == len(s.list):
				s.typ = SingleFullObject
				s.mode = Instance
			case selectedInstances == 1:
				if volumesCount == len(s.list) {
					s.typ = SingleFullInstance
					s.mode = Instance
				} else {
					modifiers := 0
					for _, i := range s.list {
						if (*s.volumes)[i].Modifier {
							modifiers++
						}
					}
					if modifiers == 0 {
						s.typ = MultipleVolume
						requiresDisable = true
					} else if modifiers == len(s.list) {
						s.typ = MultipleModifier
						requiresDisable = true
					}
				}
			case selectedInstances > 1 && selectedInstances*volumesCount == len(s.list):
				s.typ = MultipleFullInstance
				s.mode = Instance
			}
		}
	} else {
		total := 0
		for objectIdx := range s.content {
			if objectIdx < 0 || objectIdx >= len(s.model.Objects) {
				total = -1
				break
			}
			obj := s.model.Objects[objectIdx]
			total += obj.PartCount * obj.InstanceCount
		}
		if total == len(s.list) {
			s.typ = MultipleFullObject
			s.mode = Instance
		}
	}

	objectIdx := s.ObjectIdx()
	instanceIdx := s.InstanceIdx()
	for _, v := range *s.volumes {
		if requiresDisable {
			v.Disabled = v.ObjectIdx != objectIdx || v.InstanceIdx != instanceIdx
		} else {
			v.Disabled = false
		}
	}
}

// singleContentEntry returns the only (object, instances) entry of the
// membership cache. Valid only when len(s.content) == 1.
func (s *Selection) singleContentEntry() (int, map[int]bool) {
	for objectIdx, insts := range s.content {
		return objectIdx, insts
	}
	return -1, nil
}

// ContentObjects returns the object indices touched by the selection in
// ascending order.
func (s *Selection) ContentObjects() []int {
	out := make([]int, 0, len(s.content))
	for objectIdx := range s.content {
		out = append(out, objectIdx)
	}
	sort.Ints(out)
	return out
}

// ContentInstances returns the selected instance indices of one object in
// ascending order.
func (s *Selection) ContentInstances(objectIdx int) []int {
	out := make([]int, 0, len(s.content[objectIdx]))
	for instanceIdx := range s.content[objectIdx] {
		out = append(out, instanceIdx)
	}
	sort.Ints(out)
	return out
}

// ObjectIdx returns the object index when the selection touches exactly
// one object, -1 otherwise.
func (s *Selection) ObjectIdx() int {
	if len(s.content) == 1 {
		objectIdx, _ := s.singleContentEntry()
		return objectIdx
	}
	return -1
}

// InstanceIdx returns the instance index when the selection touches
// exactly one instance of exactly one object, -1 otherwise.
func (s *Selection) InstanceIdx() int {
	if len(s.content) == 1 {
		_, insts := s.singleContentEntry()
		if len(insts) == 1 {
			for instanceIdx := range insts {
				return instanceIdx
			}
		}
	}
	return -1
}

// IsEmpty reports an empty selection.
func (s *Selection) IsEmpty() bool { return s.typ == Empty }

// IsWipeTower reports the wipe tower pseudo-volume selection.
func (s *Selection) IsWipeTower() bool { return s.typ == WipeTower }

// IsAnyModifier reports a selection made purely of modifier parts.
func (s *Selection) IsAnyModifier() bool {
	return s.typ == SingleModifier || s.typ == MultipleModifier
}

// IsSingleModifier reports exactly one selected modifier part.
func (s *Selection) IsSingleModifier() bool { return s.typ == SingleModifier }

// IsMultipleModifier reports several selected modifier parts.
func (s *Selection) IsMultipleModifier() bool { return s.typ == MultipleModifier }

// IsSingleVolume reports exactly one selected non-modifier part.
func (s *Selection) IsSingleVolume() bool { return s.typ == SingleVolume }

// IsMultipleVolume reports several selected parts of one instance.
func (s *Selection) IsMultipleVolume() bool { return s.typ == MultipleVolume }

// IsSingleFullObject reports a selection covering one whole object.
func (s *Selection) IsSingleFullObject() bool { return s.typ == SingleFullObject }

// IsMultipleFullObject reports a selection covering several whole objects.
func (s *Selection) IsMultipleFullObject() bool { return s.typ == MultipleFullObject }

// IsMultipleFullInstance reports a selection covering several whole instances.
func (s *Selection) IsMultipleFullInstance() bool { return s.typ == MultipleFullInstance }

// IsMixed reports a selection spanning objects without covering them.
func (s *Selection) IsMixed() bool { return s.typ == Mixed }

// IsSingleFullInstance reports whether the selection covers exactly every
// part of one instance. Beyond the classified types this also recognizes
// a SingleFullObject with a determinate instance, and falls back to
// scanning the list so callers get a correct answer mid-mutation.
func (s *Selection) IsSingleFullInstance() bool {
	if s.typ == SingleFullInstance {
		return true
	}
	if s.typ == SingleFullObject {
		return s.InstanceIdx() != -1
	}
	if len(s.list) == 0 || !s.valid || len(*s.volumes) == 0 {
		return false
	}

	objectIdx := s.ObjectIdx()
	if objectIdx < 0 || objectIdx >= len(s.model.Objects) {
		return false
	}

	instanceIdx := (*s.volumes)[s.list[0]].InstanceIdx
	parts := make(map[int]bool)
	for _, i := range s.list {
		v := (*s.volumes)[i]
		if v.ObjectIdx != objectIdx || v.InstanceIdx != instanceIdx {
			return false
		}
		if v.PartIdx >= 0 {
			parts[v.PartIdx] = true
		}
	}
	return len(parts) == s.model.Objects[objectIdx].PartCount
}

// IsFromSingleObject reports whether every selected volume belongs to the
// same persisted (non-auxiliary) object.
func (s *Selection) IsFromSingleObject() bool {
	idx := s.ObjectIdx()
	return idx >= 0 && idx < model.AuxObjectIdx
}

// IsFromSingleInstance reports whether every selected volume belongs to
// the same instance.
func (s *Selection) IsFromSingleInstance() bool {
	return s.InstanceIdx() != -1
}

// RequiresUniformScale reports whether the selection shape only supports
// uniform scaling (anything but a lone instance, volume or modifier).
func (s *Selection) RequiresUniformScale() bool {
	return !(s.IsSingleFullInstance() || s.IsSingleModifier() || s.IsSingleVolume())
}

// RequiresLocalAxes reports whether manipulation hints should be drawn in
// the local frame: Volume mode within a single instance.
func (s *Selection) RequiresLocalAxes() bool {
	return s.mode == Volume && s.IsFromSingleInstance()
}
