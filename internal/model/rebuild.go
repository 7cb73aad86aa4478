package model

// CompactVolumes removes the volumes covered by the deletion requests
// and re-points the survivors at the shifted object/instance/part
// indices. It returns the new list and the old-to-new index map (-1 for
// removed entries) to hand to the selection's remap.
//
// Call it with the same items passed to Model.ApplyDelete so the render
// list and the object table stay in step.
func CompactVolumes(volumes VolumeList, items []DeleteItem) (VolumeList, []int) {
	type objInst struct{ obj, inst int }
	type objPart struct{ obj, part int }

	deadObjects := make(map[int]bool)
	deadInstances := make(map[objInst]bool)
	deadParts := make(map[objPart]bool)
	for _, item := range items {
		switch item.Kind {
		case DeleteObject:
			deadObjects[item.ObjectIdx] = true
		case DeleteInstance:
			deadInstances[objInst{item.ObjectIdx, item.SubIdx}] = true
		case DeletePart:
			deadParts[objPart{item.ObjectIdx, item.SubIdx}] = true
		}
	}

	removed := func(v *Volume) bool {
		if deadObjects[v.ObjectIdx] {
			return true
		}
		if deadInstances[objInst{v.ObjectIdx, v.InstanceIdx}] {
			return true
		}
		return v.PartIdx >= 0 && deadParts[objPart{v.ObjectIdx, v.PartIdx}]
	}

	// Index shifts for the survivors. Auxiliary volumes keep their
	// reserved indices.
	objectShift := func(idx int) int {
		if idx >= AuxObjectIdx {
			return idx
		}
		shift := 0
		for dead := range deadObjects {
			if dead < idx {
				shift++
			}
		}
		return idx - shift
	}
	instanceShift := func(obj, idx int) int {
		shift := 0
		for dead := range deadInstances {
			if dead.obj == obj && dead.inst < idx {
				shift++
			}
		}
		return idx - shift
	}
	partShift := func(obj, idx int) int {
		if idx < 0 {
			return idx
		}
		shift := 0
		for dead := range deadParts {
			if dead.obj == obj && dead.part < idx {
				shift++
			}
		}
		return idx - shift
	}

	oldToNew := make([]int, len(volumes))
	var out VolumeList
	for i, v := range volumes {
		if removed(v) {
			oldToNew[i] = -1
			continue
		}
		oldToNew[i] = len(out)
		v.InstanceIdx = instanceShift(v.ObjectIdx, v.InstanceIdx)
		v.PartIdx = partShift(v.ObjectIdx, v.PartIdx)
		v.ObjectIdx = objectShift(v.ObjectIdx)
		out = append(out, v)
	}
	return out, oldToNew
}
