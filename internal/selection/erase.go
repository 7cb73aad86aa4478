package selection

import (
	"sort"

	"model-editor/internal/model"
)

// Erase maps the current selection to the coarsest deletion requests the
// external model can honor: whole objects when everything of an object is
// covered, whole instances, or single parts. The caller applies the
// returned items (see model.ApplyDelete). Auxiliary volumes never appear
// in the requests. Items come back deduplicated and in deterministic
// order.
func (s *Selection) Erase() []model.DeleteItem {
	if !s.valid {
		return nil
	}

	switch {
	case s.IsSingleFullObject():
		return []model.DeleteItem{{Kind: model.DeleteObject, ObjectIdx: s.ObjectIdx()}}

	case s.IsMultipleFullObject():
		var items []model.DeleteItem
		for _, objectIdx := range s.ContentObjects() {
			items = append(items, model.DeleteItem{Kind: model.DeleteObject, ObjectIdx: objectIdx})
		}
		return items

	case s.IsMultipleFullInstance():
		var items []model.DeleteItem
		for _, objectIdx := range s.ContentObjects() {
			for _, instanceIdx := range s.ContentInstances(objectIdx) {
				items = append(items, model.DeleteItem{Kind: model.DeleteInstance, ObjectIdx: objectIdx, SubIdx: instanceIdx})
			}
		}
		return items

	case s.IsSingleFullInstance():
		return []model.DeleteItem{{Kind: model.DeleteInstance, ObjectIdx: s.ObjectIdx(), SubIdx: s.InstanceIdx()}}

	case s.IsMixed():
		return s.eraseMixed()

	default:
		// A plain part selection: delete each distinct (object, part).
		type objPart struct{ obj, part int }
		pairs := make(map[objPart]bool)
		for _, i := range s.list {
			v := (*s.volumes)[i]
			if v.IsAux() || v.PartIdx < 0 {
				continue
			}
			pairs[objPart{v.ObjectIdx, v.PartIdx}] = true
		}
		items := make([]model.DeleteItem, 0, len(pairs))
		for pair := range pairs {
			items = append(items, model.DeleteItem{Kind: model.DeletePart, ObjectIdx: pair.obj, SubIdx: pair.part})
		}
		sortItems(items)
		return items
	}
}

// eraseMixed promotes each selected volume individually: to a whole
// object when it is the object's only instance and only part, to a part
// deletion when every instance of it is selected, or to an instance
// deletion otherwise. A final pass collapses "every part of an object
// deleted" into a single whole-object request.
func (s *Selection) eraseMixed() []model.DeleteItem {
	itemsSet := make(map[model.DeleteItem]bool)
	partsInObj := make(map[int]int)

	for _, i := range s.list {
		v := (*s.volumes)[i]
		if v.IsAux() || v.PartIdx < 0 {
			continue
		}
		objectIdx := v.ObjectIdx
		if objectIdx >= len(s.model.Objects) {
			continue
		}
		obj := s.model.Objects[objectIdx]

		if obj.InstanceCount == 1 {
			if obj.PartCount == 1 {
				itemsSet[model.DeleteItem{Kind: model.DeleteObject, ObjectIdx: objectIdx, SubIdx: -1}] = true
			} else {
				item := model.DeleteItem{Kind: model.DeletePart, ObjectIdx: objectIdx, SubIdx: v.PartIdx}
				if !itemsSet[item] {
					itemsSet[item] = true
					partsInObj[objectIdx]++
				}
			}
			continue
		}

		if insts, ok := s.content[objectIdx]; ok && insts[v.InstanceIdx] {
			if len(insts) == obj.InstanceCount {
				itemsSet[model.DeleteItem{Kind: model.DeletePart, ObjectIdx: objectIdx, SubIdx: v.PartIdx}] = true
			} else {
				itemsSet[model.DeleteItem{Kind: model.DeleteInstance, ObjectIdx: objectIdx, SubIdx: v.InstanceIdx}] = true
			}
		}
	}

	ordered := make([]model.DeleteItem, 0, len(itemsSet))
	for item := range itemsSet {
		ordered = append(ordered, item)
	}
	sortItems(ordered)

	var items []model.DeleteItem
	for _, item := range ordered {
		if item.Kind == model.DeletePart {
			cnt := partsInObj[item.ObjectIdx]
			if cnt == s.model.Objects[item.ObjectIdx].PartCount {
				// Every part of the object is going away; emit one object
				// deletion once, on the last part in order.
				if item.SubIdx == cnt-1 {
					items = append(items, model.DeleteItem{Kind: model.DeleteObject, ObjectIdx: item.ObjectIdx})
				}
				continue
			}
		}
		items = append(items, item)
	}
	return items
}

func sortItems(items []model.DeleteItem) {
	sort.Slice(items, func(a, b int) bool {
		if items[a].Kind != items[b].Kind {
			return items[a].Kind < items[b].Kind
		}
		if items[a].ObjectIdx != items[b].ObjectIdx {
			return items[a].ObjectIdx < items[b].ObjectIdx
		}
		return items[a].SubIdx < items[b].SubIdx
	})
}
