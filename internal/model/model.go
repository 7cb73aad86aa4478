package model

import "sort"

// Object is one entry of the hierarchical model: a set of parts shared by
// a set of placed instances. The selection core only needs the counts.
type Object struct {
	Name          string
	PartCount     int
	InstanceCount int
}

// Model is the hierarchical object/instance/part collaborator. The
// selection never mutates it directly; deletion is requested through
// DeleteItem lists and applied here.
type Model struct {
	Objects []*Object
}

// DeleteKind classifies a deletion request.
type DeleteKind int

const (
	// DeleteObject removes a whole object with every instance and part.
	DeleteObject DeleteKind = iota
	// DeleteInstance removes one placed instance of an object.
	DeleteInstance
	// DeletePart removes one part from every instance of an object.
	DeletePart
)

// DeleteItem is one deletion request against the model. SubIdx is the
// instance index for DeleteInstance, the part index for DeletePart, and
// unused for DeleteObject.
type DeleteItem struct {
	Kind      DeleteKind
	ObjectIdx int
	SubIdx    int
}

// ApplyDelete executes deletion requests against the object table.
// Object removals are applied last and in descending index order so the
// indices carried by the remaining items stay valid.
func (m *Model) ApplyDelete(items []DeleteItem) {
	var objects []int
	for _, item := range items {
		switch item.Kind {
		case DeleteObject:
			objects = append(objects, item.ObjectIdx)
		case DeleteInstance:
			if o := m.object(item.ObjectIdx); o != nil && o.InstanceCount > 0 {
				o.InstanceCount--
			}
		case DeletePart:
			if o := m.object(item.ObjectIdx); o != nil && o.PartCount > 0 {
				o.PartCount--
			}
		}
	}
	sort.Ints(objects)
	for i := len(objects) - 1; i >= 0; i-- {
		idx := objects[i]
		if idx >= 0 && idx < len(m.Objects) {
			m.Objects = append(m.Objects[:idx], m.Objects[idx+1:]...)
		}
	}
}

func (m *Model) object(idx int) *Object {
	if idx < 0 || idx >= len(m.Objects) {
		return nil
	}
	return m.Objects[idx]
}
