package selection

// TransformKind packs the three orthogonal flags that refine how a
// transform delta is interpreted: world vs local frame, relative vs
// absolute value, joint (rigid body around the shared drag pivot) vs
// independent per entity. The zero value is world + absolute + joint.
type TransformKind uint8

const (
	flagLocal TransformKind = 1 << iota
	flagRelative
	flagIndependent
)

// Common combinations, named by frame-value-grouping.
const (
	WorldAbsoluteJoint       TransformKind = 0
	WorldRelativeJoint       TransformKind = flagRelative
	LocalAbsoluteJoint       TransformKind = flagLocal
	LocalRelativeJoint       TransformKind = flagLocal | flagRelative
	WorldRelativeIndependent TransformKind = flagRelative | flagIndependent
	LocalAbsoluteIndependent TransformKind = flagLocal | flagIndependent
)

// Local reports whether the delta is given in the entity's own frame.
func (k TransformKind) Local() bool { return k&flagLocal != 0 }

// World reports whether the delta is given in world coordinates.
func (k TransformKind) World() bool { return !k.Local() }

// Relative reports whether the delta composes onto the current value.
func (k TransformKind) Relative() bool { return k&flagRelative != 0 }

// Absolute reports whether the delta replaces the current value.
func (k TransformKind) Absolute() bool { return !k.Relative() }

// Independent reports whether each entity transforms in place.
func (k TransformKind) Independent() bool { return k&flagIndependent != 0 }

// Joint reports whether the selection moves as one rigid body around the
// shared dragging center.
func (k TransformKind) Joint() bool { return !k.Independent() }
