package selection

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/geom"
)

// Hint colors. Axis order X, Y, Z.
var (
	selectionBoxColor    = [3]float32{1, 1, 1}
	synchronizedBoxColor = [3]float32{1, 1, 0}
	axesColor            = [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	uniformScaleColor    = [3]float32{1, 0.38, 0}
)

// Line is one world-space line segment.
type Line struct {
	From, To mgl64.Vec3
}

// LineSet groups same-colored line segments for the renderer.
type LineSet struct {
	Lines []Line
	Color [3]float32
}

// ArrowKind distinguishes the two sidebar hint glyphs.
type ArrowKind int

const (
	// StraightArrow marks position and scale fields.
	StraightArrow ArrowKind = iota
	// CurvedArrow marks rotation fields.
	CurvedArrow
)

// Arrow is one sidebar hint glyph, placed by a full world transform.
type Arrow struct {
	Kind      ArrowKind
	Transform mgl64.Mat4
	Color     [3]float32
}

// BoxCornerLines returns the corner-tick wireframe of a box: three short
// segments per corner, each a fifth of the box extent along its edge.
func BoxCornerLines(box geom.BoundingBox) []Line {
	if !box.Defined {
		return nil
	}
	size := box.Size().Mul(0.2)
	lines := make([]Line, 0, 24)
	for _, x := range [2]float64{box.Min[0], box.Max[0]} {
		for _, y := range [2]float64{box.Min[1], box.Max[1]} {
			for _, z := range [2]float64{box.Min[2], box.Max[2]} {
				corner := mgl64.Vec3{x, y, z}
				for axis := 0; axis < 3; axis++ {
					tick := corner
					if corner[axis] == box.Min[axis] {
						tick[axis] += size[axis]
					} else {
						tick[axis] -= size[axis]
					}
					lines = append(lines, Line{From: corner, To: tick})
				}
			}
		}
	}
	return lines
}

// BoxHints returns the wireframes to draw for the current selection: the
// cumulative white box of the selected volumes and, in Volume mode, a
// yellow box around every unselected volume kept in lock-step by the
// synchronization engine.
func (s *Selection) BoxHints() []LineSet {
	if !s.valid || s.IsEmpty() {
		return nil
	}

	sets := []LineSet{{Lines: BoxCornerLines(s.BoundingBox()), Color: selectionBoxColor}}

	if s.mode == Instance {
		return sets
	}
	var synced []Line
	for _, i := range s.list {
		volume := (*s.volumes)[i]
		for j, v := range *s.volumes {
			if j == i || v.ObjectIdx != volume.ObjectIdx || v.PartIdx != volume.PartIdx {
				continue
			}
			synced = append(synced, BoxCornerLines(v.TransformedHullBox())...)
		}
	}
	if len(synced) > 0 {
		sets = append(sets, LineSet{Lines: synced, Color: synchronizedBoxColor})
	}
	return sets
}

// FieldHints returns the arrow glyphs to draw while a numeric sidebar
// field is hovered. field names the group and axis ("position_x",
// "rotation_z", "scale_y", "size_z"); uniformScaling mirrors the sidebar
// uniform-scale lock. Arrows sit at the selection center, oriented by the
// instance (and, for a lone part, the part) rotation so they track the
// entity's own axes.
func (s *Selection) FieldHints(field string, uniformScaling bool) []Arrow {
	if !s.valid || s.IsEmpty() || field == "" {
		return nil
	}

	center := s.BoundingBox().Center()
	base := mgl64.Translate3D(center[0], center[1], center[2])

	first := (*s.volumes)[s.list[0]]
	switch {
	case s.IsSingleFullInstance():
		if !strings.HasPrefix(field, "position") {
			base = base.Mul4(first.Instance.RotationMatrix())
		}
	case s.IsSingleVolume() || s.IsSingleModifier():
		orient := first.Instance.RotationMatrix()
		if !strings.HasPrefix(field, "position") {
			orient = orient.Mul4(first.Part.RotationMatrix())
		}
		base = base.Mul4(orient)
	default:
		if s.RequiresLocalAxes() {
			base = base.Mul4(first.Instance.RotationMatrix())
		}
	}

	switch {
	case strings.HasPrefix(field, "position"):
		return positionHints(field, base)
	case strings.HasPrefix(field, "rotation"):
		return rotationHints(field, base)
	case strings.HasPrefix(field, "scale"), strings.HasPrefix(field, "size"):
		return s.scaleHints(field, base, uniformScaling)
	}
	return nil
}

func positionHints(field string, base mgl64.Mat4) []Arrow {
	switch {
	case strings.HasSuffix(field, "x"):
		return []Arrow{{Kind: StraightArrow, Transform: base.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(-90))), Color: axesColor[0]}}
	case strings.HasSuffix(field, "y"):
		return []Arrow{{Kind: StraightArrow, Transform: base, Color: axesColor[1]}}
	case strings.HasSuffix(field, "z"):
		return []Arrow{{Kind: StraightArrow, Transform: base.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(90))), Color: axesColor[2]}}
	}
	return nil
}

func rotationHints(field string, base mgl64.Mat4) []Arrow {
	var m mgl64.Mat4
	var color [3]float32
	switch {
	case strings.HasSuffix(field, "x"):
		m = base.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(90)))
		color = axesColor[0]
	case strings.HasSuffix(field, "y"):
		m = base.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(-90)))
		color = axesColor[1]
	case strings.HasSuffix(field, "z"):
		m = base
		color = axesColor[2]
	default:
		return nil
	}
	// Two curved arrows, half a turn apart.
	return []Arrow{
		{Kind: CurvedArrow, Transform: m, Color: color},
		{Kind: CurvedArrow, Transform: m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(180))), Color: color},
	}
}

func (s *Selection) scaleHints(field string, base mgl64.Mat4, uniformScaling bool) []Arrow {
	uniform := s.RequiresUniformScale() || uniformScaling
	color := func(axis int) [3]float32 {
		if uniform {
			return uniformScaleColor
		}
		return axesColor[axis]
	}

	var arrows []Arrow
	appendAxis := func(m mgl64.Mat4, axis int) {
		// Opposing arrow pair along the axis.
		out := m.Mul4(mgl64.Translate3D(0, 5, 0))
		in := m.Mul4(mgl64.Translate3D(0, -5, 0)).Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(180)))
		arrows = append(arrows,
			Arrow{Kind: StraightArrow, Transform: out, Color: color(axis)},
			Arrow{Kind: StraightArrow, Transform: in, Color: color(axis)},
		)
	}

	if strings.HasSuffix(field, "x") || uniform {
		appendAxis(base.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(-90))), 0)
	}
	if strings.HasSuffix(field, "y") || uniform {
		appendAxis(base, 1)
	}
	if strings.HasSuffix(field, "z") || uniform {
		appendAxis(base.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(90))), 2)
	}
	return arrows
}
