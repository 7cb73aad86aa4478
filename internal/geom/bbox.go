package geom

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox is a world- or local-space axis-aligned box. The zero value
// is the empty box; Defined turns true once a point or box is merged in.
type BoundingBox struct {
	Min, Max mgl64.Vec3
	Defined  bool
}

// NewBoundingBox returns the box spanning the two corners.
func NewBoundingBox(min, max mgl64.Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max, Defined: true}
}

// MergePoint grows the box to contain the point.
func (b *BoundingBox) MergePoint(p mgl64.Vec3) {
	if !b.Defined {
		b.Min, b.Max = p, p
		b.Defined = true
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Merge grows the box to contain the other box.
func (b *BoundingBox) Merge(other BoundingBox) {
	if !other.Defined {
		return
	}
	b.MergePoint(other.Min)
	b.MergePoint(other.Max)
}

// Center returns the box midpoint.
func (b BoundingBox) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents.
func (b BoundingBox) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transformed returns the axis-aligned box enclosing this box after
// transforming its eight corners.
func (b BoundingBox) Transformed(m mgl64.Mat4) BoundingBox {
	if !b.Defined {
		return BoundingBox{}
	}
	var out BoundingBox
	for _, x := range [2]float64{b.Min[0], b.Max[0]} {
		for _, y := range [2]float64{b.Min[1], b.Max[1]} {
			for _, z := range [2]float64{b.Min[2], b.Max[2]} {
				out.MergePoint(TransformPoint(m, mgl64.Vec3{x, y, z}))
			}
		}
	}
	return out
}
