// Package ui draws the editor's 2D overlay: a right-side panel with the
// selection's numeric fields. Hovering a field row is reported back so
// the viewport can draw the matching manipulation hints.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/selection"
)

// PanelWidth is the sidebar width in pixels; the viewport uses it to
// keep picking clicks off the panel.
const PanelWidth = 300

const (
	rowHeight   = 26
	textSize    = 18
	panelMargin = 10
)

// fieldRows lists the sidebar rows in draw order. The names double as
// the field keys handed to the selection's hint producer.
var fieldRows = []string{
	"position_x", "position_y", "position_z",
	"rotation_x", "rotation_y", "rotation_z",
	"scale_x", "scale_y", "scale_z",
}

// Sidebar is the right-side numeric panel.
type Sidebar struct {
	hovered string
}

// New returns an empty sidebar.
func New() *Sidebar {
	return &Sidebar{}
}

// HoveredField returns the field key under the mouse, or "".
func (sb *Sidebar) HoveredField() string {
	return sb.hovered
}

// Update tracks which field row the mouse is over. Call once per frame
// before Draw.
func (sb *Sidebar) Update(sel *selection.Selection) {
	sb.hovered = ""
	if sel.IsEmpty() {
		return
	}
	mouse := rl.GetMousePosition()
	left := float32(rl.GetScreenWidth() - PanelWidth)
	if mouse.X < left {
		return
	}
	for i := range fieldRows {
		top := float32(panelMargin + (i+2)*rowHeight)
		if mouse.Y >= top && mouse.Y < top+rowHeight {
			sb.hovered = fieldRows[i]
			return
		}
	}
}

// Draw renders the panel: selection summary on top, then one row per
// field with the values of the first selected volume. The hovered row is
// tinted.
func (sb *Sidebar) Draw(sel *selection.Selection) {
	if sel.IsEmpty() {
		return
	}

	left := int32(rl.GetScreenWidth() - PanelWidth)
	height := int32(rl.GetScreenHeight())
	rl.DrawRectangle(left, 0, PanelWidth, height, rl.NewColor(20, 20, 20, 230))

	x := left + panelMargin
	rl.DrawText(sel.GetType().String(), x, panelMargin, textSize, rl.RayWhite)

	indices := sel.Indices()
	if len(indices) == 0 {
		return
	}
	v := sel.Volume(indices[0])
	if v == nil {
		return
	}

	var offset, rotation, scale mgl64.Vec3
	if sel.GetMode() == selection.Volume && !sel.IsSingleFullInstance() {
		offset, rotation, scale = v.Part.Offset, v.Part.Rotation, v.Part.Scale
	} else {
		offset, rotation, scale = v.Instance.Offset, v.Instance.Rotation, v.Instance.Scale
	}
	values := []float64{
		offset[0], offset[1], offset[2],
		rotation[0], rotation[1], rotation[2],
		scale[0], scale[1], scale[2],
	}

	for i, field := range fieldRows {
		y := int32(panelMargin + (i+2)*rowHeight)
		color := rl.Gray
		if field == sb.hovered {
			color = rl.Yellow
		}
		rl.DrawText(fmt.Sprintf("%-10s %8.3f", field, values[i]), x, y, textSize, color)
	}
}
