// Package render draws the edited scene with raylib: the bed grid, the
// volumes as wire hulls, and the selection hint primitives produced by
// the selection package. Geometry comes in as float64 world data and is
// narrowed to float32 only at the draw calls.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/model"
	"model-editor/internal/selection"
)

const (
	gridExtent     = 100
	gridMinorStep  = 10
	gridMajorStep  = 50
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Viewport holds the 3D camera and draws the editable scene. Update runs
// camera logic (free camera); Draw renders between BeginMode3D and
// EndMode3D. The bed lies in the XY plane with Z up.
type Viewport struct {
	Camera      rl.Camera3D
	GridVisible bool
}

// New returns a viewport with a perspective camera looking at the bed
// center from above and aside. Grid is visible by default.
func New() *Viewport {
	v := &Viewport{}
	v.Camera.Position = rl.NewVector3(120, -120, 120)
	v.Camera.Target = rl.NewVector3(0, 0, 0)
	v.Camera.Up = rl.NewVector3(0, 0, 1)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	v.GridVisible = true
	return v
}

// SetGridVisible sets whether the bed grid is drawn.
func (v *Viewport) SetGridVisible(visible bool) {
	v.GridVisible = visible
}

// Update runs once per frame. Uses raylib UpdateCamera with CameraFree
// so the user can orbit, zoom and pan.
func (v *Viewport) Update() {
	rl.UpdateCamera(&v.Camera, rl.CameraFree)
}

// Draw renders the scene: bed grid, volume hulls, then the selection
// boxes. Call after ClearBackground and before any 2D overlay.
func (v *Viewport) Draw(volumes model.VolumeList, sel *selection.Selection) {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawBedGrid()
	}
	for _, volume := range volumes {
		drawVolume(volume)
	}
	for _, set := range sel.BoxHints() {
		drawLineSet(set)
	}
	rl.EndMode3D()
}

// drawVolume draws the volume's transformed hull as a wire box. Color
// encodes state: dimmed gray when disabled, orange for modifiers, light
// gray otherwise. The selection box itself is drawn by the hint pass.
func drawVolume(v *model.Volume) {
	color := rl.NewColor(200, 200, 200, 255)
	if v.Modifier {
		color = rl.NewColor(255, 165, 0, 255)
	}
	if v.Disabled {
		color = rl.NewColor(90, 90, 90, 255)
	}

	box := v.TransformedHullBox()
	if !box.Defined {
		return
	}
	center := box.Center()
	size := box.Size()
	rl.DrawCubeWires(
		vec3(center),
		float32(size[0]), float32(size[1]), float32(size[2]),
		color,
	)
}

func drawLineSet(set selection.LineSet) {
	color := rl.NewColor(
		uint8(set.Color[0]*255),
		uint8(set.Color[1]*255),
		uint8(set.Color[2]*255),
		255,
	)
	for _, line := range set.Lines {
		rl.DrawLine3D(vec3(line.From), vec3(line.To), color)
	}
}

// drawBedGrid draws the bed grid on the XY plane (Z=0) with major/minor
// lines and axis lines through the origin.
func drawBedGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), float32(-gridExtent), 0
		end.X, end.Y, end.Z = float32(x), float32(gridExtent), 0
		rl.DrawLine3D(start, end, c)
	}
	for y := -gridExtent; y <= gridExtent; y += gridMinorStep {
		c := major
		if y%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), float32(y), 0
		end.X, end.Y, end.Z = float32(gridExtent), float32(y), 0
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, 0
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}
