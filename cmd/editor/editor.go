package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"model-editor/internal/editorconfig"
	"model-editor/internal/geom"
	"model-editor/internal/logger"
	"model-editor/internal/model"
	"model-editor/internal/render"
	"model-editor/internal/sceneio"
	"model-editor/internal/selection"
	"model-editor/internal/ui"
)

const (
	moveStep   = 5.0
	rotateStep = 15.0 * math.Pi / 180.0
	scaleStep  = 1.25
)

// editor wires the scene, the selection engine, the viewport and the
// sidebar together and translates keyboard input into operations.
type editor struct {
	prefs   editorconfig.EditorPrefs
	log     *logger.Logger
	mdl     *model.Model
	volumes model.VolumeList
	sel     *selection.Selection
	view    *render.Viewport
	sidebar *ui.Sidebar

	// dragging is true while an armed transform key is held, so the
	// snapshot is taken once per gesture.
	dragging bool
}

func newEditor(scenePath string, prefs editorconfig.EditorPrefs, log *logger.Logger) (*editor, error) {
	mdl, volumes, err := sceneio.Load(scenePath)
	if err != nil {
		return nil, err
	}

	ed := &editor{
		prefs:   prefs,
		log:     log,
		mdl:     mdl,
		volumes: volumes,
		sel:     selection.New(),
		view:    render.New(),
		sidebar: ui.New(),
	}
	ed.sel.SetModel(mdl)
	ed.sel.SetVolumes(&ed.volumes)
	ed.view.GridVisible = prefs.GridVisible
	log.Logf("loaded %s: %d objects, %d volumes", scenePath, len(mdl.Objects), len(volumes))
	return ed, nil
}

// Update handles one frame of input: camera, sidebar hover, selection
// mutation and transforms.
func (ed *editor) Update() {
	ed.view.Update()
	ed.sidebar.Update(ed.sel)
	ed.handleSelectionKeys()
	ed.handleTransformKeys()
}

// Draw renders the viewport, then the hint arrows for the hovered
// sidebar field, then the 2D overlay.
func (ed *editor) Draw() {
	ed.view.Draw(ed.volumes, ed.sel)
	if ed.prefs.ShowHints {
		ed.drawFieldHints()
	}
	ed.sidebar.Draw(ed.sel)
	if ed.prefs.ShowFPS {
		rl.DrawFPS(10, 10)
	}
}

func (ed *editor) handleSelectionKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		ed.sel.Clear()
	case rl.IsKeyPressed(rl.KeyA) && rl.IsKeyDown(rl.KeyLeftControl):
		ed.sel.AddAll()
		ed.log.Log("select all")
	case rl.IsKeyPressed(rl.KeyTab):
		if ed.sel.GetMode() == selection.Instance {
			ed.sel.SetMode(selection.Volume)
		} else {
			ed.sel.SetMode(selection.Instance)
		}
	case rl.IsKeyPressed(rl.KeyG):
		ed.prefs.GridVisible = !ed.prefs.GridVisible
		ed.view.SetGridVisible(ed.prefs.GridVisible)
	case rl.IsKeyPressed(rl.KeyH):
		ed.prefs.ShowHints = !ed.prefs.ShowHints
	case rl.IsKeyPressed(rl.KeyDelete):
		ed.eraseSelection()
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		ed.pickVolume()
	}
}

// handleTransformKeys maps held keys to drag gestures. The snapshot is
// taken on the first transform of a gesture and dropped when every
// transform key is released.
func (ed *editor) handleTransformKeys() {
	if ed.sel.IsEmpty() {
		ed.dragging = false
		return
	}

	displacement := mgl64.Vec3{}
	if rl.IsKeyDown(rl.KeyRight) {
		displacement[0] += moveStep
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		displacement[0] -= moveStep
	}
	if rl.IsKeyDown(rl.KeyUp) {
		displacement[1] += moveStep
	}
	if rl.IsKeyDown(rl.KeyDown) {
		displacement[1] -= moveStep
	}

	shift := rl.IsKeyDown(rl.KeyLeftShift)

	switch {
	case displacement != (mgl64.Vec3{}):
		ed.startGesture()
		ed.sel.Translate(displacement, false)
		ed.endGesture()
	case rl.IsKeyPressed(rl.KeyR):
		angle := rotateStep
		if shift {
			angle = -angle
		}
		ed.startGesture()
		ed.sel.Rotate(mgl64.Vec3{0, 0, angle}, selection.WorldRelativeJoint)
		ed.endGesture()
		ed.log.Logf("rotate z %.3f", angle)
	case rl.IsKeyPressed(rl.KeyS):
		factor := scaleStep
		if shift {
			factor = 1 / factor
		}
		ed.startGesture()
		ed.sel.Scale(mgl64.Vec3{factor, factor, factor}, false)
		ed.endGesture()
		ed.log.Logf("scale %.3f", factor)
	case rl.IsKeyPressed(rl.KeyM):
		ed.sel.Mirror(geom.X)
		ed.log.Log("mirror x")
	default:
		ed.dragging = false
	}
}

// startGesture snapshots the transforms once per gesture.
func (ed *editor) startGesture() {
	if !ed.dragging {
		ed.sel.StartDragging()
		ed.dragging = true
	}
}

// endGesture closes single-shot gestures (rotate, scale) so the next
// press starts from the new state. Held translation keeps the snapshot.
func (ed *editor) endGesture() {
	if !rl.IsKeyDown(rl.KeyRight) && !rl.IsKeyDown(rl.KeyLeft) &&
		!rl.IsKeyDown(rl.KeyUp) && !rl.IsKeyDown(rl.KeyDown) {
		ed.dragging = false
	}
}

// pickVolume ray-casts against the transformed hull boxes and mutates
// the selection. Ctrl keeps the existing selection.
func (ed *editor) pickVolume() {
	mouse := rl.GetMousePosition()
	if int(mouse.X) >= rl.GetScreenWidth()-ui.PanelWidth && !ed.sel.IsEmpty() {
		return // over the sidebar
	}
	ray := rl.GetScreenToWorldRay(mouse, ed.view.Camera)

	best := -1
	bestDist := float32(0)
	for i, v := range ed.volumes {
		box := v.TransformedHullBox()
		if !box.Defined {
			continue
		}
		hit := rl.GetRayCollisionBox(ray, rl.NewBoundingBox(
			rl.NewVector3(float32(box.Min[0]), float32(box.Min[1]), float32(box.Min[2])),
			rl.NewVector3(float32(box.Max[0]), float32(box.Max[1]), float32(box.Max[2])),
		))
		if hit.Hit && (best == -1 || hit.Distance < bestDist) {
			best = i
			bestDist = hit.Distance
		}
	}

	exclusive := !rl.IsKeyDown(rl.KeyLeftControl)
	if best == -1 {
		if exclusive {
			ed.sel.Clear()
		}
		return
	}
	if !exclusive && ed.sel.Contains(best) {
		ed.sel.Remove(best)
		return
	}
	ed.sel.Add(best, exclusive)
	ed.log.Logf("select volume %d (%s)", best, ed.sel.GetType())
}

// eraseSelection turns the selection into deletion requests and applies
// them to the model and the render list.
func (ed *editor) eraseSelection() {
	items := ed.sel.Erase()
	if len(items) == 0 {
		return
	}
	ed.sel.Clear()
	ed.mdl.ApplyDelete(items)
	newVolumes, oldToNew := model.CompactVolumes(ed.volumes, items)
	ed.volumes = newVolumes
	ed.sel.SetVolumes(&ed.volumes)
	ed.sel.VolumesChanged(oldToNew)
	ed.log.Logf("deleted %d item(s), %d volumes left", len(items), len(ed.volumes))
}

// drawFieldHints draws the arrow glyphs for the hovered sidebar field in
// the 3D viewport.
func (ed *editor) drawFieldHints() {
	arrows := ed.sel.FieldHints(ed.sidebar.HoveredField(), ed.prefs.UniformScaling)
	if len(arrows) == 0 {
		return
	}
	rl.BeginMode3D(ed.view.Camera)
	for _, arrow := range arrows {
		drawArrow(arrow)
	}
	rl.EndMode3D()
}

// drawArrow renders one hint glyph with plain line segments: a stem with
// a head for straight arrows, a three-segment arc with a head for curved
// ones. Shapes live in the glyph's local frame (stem along +Y) and go
// through the arrow transform.
func drawArrow(arrow selection.Arrow) {
	color := rl.NewColor(
		uint8(arrow.Color[0]*255),
		uint8(arrow.Color[1]*255),
		uint8(arrow.Color[2]*255),
		255,
	)

	segment := func(a, b mgl64.Vec3) {
		wa := geom.TransformPoint(arrow.Transform, a)
		wb := geom.TransformPoint(arrow.Transform, b)
		rl.DrawLine3D(
			rl.NewVector3(float32(wa[0]), float32(wa[1]), float32(wa[2])),
			rl.NewVector3(float32(wb[0]), float32(wb[1]), float32(wb[2])),
			color,
		)
	}

	switch arrow.Kind {
	case selection.StraightArrow:
		segment(mgl64.Vec3{}, mgl64.Vec3{0, 10, 0})
		segment(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{-2, 7, 0})
		segment(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{2, 7, 0})
	case selection.CurvedArrow:
		segment(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{8, 6, 0})
		segment(mgl64.Vec3{8, 6, 0}, mgl64.Vec3{4, 9, 0})
		segment(mgl64.Vec3{4, 9, 0}, mgl64.Vec3{0, 10, 0})
		segment(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 7, 0})
		segment(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{3, 10, 0})
	}
}
