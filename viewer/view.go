package viewer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/floorcal"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minZoom = 0.1
	maxZoom = 16
)

// resetAnim holds the active tweens that bring the view back to its
// default framing.
type resetAnim struct {
	zoom *gween.Tween
	panX *gween.Tween
	panY *gween.Tween
}

// View maps texture pixels onto the screen. At zoom 1 with no pan the
// texture is centered in the viewport.
type View struct {
	// Zoom is the scale factor (1.0 = texture pixels are screen pixels).
	Zoom float64
	// Pan is a screen-space offset applied after centering.
	Pan floorcal.Vec2

	viewport floorcal.Vec2
	texture  floorcal.Vec2

	matrix    floorcal.Matrix
	invMatrix floorcal.Matrix
	dirty     bool

	reset *resetAnim
}

// NewView creates a view for a texture of the given size.
func NewView(tex floorcal.TextureSize) *View {
	return &View{
		Zoom:    1,
		texture: tex.Vec2(),
		dirty:   true,
	}
}

// SetViewport updates the screen size the texture is centered in.
func (v *View) SetViewport(w, h float64) {
	if v.viewport.X != w || v.viewport.Y != h {
		v.viewport = floorcal.Vec2{X: w, Y: h}
		v.dirty = true
	}
}

// Viewport returns the current screen size.
func (v *View) Viewport() floorcal.Vec2 { return v.viewport }

// PanBy moves the texture by a screen-space delta.
func (v *View) PanBy(dx, dy float64) {
	v.Pan.X += dx
	v.Pan.Y += dy
	v.reset = nil
	v.dirty = true
}

// ZoomAt multiplies the zoom by factor while keeping the texture point under
// the screen position anchor fixed.
func (v *View) ZoomAt(anchor floorcal.Vec2, factor float64) {
	before := v.ScreenToTexture(anchor)
	v.Zoom = math.Max(minZoom, math.Min(v.Zoom*factor, maxZoom))
	v.reset = nil
	v.dirty = true
	after := v.TextureToScreen(before)
	v.PanBy(anchor.X-after.X, anchor.Y-after.Y)
}

// AnimateReset tweens zoom back to 1 and pan back to zero over duration
// seconds. A zero duration resets immediately.
func (v *View) AnimateReset(duration float32) {
	if duration <= 0 {
		v.Zoom, v.Pan = 1, floorcal.Vec2{}
		v.reset = nil
		v.dirty = true
		return
	}
	v.reset = &resetAnim{
		zoom: gween.New(float32(v.Zoom), 1, duration, ease.OutCubic),
		panX: gween.New(float32(v.Pan.X), 0, duration, ease.OutCubic),
		panY: gween.New(float32(v.Pan.Y), 0, duration, ease.OutCubic),
	}
}

// Animating reports whether a reset tween is in progress.
func (v *View) Animating() bool { return v.reset != nil }

// update advances the reset tween. Called once per tick.
func (v *View) update(dt float32) {
	if v.reset == nil {
		return
	}
	z, doneZ := v.reset.zoom.Update(dt)
	x, doneX := v.reset.panX.Update(dt)
	y, doneY := v.reset.panY.Update(dt)
	v.Zoom = float64(z)
	v.Pan = floorcal.Vec2{X: float64(x), Y: float64(y)}
	v.dirty = true
	if doneZ && doneX && doneY {
		v.Zoom, v.Pan = 1, floorcal.Vec2{}
		v.reset = nil
	}
}

// Matrix returns the texture-to-screen matrix.
//
//	Translate(viewport/2 + Pan) * Scale(Zoom) * Translate(-texture/2)
func (v *View) Matrix() floorcal.Matrix {
	if !v.dirty {
		return v.matrix
	}
	v.dirty = false

	center := v.viewport.Scale(0.5).Add(v.Pan)
	v.matrix = floorcal.Translate(center.X, center.Y).
		Mul(floorcal.Scale(v.Zoom, v.Zoom)).
		Mul(floorcal.Translate(-v.texture.X/2, -v.texture.Y/2))
	v.invMatrix = v.matrix.Invert()
	return v.matrix
}

// TextureToScreen converts a texture pixel to screen coordinates.
func (v *View) TextureToScreen(p floorcal.Vec2) floorcal.Vec2 {
	return v.Matrix().Apply(p)
}

// ScreenToTexture converts screen coordinates to a texture pixel.
func (v *View) ScreenToTexture(p floorcal.Vec2) floorcal.Vec2 {
	v.Matrix()
	return v.invMatrix.Apply(p)
}

// GeoM returns the texture-to-screen matrix for ebiten draw options.
func (v *View) GeoM() ebiten.GeoM {
	return geoM(v.Matrix())
}

func geoM(m floorcal.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
