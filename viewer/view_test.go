package viewer

import (
	"math"
	"testing"

	"github.com/phanxgames/floorcal"
	"github.com/tanema/gween/ease"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertVec(t *testing.T, name string, got, want floorcal.Vec2, eps float64) {
	t.Helper()
	if !approxEqual(got.X, want.X, eps) || !approxEqual(got.Y, want.Y, eps) {
		t.Errorf("%s = (%f,%f), want (%f,%f)", name, got.X, got.Y, want.X, want.Y)
	}
}

func newTestView() *View {
	v := NewView(floorcal.TextureSize{Width: 800, Height: 600})
	v.SetViewport(1000, 800)
	return v
}

func TestViewCentersTexture(t *testing.T) {
	v := newTestView()
	assertVec(t, "origin", v.TextureToScreen(floorcal.Vec2{}), floorcal.Vec2{X: 100, Y: 100}, epsilon)
	assertVec(t, "center", v.TextureToScreen(floorcal.Vec2{X: 400, Y: 300}), floorcal.Vec2{X: 500, Y: 400}, epsilon)
}

func TestViewViewportResize(t *testing.T) {
	v := newTestView()
	v.TextureToScreen(floorcal.Vec2{})
	v.SetViewport(800, 600)
	assertVec(t, "origin", v.TextureToScreen(floorcal.Vec2{}), floorcal.Vec2{}, epsilon)
	if got := v.Viewport(); got != (floorcal.Vec2{X: 800, Y: 600}) {
		t.Errorf("Viewport = %v, want 800x600", got)
	}
}

func TestViewScreenToTextureRoundTrip(t *testing.T) {
	v := newTestView()
	v.ZoomAt(floorcal.Vec2{X: 320, Y: 240}, 2.5)
	v.PanBy(-37, 12)
	p := floorcal.Vec2{X: 123.4, Y: 567.8}
	assertVec(t, "round trip", v.ScreenToTexture(v.TextureToScreen(p)), p, 1e-6)
}

func TestViewPanBy(t *testing.T) {
	v := newTestView()
	v.PanBy(15, -5)
	assertVec(t, "origin", v.TextureToScreen(floorcal.Vec2{}), floorcal.Vec2{X: 115, Y: 95}, epsilon)
}

func TestViewZoomAtKeepsAnchor(t *testing.T) {
	v := newTestView()
	anchor := floorcal.Vec2{X: 100, Y: 100}
	before := v.ScreenToTexture(anchor)
	v.ZoomAt(anchor, 2)
	if !approxEqual(v.Zoom, 2, epsilon) {
		t.Errorf("Zoom = %f, want 2", v.Zoom)
	}
	assertVec(t, "anchor", v.TextureToScreen(before), anchor, 1e-6)

	// One texture pixel now spans two screen pixels.
	a := v.TextureToScreen(floorcal.Vec2{X: 10, Y: 10})
	b := v.TextureToScreen(floorcal.Vec2{X: 11, Y: 10})
	if !approxEqual(b.X-a.X, 2, 1e-6) {
		t.Errorf("screen distance = %f, want 2", b.X-a.X)
	}
}

func TestViewZoomClamped(t *testing.T) {
	v := newTestView()
	v.ZoomAt(floorcal.Vec2{}, 1000)
	if v.Zoom != maxZoom {
		t.Errorf("Zoom = %f, want %f", v.Zoom, float64(maxZoom))
	}
	v.ZoomAt(floorcal.Vec2{}, 1e-6)
	if v.Zoom != minZoom {
		t.Errorf("Zoom = %f, want %f", v.Zoom, minZoom)
	}
}

func TestViewAnimateReset(t *testing.T) {
	v := newTestView()
	v.ZoomAt(floorcal.Vec2{X: 10, Y: 10}, 3)
	v.AnimateReset(0.5)
	if !v.Animating() {
		t.Fatal("Animating = false after AnimateReset")
	}
	v.update(0.25)
	if v.Zoom == 1 || v.Zoom == 3 {
		t.Errorf("Zoom = %f mid-tween, want between 1 and 3", v.Zoom)
	}
	for range 4 {
		v.update(0.25)
	}
	if v.Animating() {
		t.Error("Animating = true after tween finished")
	}
	if v.Zoom != 1 || v.Pan != (floorcal.Vec2{}) {
		t.Errorf("Zoom=%f Pan=%v, want 1 and zero", v.Zoom, v.Pan)
	}
}

func TestViewAnimateResetImmediate(t *testing.T) {
	v := newTestView()
	v.PanBy(50, 50)
	v.AnimateReset(0)
	if v.Animating() {
		t.Error("Animating = true after zero-duration reset")
	}
	assertVec(t, "origin", v.TextureToScreen(floorcal.Vec2{}), floorcal.Vec2{X: 100, Y: 100}, epsilon)
}

func TestViewPanCancelsReset(t *testing.T) {
	v := newTestView()
	v.PanBy(50, 0)
	v.AnimateReset(1)
	v.PanBy(1, 0)
	if v.Animating() {
		t.Error("PanBy should cancel the reset tween")
	}
}

func TestViewGeoMMatchesMatrix(t *testing.T) {
	v := newTestView()
	v.ZoomAt(floorcal.Vec2{X: 200, Y: 300}, 1.5)
	g := v.GeoM()
	p := floorcal.Vec2{X: 42, Y: 17}
	gx, gy := g.Apply(p.X, p.Y)
	assertVec(t, "GeoM", floorcal.Vec2{X: gx, Y: gy}, v.TextureToScreen(p), 1e-6)
}

func TestPointTween(t *testing.T) {
	tw := newPointTween(floorcal.Vec2{}, floorcal.Vec2{X: 10, Y: -4}, 1, ease.InOutQuad)
	p, done := tw.update(0.5)
	if done {
		t.Fatal("done after half the duration")
	}
	assertVec(t, "midpoint", p, floorcal.Vec2{X: 5, Y: -2}, 1e-4)

	p, done = tw.update(0.6)
	if !done {
		t.Fatal("not done after full duration")
	}
	if p != (floorcal.Vec2{X: 10, Y: -4}) {
		t.Errorf("final = %v, want exact target", p)
	}
}

func TestPointTweenDefaultEase(t *testing.T) {
	tw := newPointTween(floorcal.Vec2{X: 1, Y: 1}, floorcal.Vec2{X: 3, Y: 3}, 0.2, nil)
	if _, done := tw.update(1); !done {
		t.Error("not done after overshooting the duration")
	}
}
