package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/floorcal"
)

func newTestViewer(t *testing.T, cfg floorcal.Config) *Viewer {
	t.Helper()
	v, err := New(Options{
		Config: cfg,
		Texture: &Texture{
			Image: ebiten.NewImage(16, 16),
			Size:  floorcal.TextureSize{Width: 800, Height: 600},
		},
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v.Layout(800, 600)
	return v
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := floorcal.DefaultConfig()
	cfg.Bounds.X = floorcal.Range{Min: 1, Max: 1}
	_, err := New(Options{Config: cfg})
	if !errors.Is(err, floorcal.ErrDegenerateBounds) {
		t.Errorf("err = %v, want ErrDegenerateBounds", err)
	}
}

func TestNewStartsAtConfiguredWorld(t *testing.T) {
	cfg := floorcal.DefaultConfig()
	v := newTestViewer(t, cfg)
	if v.World() != cfg.World {
		t.Errorf("World = %v, want %v", v.World(), cfg.World)
	}
	if v.panel.world() != cfg.World {
		t.Errorf("panel world = %v, want %v", v.panel.world(), cfg.World)
	}
	if v.screenshotDir == "" {
		t.Error("screenshot dir not set")
	}
}

func TestTextureDrawScale(t *testing.T) {
	tex := &Texture{
		Image: ebiten.NewImage(100, 50),
		Size:  scaledSize(100, 50, 0.5),
	}
	if tex.Size != (floorcal.TextureSize{Width: 50, Height: 25}) {
		t.Errorf("Size = %v, want 50x25", tex.Size)
	}
	sx, sy := tex.drawScale()
	if sx != 0.5 || sy != 0.5 {
		t.Errorf("drawScale = (%f,%f), want (0.5,0.5)", sx, sy)
	}
}

func TestLoadTextureRejectsScale(t *testing.T) {
	_, err := LoadTexture("missing.png", 0)
	if !errors.Is(err, floorcal.ErrBadTextureScale) {
		t.Errorf("err = %v, want ErrBadTextureScale", err)
	}
	if _, err := LoadTexture("missing.png", 1); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestDiagnostics(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	d := v.Diagnostics()

	assertVec(t, "Normalized", d.Normalized, floorcal.Vec2{X: 1, Y: 1}, 1e-9)
	assertVec(t, "Pixel", d.Pixel, floorcal.Vec2{X: 800, Y: 600}, 1e-6)
	// Viewport equals the texture size, so the screen origin is the
	// texture origin.
	assertVec(t, "TexturePos", d.TexturePos, floorcal.Vec2{}, 1e-9)
	assertVec(t, "CursorNorm", d.CursorNorm, floorcal.Vec2{}, 1e-9)
	assertVec(t, "CursorWorld", d.CursorWorld, floorcal.Vec2{X: -66.5, Y: 67.4}, 1e-9)

	lines := d.Lines()
	if len(lines) != 10 {
		t.Fatalf("lines = %d, want 10", len(lines))
	}
	want := []string{
		"Boiler Position: 79.00, -64.50",
		"Position Normalized: 1.00, 1.00",
		"Position Pixels: 800.00, 600.00",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if lines[6] != "Display size: 800.00, 600.00" {
		t.Errorf("display line = %q", lines[6])
	}
	if lines[8] != "Variant: bounds" {
		t.Errorf("variant line = %q", lines[8])
	}
	wantCal := "Calibration: factory-1st-floor (" + floorcal.DefaultConfig().Fingerprint() + ")"
	if lines[9] != wantCal {
		t.Errorf("calibration line = %q, want %q", lines[9], wantCal)
	}
}

func TestDiagnosticsFingerprintFollowsVariant(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	before := v.Diagnostics().Fingerprint
	if err := v.SetVariant(floorcal.VariantAffineBounds); err != nil {
		t.Fatalf("SetVariant: %v", err)
	}
	after := v.Diagnostics().Fingerprint
	if after == before {
		t.Error("fingerprint unchanged after a variant switch")
	}
	if want := v.Pipeline().Config().Fingerprint(); after != want {
		t.Errorf("fingerprint = %s, want %s", after, want)
	}
}

func TestTrackedLinesIgnoreCursor(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	before := v.Diagnostics().trackedLines()
	v.cursor = floorcal.Vec2{X: 321, Y: 123}
	after := v.Diagnostics().trackedLines()
	if strings.Join(before, "|") != strings.Join(after, "|") {
		t.Error("tracked lines changed with the cursor")
	}
	v.SetWorld(floorcal.Vec2{})
	if strings.Join(before, "|") == strings.Join(v.Diagnostics().trackedLines(), "|") {
		t.Error("tracked lines did not change with the world point")
	}
}

func TestSetVariant(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	if err := v.SetVariant(floorcal.VariantAffineScale); err != nil {
		t.Fatalf("SetVariant: %v", err)
	}
	if v.Pipeline().Variant() != floorcal.VariantAffineScale {
		t.Errorf("Variant = %v, want affine-scale", v.Pipeline().Variant())
	}
}

func TestSetVariantRejectedKeepsCurrent(t *testing.T) {
	cfg := floorcal.DefaultConfig()
	cfg.MapSize = floorcal.Vec2{}
	v := newTestViewer(t, cfg)
	err := v.SetVariant(floorcal.VariantAffineScale)
	if !errors.Is(err, floorcal.ErrZeroMapSize) {
		t.Errorf("err = %v, want ErrZeroMapSize", err)
	}
	if v.Pipeline().Variant() != floorcal.VariantBounds {
		t.Errorf("Variant = %v, want bounds", v.Pipeline().Variant())
	}
}

func TestTweenWorld(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	target := floorcal.Vec2{X: 56.2, Y: 6.23}
	v.TweenWorld(target, 0)
	if v.World() != target || v.tween != nil {
		t.Errorf("zero-duration tween: World = %v, tween = %v", v.World(), v.tween)
	}

	v.TweenWorld(floorcal.Vec2{}, 0.5)
	if v.tween == nil {
		t.Fatal("tween not started")
	}
	v.SetWorld(target)
	if v.tween != nil {
		t.Error("SetWorld did not cancel the tween")
	}
}

func TestHandlePointerDragsSlider(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.SetWorld(floorcal.Vec2{X: 0, Y: 0})
	from := v.panel.sliderCenter(0, 0)
	to := v.panel.sliderCenter(0, 30)
	v.InjectDrag(from, to, 5)
	for v.Injecting() {
		v.handlePointer(v.readPointer())
	}
	if !approxEqual(v.World().X, 30, 1e-9) {
		t.Errorf("World.X = %f, want 30", v.World().X)
	}
	if v.World().Y != 0 {
		t.Errorf("World.Y = %f, want 0", v.World().Y)
	}
}

func TestHandlePointerPansOutsidePanel(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	before := v.view.TextureToScreen(floorcal.Vec2{})
	v.handlePointer(pointerSample{pos: floorcal.Vec2{X: 600, Y: 500}, panning: true})
	v.handlePointer(pointerSample{pos: floorcal.Vec2{X: 620, Y: 490}, panning: true})
	v.handlePointer(pointerSample{pos: floorcal.Vec2{X: 620, Y: 490}})
	after := v.view.TextureToScreen(floorcal.Vec2{})
	assertVec(t, "pan", after.Sub(before), floorcal.Vec2{X: 20, Y: -10}, 1e-9)
}

func TestInjectDragFrames(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.InjectDrag(floorcal.Vec2{}, floorcal.Vec2{X: 10}, 5)
	// press, 3 moves (2 interpolated + hold), release
	if len(v.injectQueue) != 5 {
		t.Fatalf("queue = %d, want 5", len(v.injectQueue))
	}
	first := v.readPointer()
	if !first.pressed || !first.justPressed {
		t.Errorf("first sample = %+v, want a fresh press", first)
	}
	second := v.readPointer()
	if !second.pressed || second.justPressed {
		t.Errorf("second sample = %+v, want a held move", second)
	}
	for v.Injecting() {
		last := v.readPointer()
		if !v.Injecting() && last.pressed {
			t.Error("last sample should release")
		}
	}
}

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		cal, variant, label, want string
	}{
		{"factory-1st-floor", "bounds", "manual", "s_factory-1st-floor_bounds_manual.png"},
		{"Second Floor", "affine-scale", "after click/1", "s_second-floor_affine-scale_after-click-1.png"},
		{"factory", "bounds", "  ", "s_factory_bounds_unlabeled.png"},
		{"", "bounds", "boiler-0.5", "s_unlabeled_bounds_boiler-0.5.png"},
		{"café", "bounds", "x", "s_caf_bounds_x.png"},
	}
	for _, tt := range tests {
		if got := screenshotName("s", tt.cal, tt.variant, tt.label); got != tt.want {
			t.Errorf("screenshotName(%q, %q, %q) = %q, want %q", tt.cal, tt.variant, tt.label, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.Screenshot("one")
	v.Screenshot("two")
	if len(v.screenshotQueue) != 2 || v.screenshotQueue[1] != "two" {
		t.Errorf("queue = %v", v.screenshotQueue)
	}
}

func TestQuit(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.Quit()
	if !v.quit {
		t.Error("quit not set")
	}
}
