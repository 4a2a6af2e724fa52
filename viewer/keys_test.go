package viewer

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/floorcal"
)

// keySet is a fixed keyboard state for one frame.
type keySet struct {
	just map[ebiten.Key]bool
	held map[ebiten.Key]bool
}

func (k keySet) JustPressed(key ebiten.Key) bool { return k.just[key] }
func (k keySet) Pressed(key ebiten.Key) bool     { return k.held[key] }

func tapped(keys ...ebiten.Key) keySet {
	k := keySet{just: map[ebiten.Key]bool{}, held: map[ebiten.Key]bool{}}
	for _, key := range keys {
		k.just[key] = true
	}
	return k
}

func holding(keys ...ebiten.Key) keySet {
	k := keySet{just: map[ebiten.Key]bool{}, held: map[ebiten.Key]bool{}}
	for _, key := range keys {
		k.held[key] = true
	}
	return k
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name string
		keys keySet
		want floorcal.Vec2
	}{
		{"none", holding(), floorcal.Vec2{}},
		{"right", holding(ebiten.KeyArrowRight), floorcal.Vec2{X: nudgeStep}},
		{"left down", holding(ebiten.KeyArrowLeft, ebiten.KeyArrowDown), floorcal.Vec2{X: -nudgeStep, Y: -nudgeStep}},
		{"fine up", holding(ebiten.KeyShift, ebiten.KeyArrowUp), floorcal.Vec2{Y: nudgeFineStep}},
		{"opposite cancel", holding(ebiten.KeyArrowLeft, ebiten.KeyArrowRight), floorcal.Vec2{}},
	}
	for _, tt := range tests {
		if got := nudge(tt.keys); got != tt.want {
			t.Errorf("%s: nudge = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHandleKeysNudgesWorld(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.SetWorld(floorcal.Vec2{})
	v.handleKeys(holding(ebiten.KeyArrowRight))
	v.handleKeys(holding(ebiten.KeyShift, ebiten.KeyArrowUp))
	assertVec(t, "World", v.World(), floorcal.Vec2{X: 0.25, Y: 0.01}, 1e-12)
	assertVec(t, "panel", v.panel.world(), v.World(), 1e-12)
}

func TestHandleKeysPreset(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.handleKeys(tapped(ebiten.Key1))
	if v.tween == nil {
		t.Fatal("preset key did not start a tween")
	}
	assertVec(t, "tween target", v.tween.to, floorcal.Vec2{X: 56.2, Y: 6.23}, 1e-12)

	// Only one preset is configured.
	v.tween = nil
	v.handleKeys(tapped(ebiten.Key2))
	if v.tween != nil {
		t.Error("key 2 started a tween without a second preset")
	}
}

func TestHandleKeysReset(t *testing.T) {
	cfg := floorcal.DefaultConfig()
	v := newTestViewer(t, cfg)
	v.SetWorld(floorcal.Vec2{X: 3, Y: 4})
	v.view.ZoomAt(floorcal.Vec2{X: 100, Y: 100}, 2)

	v.handleKeys(tapped(ebiten.KeyR))
	if v.World() != cfg.World {
		t.Errorf("World = %v, want %v", v.World(), cfg.World)
	}
	if !v.view.Animating() {
		t.Error("view reset not started")
	}
}

func TestHandleKeysVariantCycle(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	v.handleKeys(tapped(ebiten.KeyV))
	if got := v.Pipeline().Variant(); got != floorcal.VariantAffineScale {
		t.Errorf("Variant = %v, want affine-scale", got)
	}
}

func TestHandleKeysVariantCycleRejected(t *testing.T) {
	cfg := floorcal.DefaultConfig()
	cfg.MapSize = floorcal.Vec2{}
	v := newTestViewer(t, cfg)
	v.handleKeys(tapped(ebiten.KeyV))
	if got := v.Pipeline().Variant(); got != floorcal.VariantBounds {
		t.Errorf("Variant = %v, want bounds after a rejected switch", got)
	}
}

func TestHandleKeysToggles(t *testing.T) {
	v := newTestViewer(t, floorcal.DefaultConfig())
	fps := v.showFPS

	v.handleKeys(tapped(ebiten.KeyF, ebiten.KeyP))
	if v.showFPS == fps {
		t.Error("F did not toggle the FPS readout")
	}
	if len(v.screenshotQueue) != 1 || v.screenshotQueue[0] != "manual" {
		t.Errorf("queue = %v, want [manual]", v.screenshotQueue)
	}
	if v.quit {
		t.Error("quit set without Escape")
	}

	v.handleKeys(tapped(ebiten.KeyEscape))
	if !v.quit {
		t.Error("Escape did not quit")
	}
}
