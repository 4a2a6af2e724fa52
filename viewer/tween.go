package viewer

import (
	"github.com/phanxgames/floorcal"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// defaultTweenSeconds is how long a preset jump takes.
const defaultTweenSeconds = 0.6

// pointTween animates the world point between two positions.
type pointTween struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	to     floorcal.Vec2
}

func newPointTween(from, to floorcal.Vec2, duration float32, easeFn ease.TweenFunc) *pointTween {
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	return &pointTween{
		tweenX: gween.New(float32(from.X), float32(to.X), duration, easeFn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), duration, easeFn),
		to:     to,
	}
}

// update advances both axes by dt seconds and returns the current position.
// Once both axes finish the exact target is returned, since the tweens run
// in float32.
func (t *pointTween) update(dt float32) (floorcal.Vec2, bool) {
	var p floorcal.Vec2
	if !t.doneX {
		val, done := t.tweenX.Update(dt)
		p.X = float64(val)
		t.doneX = done
	} else {
		p.X = t.to.X
	}
	if !t.doneY {
		val, done := t.tweenY.Update(dt)
		p.Y = float64(val)
		t.doneY = done
	} else {
		p.Y = t.to.Y
	}
	if t.doneX && t.doneY {
		return t.to, true
	}
	return p, false
}
