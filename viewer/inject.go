package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/floorcal"
)

// syntheticPointer is a single injected left-button pointer event in screen
// coordinates.
type syntheticPointer struct {
	x, y    float64
	pressed bool
}

// pointerSample is one frame of pointer state, real or injected.
type pointerSample struct {
	pos         floorcal.Vec2
	pressed     bool // left button held
	justPressed bool // left button went down this frame
	panning     bool // right button held
}

// InjectPress queues a left-button press at the given screen coordinates.
// Injected events are consumed one per frame, before real mouse input.
func (v *Viewer) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointer{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointer{x: x, y: y, pressed: true})
}

// InjectRelease queues a button release at the given screen coordinates.
func (v *Viewer) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointer{x: x, y: y})
}

// InjectDrag queues a press at from, linearly interpolated moves, and a
// release at to. The sequence consumes frames frames; the minimum is 3.
func (v *Viewer) InjectDrag(from, to floorcal.Vec2, frames int) {
	if frames < 3 {
		frames = 3
	}
	v.InjectPress(from.X, from.Y)
	steps := frames - 3
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	// Hold at the target for one frame so the slider reads the final value.
	v.InjectMove(to.X, to.Y)
	v.InjectRelease(to.X, to.Y)
}

// Injecting reports whether synthetic events are still queued.
func (v *Viewer) Injecting() bool { return len(v.injectQueue) > 0 }

// readPointer pops one injected event if any, otherwise samples the mouse.
func (v *Viewer) readPointer() pointerSample {
	if len(v.injectQueue) > 0 {
		evt := v.injectQueue[0]
		copy(v.injectQueue, v.injectQueue[1:])
		v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

		s := pointerSample{
			pos:         floorcal.Vec2{X: evt.x, Y: evt.y},
			pressed:     evt.pressed,
			justPressed: evt.pressed && !v.injectPressed,
		}
		v.injectPressed = evt.pressed
		return s
	}

	mx, my := ebiten.CursorPosition()
	return pointerSample{
		pos:         floorcal.Vec2{X: float64(mx), Y: float64(my)},
		pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		justPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		panning:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
}
