package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/floorcal"
)

// hitRect is an axis-aligned screen rectangle.
type hitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. Points on the
// edge are considered inside.
func (r hitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

var (
	sliderTrack = color.RGBA{0x29, 0x4a, 0x7a, 0xff}
	sliderKnob  = color.RGBA{0x42, 0x96, 0xfa, 0xff}
	sliderDrag  = color.RGBA{0x6b, 0xb0, 0xff, 0xff}
	panelBG     = color.RGBA{0x0f, 0x0f, 0x0f, 0xf0}
)

const (
	knobWidth = 10
)

// Slider edits one float between Range.Min (left end) and Range.Max (right
// end). The endpoints may be in either order.
type Slider struct {
	Label string
	Range floorcal.Range
	Value float64
	Track hitRect

	dragging bool
}

// valueAt maps a screen x coordinate on the track to a clamped value.
func (s *Slider) valueAt(x float64) float64 {
	v := floorcal.Remap(x, s.Track.X, s.Track.X+s.Track.Width, s.Range.Min, s.Range.Max)
	return s.Range.Clamp(v)
}

// knobX returns the screen x of the knob center. Values outside the range
// pin the knob to the nearest end.
func (s *Slider) knobX() float64 {
	v := s.Range.Clamp(s.Value)
	return floorcal.Remap(v, s.Range.Min, s.Range.Max, s.Track.X, s.Track.X+s.Track.Width)
}

// Dragging reports whether the slider currently owns the pointer.
func (s *Slider) Dragging() bool { return s.dragging }

// pointer feeds one frame of pointer state and reports whether Value changed.
// A press that starts on the track captures the pointer until release.
func (s *Slider) pointer(x float64, pressed bool) bool {
	if !pressed {
		s.dragging = false
		return false
	}
	if !s.dragging {
		return false
	}
	v := s.valueAt(x)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// press starts a drag if (x, y) is on the track.
func (s *Slider) press(x, y float64) bool {
	if !s.Track.Contains(x, y) {
		return false
	}
	s.dragging = true
	return true
}

func (s *Slider) draw(screen *ebiten.Image) {
	t := s.Track
	vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(t.Width), float32(t.Height), sliderTrack, false)

	knob := sliderKnob
	if s.dragging {
		knob = sliderDrag
	}
	kx := s.knobX() - knobWidth/2
	vector.DrawFilledRect(screen, float32(kx), float32(t.Y+2), knobWidth, float32(t.Height-4), knob, false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.3f", s.Value), int(t.X+t.Width/2-20), int(t.Y+2))
	ebitenutil.DebugPrintAt(screen, s.Label, int(t.X+t.Width+8), int(t.Y+2))
}

// panel is the "Settings" window holding the world-point sliders.
type panel struct {
	X, Y    float64
	sliders []*Slider
	active  *Slider
}

const (
	panelWidth   = 300
	trackWidth   = 200
	trackHeight  = 20
	panelPadding = 8
	titleHeight  = 20
)

// newPanel lays out one slider per label at the given screen position. The
// world X slider spans cfg.Bounds.Y and the world Y slider spans
// cfg.Bounds.X, matching the map's axis order.
func newPanel(x, y float64, cfg floorcal.Config) *panel {
	p := &panel{X: x, Y: y}
	p.add("Boiler X", cfg.Bounds.Y)
	p.add("Boiler Y", cfg.Bounds.X)
	return p
}

func (p *panel) add(label string, r floorcal.Range) *Slider {
	i := len(p.sliders)
	s := &Slider{
		Label: label,
		Range: r,
		Track: hitRect{
			X:      p.X + panelPadding,
			Y:      p.Y + titleHeight + panelPadding + float64(i)*(trackHeight+panelPadding),
			Width:  trackWidth,
			Height: trackHeight,
		},
	}
	p.sliders = append(p.sliders, s)
	return s
}

// moveTo repositions the panel and its slider tracks.
func (p *panel) moveTo(x, y float64) {
	dx, dy := x-p.X, y-p.Y
	if dx == 0 && dy == 0 {
		return
	}
	p.X, p.Y = x, y
	for _, s := range p.sliders {
		s.Track.X += dx
		s.Track.Y += dy
	}
}

func (p *panel) bounds() hitRect {
	n := float64(len(p.sliders))
	return hitRect{
		X:      p.X,
		Y:      p.Y,
		Width:  panelWidth,
		Height: titleHeight + panelPadding + n*(trackHeight+panelPadding),
	}
}

// pointer routes one frame of pointer state. justPressed marks the first
// frame of a press. It reports whether the pointer is over or captured by
// the panel and whether any slider value changed.
func (p *panel) pointer(x, y float64, pressed, justPressed bool) (captured, changed bool) {
	if justPressed && p.active == nil {
		for _, s := range p.sliders {
			if s.press(x, y) {
				p.active = s
				break
			}
		}
	}
	if p.active != nil {
		changed = p.active.pointer(x, pressed)
		captured = true
		if !pressed {
			p.active = nil
		}
		return captured, changed
	}
	return p.bounds().Contains(x, y), false
}

// world reads the world point from the sliders.
func (p *panel) world() floorcal.Vec2 {
	return floorcal.Vec2{X: p.sliders[0].Value, Y: p.sliders[1].Value}
}

// setWorld pushes the world point into the sliders.
func (p *panel) setWorld(w floorcal.Vec2) {
	p.sliders[0].Value = w.X
	p.sliders[1].Value = w.Y
}

// sliderCenter returns the screen position of slider i at value v, used to
// script drags.
func (p *panel) sliderCenter(i int, v float64) floorcal.Vec2 {
	s := p.sliders[i]
	x := floorcal.Remap(s.Range.Clamp(v), s.Range.Min, s.Range.Max, s.Track.X, s.Track.X+s.Track.Width)
	return floorcal.Vec2{X: x, Y: s.Track.Y + s.Track.Height/2}
}

func (p *panel) draw(screen *ebiten.Image) {
	b := p.bounds()
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), panelBG, false)
	ebitenutil.DebugPrintAt(screen, "Settings", int(b.X+panelPadding), int(b.Y+2))
	for _, s := range p.sliders {
		s.draw(screen)
	}
}
