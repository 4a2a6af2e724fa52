package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/floorcal"
	"go.uber.org/zap"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Slider   int     `json:"slider,omitempty"`
	To       float64 `json:"to,omitempty"`
	Variant  string  `json:"variant,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a script file.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Runner plays a script of world-point moves, slider drags and screenshots
// across frames, for scripted visual checks of a calibration. Attach it to
// a Viewer through Options.Script.
type Runner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script:
//
//	{"steps": [
//	  {"action": "set", "x": 56.2, "y": 6.23},
//	  {"action": "tween", "x": 0, "y": 0, "duration": 0.5},
//	  {"action": "drag", "slider": 1, "to": 12.5, "frames": 10},
//	  {"action": "variant", "variant": "affine-scale"},
//	  {"action": "wait", "frames": 3},
//	  {"action": "screenshot", "label": "origin"},
//	  {"action": "quit"}
//	]}
func LoadScript(data []byte) (*Runner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "set", "tween", "wait", "screenshot", "quit":
		case "drag":
			if st.Slider < 0 || st.Slider > 1 {
				return nil, fmt.Errorf("parse script: step %d: slider %d out of range", i, st.Slider)
			}
		case "variant":
			if _, err := floorcal.ParseVariant(st.Variant); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Runner{steps: s.Steps}, nil
}

// Done reports whether every step has run.
func (r *Runner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Viewer.Update.
func (r *Runner) step(v *Viewer) {
	if r.done {
		return
	}
	// Let injected drags and tweens finish before advancing.
	if v.Injecting() || v.tween != nil {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "set":
		v.SetWorld(floorcal.Vec2{X: st.X, Y: st.Y})
	case "tween":
		d := st.Duration
		if d <= 0 {
			d = defaultTweenSeconds
		}
		v.TweenWorld(floorcal.Vec2{X: st.X, Y: st.Y}, d)
	case "drag":
		cur := v.panel.sliders[st.Slider].Value
		v.InjectDrag(v.panel.sliderCenter(st.Slider, cur), v.panel.sliderCenter(st.Slider, st.To), st.Frames)
	case "variant":
		variant, _ := floorcal.ParseVariant(st.Variant)
		if err := v.SetVariant(variant); err != nil {
			v.log.Warn("script: variant rejected", zap.String("variant", st.Variant), zap.Error(err))
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		v.Screenshot(st.Label)
	case "quit":
		v.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !v.Injecting() && v.tween == nil {
		r.done = true
	}
}
