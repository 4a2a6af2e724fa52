// Package viewer is the interactive calibration screen: it draws a floor
// plan, lets the world point be moved with sliders, keys, presets or a
// script, and marks where the configured pipeline places it on the texture.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/floorcal"
	"github.com/phanxgames/floorcal/internal/logging"
	"go.uber.org/zap"
)

// ErrWindow is returned by Run when the window or graphics context fails.
var ErrWindow = errors.New("viewer: window")

const (
	nudgeStep     = 0.25
	nudgeFineStep = 0.01
	wheelZoomBase = 1.1
	resetSeconds  = 0.4

	dotRadius    = 5
	markerRadius = 6
	panelMarginX = 10
)

var (
	background  = color.RGBA{0x1e, 0x1e, 0x28, 0xff}
	dotColor    = color.RGBA{0xff, 0xff, 0x00, 0xff}
	lineColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	markerColor = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// presetKeys binds 1-9 to the first nine presets.
var presetKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Options configures a Viewer.
type Options struct {
	Config floorcal.Config
	// Texture is the floor plan. Nil uses PlaceholderTexture.
	Texture *Texture
	// Script, when set, drives the viewer frame by frame.
	Script *Runner
	// Logger receives screenshot and diagnostics output. Nil disables logging.
	Logger *zap.Logger
	// ScreenshotDir is where PNGs are written. Defaults to "screenshots".
	ScreenshotDir string
	ShowFPS       bool
}

// Viewer implements ebiten.Game.
type Viewer struct {
	pipeline    *floorcal.Pipeline
	fingerprint string
	texture     *Texture
	view     *View
	panel    *panel
	runner   *Runner
	log      *zap.Logger

	// world is the tracked point. It is passed by value into the pipeline.
	world floorcal.Vec2
	tween *pointTween

	display floorcal.Vec2
	cursor  floorcal.Vec2

	panning bool
	panFrom floorcal.Vec2

	injectQueue   []syntheticPointer
	injectPressed bool

	screenshotDir   string
	screenshotQueue []string

	lastTracked string
	showFPS     bool
	quit        bool
}

// New builds a viewer. The configuration is validated here so a bad
// calibration fails before a window is opened.
func New(opts Options) (*Viewer, error) {
	p, err := floorcal.NewPipeline(opts.Config)
	if err != nil {
		return nil, err
	}
	tex := opts.Texture
	if tex == nil {
		tex = PlaceholderTexture(opts.Config.TextureScale)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}

	v := &Viewer{
		pipeline:      p,
		fingerprint:   opts.Config.Fingerprint(),
		texture:       tex,
		view:          NewView(tex.Size),
		panel:         newPanel(panelMarginX, 0, opts.Config),
		runner:        opts.Script,
		log:           log,
		world:         opts.Config.World,
		screenshotDir: dir,
		showFPS:       opts.ShowFPS,
	}
	v.panel.setWorld(v.world)
	return v, nil
}

// World returns the tracked point.
func (v *Viewer) World() floorcal.Vec2 { return v.world }

// SetWorld moves the tracked point immediately, cancelling any tween.
func (v *Viewer) SetWorld(w floorcal.Vec2) {
	v.tween = nil
	v.world = w
	v.panel.setWorld(w)
}

// TweenWorld animates the tracked point to w over duration seconds.
func (v *Viewer) TweenWorld(w floorcal.Vec2, duration float32) {
	if duration <= 0 {
		v.SetWorld(w)
		return
	}
	v.tween = newPointTween(v.world, w, duration, nil)
}

// Pipeline returns the active pipeline.
func (v *Viewer) Pipeline() *floorcal.Pipeline { return v.pipeline }

// SetVariant switches the pipeline variant. On error the current variant
// stays active.
func (v *Viewer) SetVariant(variant floorcal.Variant) error {
	p, err := v.pipeline.WithVariant(variant)
	if err != nil {
		return err
	}
	v.pipeline = p
	v.fingerprint = p.Config().Fingerprint()
	v.log.Info("variant changed",
		zap.Stringer("variant", variant),
		zap.String("fingerprint", v.fingerprint),
	)
	return nil
}

// Quit ends the game loop after the current frame.
func (v *Viewer) Quit() { v.quit = true }

// Diagnostics computes the readout for the current frame.
func (v *Viewer) Diagnostics() Diagnostics {
	size := v.texture.Size
	w, h := float64(size.Width), float64(size.Height)

	n := v.pipeline.ToNormalized(v.world)
	texPos := v.view.ScreenToTexture(v.cursor)
	cursorNorm := floorcal.FromPixels(texPos, w, h)
	return Diagnostics{
		World:       v.world,
		Normalized:  n,
		Pixel:       v.pipeline.ToPixels(n, w, h),
		TexturePos:  texPos,
		CursorNorm:  cursorNorm,
		CursorWorld: v.pipeline.FromNormalized(cursorNorm),
		Display:     v.display,
		Image:       size.Vec2(),
		Variant:     v.pipeline.Variant(),
		Calibration: v.pipeline.Config().Name,
		Fingerprint: v.fingerprint,
	}
}

// Update advances one tick.
func (v *Viewer) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if v.runner != nil {
		v.runner.step(v)
	}
	v.handleKeys(ebitenKeys{})
	v.handlePointer(v.readPointer())
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.view.ZoomAt(v.cursor, math.Pow(wheelZoomBase, wy))
	}
	v.view.update(dt)

	if v.tween != nil {
		p, done := v.tween.update(dt)
		v.world = p
		v.panel.setWorld(p)
		if done {
			v.tween = nil
		}
	}

	v.logTracked()

	if v.quit {
		return ebiten.Termination
	}
	return nil
}

// keyInput is the keyboard state handleKeys reads.
type keyInput interface {
	JustPressed(ebiten.Key) bool
	Pressed(ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }

func (v *Viewer) handleKeys(keys keyInput) {
	if keys.JustPressed(ebiten.KeyEscape) {
		v.Quit()
	}
	if keys.JustPressed(ebiten.KeyV) {
		next := v.pipeline.Variant().Next()
		if err := v.SetVariant(next); err != nil {
			v.log.Warn("variant rejected", zap.Stringer("variant", next), zap.Error(err))
		}
	}
	if keys.JustPressed(ebiten.KeyR) {
		v.SetWorld(v.pipeline.Config().World)
		v.view.AnimateReset(resetSeconds)
	}
	if keys.JustPressed(ebiten.KeyP) {
		v.Screenshot("manual")
	}
	if keys.JustPressed(ebiten.KeyF) {
		v.showFPS = !v.showFPS
	}

	presets := v.pipeline.Config().Presets
	for i, key := range presetKeys {
		if i >= len(presets) {
			break
		}
		if keys.JustPressed(key) {
			v.TweenWorld(presets[i].Vec2, defaultTweenSeconds)
			v.log.Debug("preset", zap.String("name", presets[i].Name))
		}
	}

	if d := nudge(keys); d != (floorcal.Vec2{}) {
		v.SetWorld(v.world.Add(d))
	}
}

// nudge returns the world offset for the held arrow keys. Shift selects
// the fine step.
func nudge(keys keyInput) floorcal.Vec2 {
	step := nudgeStep
	if keys.Pressed(ebiten.KeyShift) {
		step = nudgeFineStep
	}
	var d floorcal.Vec2
	if keys.Pressed(ebiten.KeyArrowLeft) {
		d.X -= step
	}
	if keys.Pressed(ebiten.KeyArrowRight) {
		d.X += step
	}
	if keys.Pressed(ebiten.KeyArrowDown) {
		d.Y -= step
	}
	if keys.Pressed(ebiten.KeyArrowUp) {
		d.Y += step
	}
	return d
}

// handlePointer routes one pointer sample to the settings panel, or to the
// view when the panel does not capture it.
func (v *Viewer) handlePointer(s pointerSample) {
	v.cursor = s.pos

	captured, changed := v.panel.pointer(s.pos.X, s.pos.Y, s.pressed, s.justPressed)
	if changed {
		v.tween = nil
		v.world = v.panel.world()
	}
	if captured {
		v.panning = false
		return
	}

	if s.panning {
		if v.panning {
			d := s.pos.Sub(v.panFrom)
			v.view.PanBy(d.X, d.Y)
		}
		v.panFrom = s.pos
	}
	v.panning = s.panning
}

// logTracked writes the tracked-point readout at debug level whenever it
// changes.
func (v *Viewer) logTracked() {
	d := v.Diagnostics()
	key := strings.Join(d.trackedLines(), "\n")
	if key == v.lastTracked {
		return
	}
	v.lastTracked = key
	v.log.Debug("tracked point",
		logging.Vec2("world", d.World.X, d.World.Y),
		logging.Vec2("normalized", d.Normalized.X, d.Normalized.Y),
		logging.Vec2("pixels", d.Pixel.X, d.Pixel.Y),
		zap.Stringer("variant", d.Variant),
	)
}

// Draw renders the floor plan, the reference dots and line, the marker, the
// HUD and the settings panel.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	op := &ebiten.DrawImageOptions{}
	sx, sy := v.texture.drawScale()
	op.GeoM.Scale(sx, sy)
	op.GeoM.Concat(v.view.GeoM())
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(v.texture.Image, op)

	d := v.Diagnostics()
	center := v.display.Scale(0.5)
	origin := v.view.TextureToScreen(floorcal.Vec2{})
	corner := v.view.TextureToScreen(d.Image)
	marker := v.view.TextureToScreen(d.Pixel)

	fillCircle(screen, center, dotRadius, dotColor)
	fillCircle(screen, origin, dotRadius, dotColor)
	vector.StrokeLine(screen, float32(origin.X), float32(origin.Y), float32(corner.X), float32(corner.Y), 1, lineColor, true)
	if marker.IsFinite() {
		fillCircle(screen, marker, markerRadius, markerColor)
	}

	lines := d.Lines()
	if v.showFPS {
		lines = append(lines, fpsLine())
	}
	drawLines(screen, lines, hudX, hudY)
	v.panel.draw(screen)

	v.flushScreenshots(screen)
}

func fillCircle(screen *ebiten.Image, p floorcal.Vec2, r float32, c color.Color) {
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, c, true)
}

// Layout tracks the window size and keeps the settings panel under the HUD.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	v.display = floorcal.Vec2{X: w, Y: h}
	v.view.SetViewport(w, h)
	v.panel.moveTo(panelMarginX, hudY+12*hudLineHeight)
	return outsideWidth, outsideHeight
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and blocks until the viewer quits or the window is
// closed. A clean quit returns nil.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 960
	}
	if cfg.Title == "" {
		cfg.Title = "floorcal"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(v)
	if err == nil || errors.Is(err, ebiten.Termination) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrWindow, err)
}
