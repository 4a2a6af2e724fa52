package viewer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/floorcal"
)

const (
	hudX          = 10
	hudY          = 10
	hudLineHeight = 20
)

// Diagnostics is the per-frame readout drawn in the top-left corner.
type Diagnostics struct {
	World       floorcal.Vec2 // tracked point, world units
	Normalized  floorcal.Vec2 // tracked point, normalized texture space
	Pixel       floorcal.Vec2 // tracked point, texture pixels
	TexturePos  floorcal.Vec2 // cursor relative to the texture origin, texture pixels
	CursorNorm  floorcal.Vec2 // cursor, normalized texture space
	CursorWorld floorcal.Vec2 // cursor carried back into world units
	Display     floorcal.Vec2
	Image       floorcal.Vec2
	Variant     floorcal.Variant
	Calibration string
	Fingerprint string
}

func pair(label string, v floorcal.Vec2) string {
	return fmt.Sprintf("%s: %.2f, %.2f", label, v.X, v.Y)
}

// Lines formats the readout, one entry per HUD line.
func (d Diagnostics) Lines() []string {
	return []string{
		pair("Boiler Position", d.World),
		pair("Position Normalized", d.Normalized),
		pair("Position Pixels", d.Pixel),
		pair("Texture Pos", d.TexturePos),
		pair("Cursor Pos", d.CursorNorm),
		pair("Cursor World", d.CursorWorld),
		pair("Display size", d.Display),
		pair("Image size", d.Image),
		"Variant: " + d.Variant.String(),
		fmt.Sprintf("Calibration: %s (%s)", d.Calibration, d.Fingerprint),
	}
}

// trackedLines returns the lines that describe the tracked point and the
// calibration, i.e. everything except cursor and window readouts. The
// viewer logs these whenever they change.
func (d Diagnostics) trackedLines() []string {
	l := d.Lines()
	return []string{l[0], l[1], l[2], l[8], l[9]}
}

func drawLines(screen *ebiten.Image, lines []string, x, y int) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*hudLineHeight)
	}
}

// fpsLine returns the FPS/TPS readout.
func fpsLine() string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}
