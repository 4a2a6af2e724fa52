package viewer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/floorcal/internal/logging"
	"go.uber.org/zap"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The PNG is written to the screenshot directory
// and named after the calibration, the variant and the label.
func (v *Viewer) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Draw.
func (v *Viewer) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	defer func() { v.screenshotQueue = v.screenshotQueue[:0] }()

	if err := os.MkdirAll(v.screenshotDir, 0o755); err != nil {
		v.log.Warn("screenshot: create directory", zap.String("dir", v.screenshotDir), zap.Error(err))
		return
	}

	frame := captureFrame(screen)
	stamp := time.Now().Format("20060102_150405")
	name := v.pipeline.Config().Name
	variant := v.pipeline.Variant().String()
	for _, label := range v.screenshotQueue {
		path := filepath.Join(v.screenshotDir, screenshotName(stamp, name, variant, label))
		if err := writePNG(path, frame); err != nil {
			v.log.Warn("screenshot failed", zap.Error(err))
			continue
		}
		v.log.Info("screenshot saved",
			zap.String("path", path),
			zap.String("fingerprint", v.fingerprint),
			logging.Vec2("world", v.world.X, v.world.Y),
		)
	}
}

// captureFrame reads the screen into an image.RGBA. ReadPixels yields
// premultiplied RGBA, which is image.RGBA's own layout.
func captureFrame(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	frame := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(frame.Pix)
	return frame
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// screenshotName builds stamp_calibration_variant_label.png. Each part is
// reduced to lowercase letters, digits, '-' and '.' runs joined by '-'.
func screenshotName(stamp, calibration, variant, label string) string {
	parts := []string{stamp}
	for _, p := range []string{calibration, variant, label} {
		parts = append(parts, slug(p))
	}
	return strings.Join(parts, "_") + ".png"
}

func slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '-' || r == '.')
	})
	if len(fields) == 0 {
		return "unlabeled"
	}
	return strings.Join(fields, "-")
}
