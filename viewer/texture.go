package viewer

import (
	"fmt"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/floorcal"
)

// Texture is a loaded floor plan. Size is the logical size used by the
// pipeline, i.e. the decoded size multiplied by the texture scale.
type Texture struct {
	Image *ebiten.Image
	Size  floorcal.TextureSize
}

// drawScale returns the per-axis factor from decoded pixels to Size.
func (t *Texture) drawScale() (sx, sy float64) {
	b := t.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 1, 1
	}
	return float64(t.Size.Width) / float64(b.Dx()), float64(t.Size.Height) / float64(b.Dy())
}

// LoadTexture decodes a PNG or JPEG floor plan. scale multiplies the decoded
// dimensions and must be positive.
func LoadTexture(path string, scale float64) (*Texture, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("load texture %s: %w", path, floorcal.ErrBadTextureScale)
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	b := img.Bounds()
	return &Texture{
		Image: img,
		Size:  scaledSize(b.Dx(), b.Dy(), scale),
	}, nil
}

func scaledSize(w, h int, scale float64) floorcal.TextureSize {
	return floorcal.TextureSize{
		Width:  int(float64(w) * scale),
		Height: int(float64(h) * scale),
	}
}

var (
	placeholderFill = color.RGBA{0x1e, 0x1e, 0x28, 0xff}
	placeholderGrid = color.RGBA{0x3c, 0x3c, 0x50, 0xff}
)

const (
	placeholderWidth  = 1024
	placeholderHeight = 1024
	placeholderCells  = 8
)

// PlaceholderTexture returns a gridded square used when no floor plan is
// given, so a calibration can still be inspected in normalized space.
func PlaceholderTexture(scale float64) *Texture {
	img := ebiten.NewImage(placeholderWidth, placeholderHeight)
	img.Fill(placeholderFill)
	for i := 0; i <= placeholderCells; i++ {
		x := float32(i * placeholderWidth / placeholderCells)
		y := float32(i * placeholderHeight / placeholderCells)
		vector.StrokeLine(img, x, 0, x, placeholderHeight, 2, placeholderGrid, false)
		vector.StrokeLine(img, 0, y, placeholderWidth, y, 2, placeholderGrid, false)
	}
	if scale <= 0 {
		scale = 1
	}
	return &Texture{
		Image: img,
		Size:  scaledSize(placeholderWidth, placeholderHeight, scale),
	}
}
