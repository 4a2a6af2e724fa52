package floorcal

import "fmt"

// Variant selects how a world point is carried into normalized texture space.
type Variant uint8

const (
	// VariantBounds rotates the world point about the origin and remaps each
	// axis against the reference Rect rotated by the same angle. The low edge
	// of the rotated Rect on each axis maps to 0 and the high edge to 1.
	VariantBounds Variant = iota
	// VariantAffineScale swaps the world axes, rotates about the origin,
	// offsets by Rect.BottomRight, divides by MapSize and multiplies both
	// axes by Affine.ScaleX.
	VariantAffineScale
	// VariantAffineBounds applies the affine calibration, rotates about the
	// origin and normalizes against Bounds.
	VariantAffineBounds

	variantCount
)

var variantNames = [variantCount]string{
	VariantBounds:       "bounds",
	VariantAffineScale:  "affine-scale",
	VariantAffineBounds: "affine-bounds",
}

// String returns the configuration name of the variant.
func (v Variant) String() string {
	if v < variantCount {
		return variantNames[v]
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// Next returns the variant after v, wrapping around.
func (v Variant) Next() Variant { return (v + 1) % variantCount }

// Variants lists every supported variant in order.
func Variants() []Variant {
	out := make([]Variant, variantCount)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// ParseVariant parses a variant name as produced by [Variant.String].
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if v >= variantCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Trace records the intermediate values of a single transform.
type Trace struct {
	Variant    Variant
	World      Vec2
	Affine     Vec2 // after ApplyAffine; equals World when the variant has no affine stage
	Rotated    Vec2
	Normalized Vec2
}

var origin = Vec2{}

// Pipeline converts world points to normalized texture coordinates and back
// for one validated calibration. A Pipeline is immutable and safe for
// concurrent use.
type Pipeline struct {
	cfg Config

	// frame is the axis-aligned extent of the reference Rect after rotation,
	// used by VariantBounds.
	frameX, frameY Range
}

// NewPipeline validates cfg and returns a pipeline for it.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg}
	p.frameX, p.frameY = rotatedExtent(cfg.Rect, cfg.Rotation)
	return p, nil
}

// MustPipeline is like NewPipeline but panics on an invalid configuration.
func MustPipeline(cfg Config) *Pipeline {
	p, err := NewPipeline(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// WithVariant returns a pipeline for the same calibration using variant v.
func (p *Pipeline) WithVariant(v Variant) (*Pipeline, error) {
	cfg := p.cfg
	cfg.Variant = v
	return NewPipeline(cfg)
}

// Config returns the calibration the pipeline was built from.
func (p *Pipeline) Config() Config { return p.cfg }

// Variant returns the active variant.
func (p *Pipeline) Variant() Variant { return p.cfg.Variant }

// ToNormalized maps a world point into normalized texture space. The result
// is not clamped: points outside the calibrated map land outside [0, 1].
func (p *Pipeline) ToNormalized(world Vec2) Vec2 {
	return p.Stages(world).Normalized
}

// ToPixels scales a normalized point by the given texture dimensions.
func (p *Pipeline) ToPixels(n Vec2, width, height float64) Vec2 {
	return ToPixels(n, width, height)
}

// WorldToPixels maps a world point straight to texture pixels.
func (p *Pipeline) WorldToPixels(world Vec2, tex TextureSize) Vec2 {
	sz := tex.Vec2()
	return ToPixels(p.ToNormalized(world), sz.X, sz.Y)
}

// Stages runs the transform and returns every intermediate value.
func (p *Pipeline) Stages(world Vec2) Trace {
	cfg := &p.cfg
	t := Trace{Variant: cfg.Variant, World: world, Affine: world}

	switch cfg.Variant {
	case VariantAffineScale:
		t.Rotated = Rotate(world.Swap(), origin, cfg.Rotation)
		d := t.Rotated.Sub(cfg.Rect.BottomRight)
		t.Normalized = Vec2{
			X: d.X / cfg.MapSize.X * cfg.Affine.ScaleX,
			Y: d.Y / cfg.MapSize.Y * cfg.Affine.ScaleX,
		}
	case VariantAffineBounds:
		t.Affine = ApplyAffine(world, cfg.Affine)
		t.Rotated = Rotate(t.Affine, origin, cfg.Rotation)
		t.Normalized = Vec2{
			X: cfg.Bounds.X.RemapTo(t.Rotated.X, Unit),
			Y: cfg.Bounds.Y.RemapTo(t.Rotated.Y, Unit),
		}
	default:
		t.Rotated = Rotate(world, origin, cfg.Rotation)
		t.Normalized = Vec2{
			X: p.frameX.RemapTo(t.Rotated.X, Unit),
			Y: p.frameY.RemapTo(t.Rotated.Y, Unit),
		}
	}
	return t
}

// FromNormalized is the inverse of ToNormalized.
func (p *Pipeline) FromNormalized(n Vec2) Vec2 {
	cfg := &p.cfg
	switch cfg.Variant {
	case VariantAffineScale:
		d := Vec2{
			X: n.X / cfg.Affine.ScaleX * cfg.MapSize.X,
			Y: n.Y / cfg.Affine.ScaleX * cfg.MapSize.Y,
		}
		return Rotate(d.Add(cfg.Rect.BottomRight), origin, -cfg.Rotation).Swap()
	case VariantAffineBounds:
		r := Vec2{Unit.RemapTo(n.X, cfg.Bounds.X), Unit.RemapTo(n.Y, cfg.Bounds.Y)}
		return InvertAffine(Rotate(r, origin, -cfg.Rotation), cfg.Affine)
	default:
		r := Vec2{Unit.RemapTo(n.X, p.frameX), Unit.RemapTo(n.Y, p.frameY)}
		return Rotate(r, origin, -cfg.Rotation)
	}
}

// FromPixels maps a texture pixel back to a world point. The texture must
// have non-zero dimensions.
func (p *Pipeline) FromPixels(px Vec2, tex TextureSize) Vec2 {
	sz := tex.Vec2()
	return p.FromNormalized(FromPixels(px, sz.X, sz.Y))
}

// rotatedExtent rotates the four corners of r about the origin and returns
// their axis-aligned extent, low edge first.
func rotatedExtent(r Rect, deg float64) (x, y Range) {
	corners := r.Corners()
	first := Rotate(corners[0], origin, deg)
	x = Range{first.X, first.X}
	y = Range{first.Y, first.Y}
	for _, c := range corners[1:] {
		rc := Rotate(c, origin, deg)
		x.Min, x.Max = min(x.Min, rc.X), max(x.Max, rc.X)
		y.Min, y.Max = min(y.Min, rc.Y), max(y.Max, rc.Y)
	}
	return x, y
}
