package floorcal

import "math"

// Vec2 is a 2D point or vector. The coordinate space (world, normalized,
// texture pixels, screen) is implied by the call that produced it.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Swap returns v with its components exchanged.
func (v Vec2) Swap() Vec2 { return Vec2{v.Y, v.X} }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool { return isFinite(v.X) && isFinite(v.Y) }

// Range is a scalar interval. Min and Max are not required to be ordered;
// a Range whose Max is below its Min maps in reverse.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Degenerate reports whether the range cannot be used as a remap source,
// i.e. its span is zero or not finite.
func (r Range) Degenerate() bool {
	s := r.Span()
	return s == 0 || !isFinite(s)
}

// Lo returns the smaller endpoint.
func (r Range) Lo() float64 { return math.Min(r.Min, r.Max) }

// Hi returns the larger endpoint.
func (r Range) Hi() float64 { return math.Max(r.Min, r.Max) }

// Contains reports whether v lies between the endpoints, inclusive, regardless
// of their order.
func (r Range) Contains(v float64) bool { return v >= r.Lo() && v <= r.Hi() }

// Clamp restricts v to the range, regardless of endpoint order.
func (r Range) Clamp(v float64) float64 { return math.Max(r.Lo(), math.Min(v, r.Hi())) }

// RemapTo maps v from r onto dst. See [Remap].
func (r Range) RemapTo(v float64, dst Range) float64 {
	return Remap(v, r.Min, r.Max, dst.Min, dst.Max)
}

// Unit is the [0, 1] range normalized coordinates live in.
var Unit = Range{0, 1}

// Rect is a reference rectangle given by two opposite corners. The corners
// carry no ordering invariant: TopLeft may be numerically larger than
// BottomRight on either axis, matching whatever convention the map uses.
type Rect struct {
	TopLeft     Vec2 `yaml:"top_left" json:"top_left"`
	BottomRight Vec2 `yaml:"bottom_right" json:"bottom_right"`
}

// Center returns the midpoint of the two corners.
func (r Rect) Center() Vec2 {
	return Vec2{(r.TopLeft.X + r.BottomRight.X) / 2, (r.TopLeft.Y + r.BottomRight.Y) / 2}
}

// XRange returns the TopLeft.X -> BottomRight.X interval.
func (r Rect) XRange() Range { return Range{r.TopLeft.X, r.BottomRight.X} }

// YRange returns the TopLeft.Y -> BottomRight.Y interval.
func (r Rect) YRange() Range { return Range{r.TopLeft.Y, r.BottomRight.Y} }

// Corners returns the four corners: TopLeft, (BottomRight.X, TopLeft.Y),
// BottomRight, (TopLeft.X, BottomRight.Y).
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		r.TopLeft,
		{r.BottomRight.X, r.TopLeft.Y},
		r.BottomRight,
		{r.TopLeft.X, r.BottomRight.Y},
	}
}

// Bounds is a pair of per-axis intervals. Unlike [Rect] it is directional:
// X.Min and Y.Min map to 0 and X.Max and Y.Max map to 1.
type Bounds struct {
	X Range `yaml:"x" json:"x"`
	Y Range `yaml:"y" json:"y"`
}

// AffineParams are per-axis scale-and-offset calibration constants.
// See [ApplyAffine] for how they are applied.
type AffineParams struct {
	ScaleX  float64 `yaml:"scale_x" json:"scale_x"`
	OffsetX float64 `yaml:"offset_x" json:"offset_x"`
	ScaleY  float64 `yaml:"scale_y" json:"scale_y"`
	OffsetY float64 `yaml:"offset_y" json:"offset_y"`
}

// TextureSize describes the pixel dimensions of the floor-plan texture as it
// is drawn.
type TextureSize struct {
	Width, Height int
}

// Vec2 returns the dimensions as floats.
func (t TextureSize) Vec2() Vec2 { return Vec2{float64(t.Width), float64(t.Height)} }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
