package floorcal

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * degToRad }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * radToDeg }

// Rotate rotates p about center by deg degrees. Positive angles rotate
// counter-clockwise in a Y-up frame; callers working in a Y-down frame must
// flip the sign themselves.
func Rotate(p, center Vec2, deg float64) Vec2 {
	sin, cos := math.Sincos(deg * degToRad)

	// translate to origin, rotate, translate back
	d := p.Sub(center)
	return Vec2{
		X: d.X*cos - d.Y*sin + center.X,
		Y: d.X*sin + d.Y*cos + center.Y,
	}
}

// Remap maps v from [srcMin, srcMax] onto [dstMin, dstMax]. Values outside
// the source interval are extrapolated, not clamped. srcMin must differ from
// srcMax; a degenerate source yields ±Inf or NaN.
func Remap(v, srcMin, srcMax, dstMin, dstMax float64) float64 {
	normalized := (v - srcMin) / (srcMax - srcMin)
	return normalized*(dstMax-dstMin) + dstMin
}

// ApplyAffine maps p through the calibration constants:
//
//	x' =  ScaleX*x + OffsetX
//	y' = -ScaleY*y + OffsetY
//
// The Y scale is negated on purpose: the calibration data comes from a map
// whose Y axis points the other way.
func ApplyAffine(p Vec2, a AffineParams) Vec2 {
	return Vec2{
		X: a.ScaleX*p.X + a.OffsetX,
		Y: -a.ScaleY*p.Y + a.OffsetY,
	}
}

// InvertAffine undoes [ApplyAffine]. Both scales must be non-zero.
func InvertAffine(p Vec2, a AffineParams) Vec2 {
	return Vec2{
		X: (p.X - a.OffsetX) / a.ScaleX,
		Y: (p.Y - a.OffsetY) / -a.ScaleY,
	}
}

// ToPixels scales a normalized point by the texture dimensions.
func ToPixels(n Vec2, width, height float64) Vec2 {
	return Vec2{n.X * width, n.Y * height}
}

// FromPixels is the inverse of [ToPixels]. Width and height must be non-zero.
func FromPixels(p Vec2, width, height float64) Vec2 {
	return Vec2{p.X / width, p.Y / height}
}

// Matrix is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// Rotation returns a counter-clockwise rotation matrix for deg degrees.
func Rotation(deg float64) Matrix {
	sin, cos := math.Sincos(deg * degToRad)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Mul returns m * o, i.e. o is applied first.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m. A singular matrix (determinant ≈ 0)
// inverts to Identity.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms p by m.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}
