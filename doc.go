// Package floorcal maps world coordinates onto a floor-plan image.
//
// A calibration ([Config]) describes one floor plan: a reference rectangle,
// directional bounds, four affine constants, a fixed rotation and the map's
// physical size. A [Pipeline] built from it converts a world point into
// normalized texture space, where (0, 0) and (1, 1) are opposite corners of
// the image, and from there into pixels:
//
//	p, err := floorcal.NewPipeline(floorcal.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	n := p.ToNormalized(floorcal.Vec2{X: 56.2, Y: 6.23})
//	px := p.ToPixels(n, 800, 600)
//
// Results are not clamped. A point outside the calibrated map lands outside
// [0, 1] and the caller decides whether to draw it.
//
// # Variants
//
// Three composition orders are supported, selected by [Config.Variant]:
//
//   - [VariantBounds] rotates about the origin and remaps each axis against
//     the rotated extent of [Config.Rect].
//   - [VariantAffineScale] swaps the axes, rotates, subtracts the rectangle's
//     bottom-right corner and divides by [Config.MapSize], then multiplies by
//     the affine X scale.
//   - [VariantAffineBounds] applies [ApplyAffine], rotates, and remaps against
//     [Config.Bounds].
//
// Every variant has an inverse ([Pipeline.FromNormalized],
// [Pipeline.FromPixels]) and [Pipeline.Stages] exposes each intermediate
// value for debugging.
//
// # Configuration
//
// Calibrations load from YAML, JSON or flat KEY=value files with
// [LoadFile]. Missing keys keep their [DefaultConfig] values. Every loader
// validates before returning; [Config.Validate] reports all problems at once
// as a [*ConfigError] whose causes match the Err* sentinels with
// [errors.Is]. Pipelines never check for bad input per call.
//
// The primitives [Rotate], [Remap], [ApplyAffine] and [Matrix] are exported
// for callers that build their own transforms.
package floorcal
