package floorcal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Preset is a named world point the viewer can jump to.
type Preset struct {
	Name string `yaml:"name" json:"name"`
	Vec2 `yaml:",inline"`
}

// Config is the calibration for one floor-plan image. It is loaded once at
// startup, validated, and never mutated afterwards.
type Config struct {
	Name    string  `yaml:"name" json:"name"`
	Variant Variant `yaml:"variant" json:"variant"`

	// Rect is the reference rectangle used by VariantBounds. VariantAffineScale
	// only uses its BottomRight corner.
	Rect Rect `yaml:"rect" json:"rect"`
	// Bounds is the directional normalization reference for
	// VariantAffineBounds. The viewer also uses it for its slider ranges:
	// Bounds.Y drives world X and Bounds.X drives world Y.
	Bounds Bounds       `yaml:"bounds" json:"bounds"`
	Affine AffineParams `yaml:"affine" json:"affine"`
	// Rotation in degrees, counter-clockwise.
	Rotation float64 `yaml:"rotation" json:"rotation"`
	// MapSize is the physical size of the map in world units.
	MapSize Vec2 `yaml:"map_size" json:"map_size"`
	// TextureScale is applied to the decoded image dimensions before display.
	TextureScale float64 `yaml:"texture_scale" json:"texture_scale"`

	// World is the initial tracked point.
	World   Vec2     `yaml:"world" json:"world"`
	Presets []Preset `yaml:"presets,omitempty" json:"presets,omitempty"`
}

// DefaultConfig returns the calibration of the factory first floor plan.
func DefaultConfig() Config {
	return Config{
		Name:    "factory-1st-floor",
		Variant: VariantBounds,
		Rect: Rect{
			TopLeft:     Vec2{79.0, 67.4},
			BottomRight: Vec2{-66.5, -64.5},
		},
		Bounds: Bounds{
			X: Range{79, -66.5},
			Y: Range{-64.5, 67.4},
		},
		Affine:       AffineParams{ScaleX: 1.629, OffsetX: 119.9, ScaleY: 1.629, OffsetY: 139.3},
		Rotation:     90,
		MapSize:      Vec2{141.8, 131.57},
		TextureScale: 0.5,
		World:        Vec2{79, -64.5},
		Presets: []Preset{
			{Name: "between boilers", Vec2: Vec2{56.20, 6.23}},
		},
	}
}

// Validate checks the calibration once, up front, so the pipeline never has
// to. It returns a *ConfigError listing every problem, or nil.
func (c Config) Validate() error {
	var errs error
	add := func(field string, sentinel error) {
		errs = multierr.Append(errs, fieldError(field, sentinel))
	}

	for _, f := range c.floatFields() {
		if !isFinite(*f.ptr) {
			add(f.name, ErrNonFinite)
		}
	}
	for i, p := range c.Presets {
		if !p.IsFinite() {
			add(fmt.Sprintf("presets[%d] %q", i, p.Name), ErrNonFinite)
		}
	}
	if errs != nil {
		// Everything below does arithmetic on these values.
		return &ConfigError{Name: c.Name, Err: errs}
	}

	if c.TextureScale <= 0 {
		add("texture_scale", ErrBadTextureScale)
	}
	if c.Bounds.X.Degenerate() {
		add("bounds.x", ErrDegenerateBounds)
	}
	if c.Bounds.Y.Degenerate() {
		add("bounds.y", ErrDegenerateBounds)
	}

	switch c.Variant {
	case VariantBounds:
		if c.Rect.XRange().Degenerate() {
			add("rect.x", ErrDegenerateRect)
		}
		if c.Rect.YRange().Degenerate() {
			add("rect.y", ErrDegenerateRect)
		}
	case VariantAffineScale:
		if c.MapSize.X == 0 {
			add("map_size.x", ErrZeroMapSize)
		}
		if c.MapSize.Y == 0 {
			add("map_size.y", ErrZeroMapSize)
		}
		if c.Affine.ScaleX == 0 {
			add("affine.scale_x", ErrZeroScale)
		}
	case VariantAffineBounds:
		if c.Affine.ScaleX == 0 {
			add("affine.scale_x", ErrZeroScale)
		}
		if c.Affine.ScaleY == 0 {
			add("affine.scale_y", ErrZeroScale)
		}
	default:
		add("variant", ErrUnknownVariant)
	}

	if errs != nil {
		return &ConfigError{Name: c.Name, Err: errs}
	}
	return nil
}

// Fingerprint identifies the calibration values. Two configs with the same
// fingerprint transform points identically.
func (c Config) Fingerprint() string {
	var buf bytes.Buffer
	if err := c.WriteYAML(&buf); err != nil {
		// Only an unknown variant fails to encode; fall back to the Go syntax.
		buf.Reset()
		fmt.Fprintf(&buf, "%#v", c)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(buf.Bytes()))
}

// WriteYAML encodes the config as YAML.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// LoadYAML reads a YAML calibration. Keys that are absent keep their
// DefaultConfig values.
func LoadYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode yaml config: %w", err)
	}
	return validated(c)
}

// LoadJSON reads a JSON calibration. Keys that are absent keep their
// DefaultConfig values.
func LoadJSON(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode json config: %w", err)
	}
	return validated(c)
}

// LoadEnv reads a flat KEY=VALUE calibration record, for example
//
//	ROTATION=90
//	AFFINE_SCALE_X=1.629
//	PRESET_BETWEEN_BOILERS=56.20,6.23
//
// Keys are listed by [EnvKeys]. PRESET_* keys add presets and replace the
// default ones. Absent keys keep their DefaultConfig values.
func LoadEnv(r io.Reader) (Config, error) {
	vars, err := godotenv.Parse(r)
	if err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}

	c := DefaultConfig()
	fields := make(map[string]*float64)
	for _, f := range c.floatFields() {
		fields[f.env] = f.ptr
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var presets []Preset
	for _, key := range keys {
		val := strings.TrimSpace(vars[key])
		switch {
		case key == "NAME":
			c.Name = val
		case key == "VARIANT":
			v, err := ParseVariant(val)
			if err != nil {
				return Config{}, fmt.Errorf("env config VARIANT: %w", err)
			}
			c.Variant = v
		case strings.HasPrefix(key, "PRESET_"):
			p, err := parsePreset(key, val)
			if err != nil {
				return Config{}, err
			}
			presets = append(presets, p)
		default:
			ptr, ok := fields[key]
			if !ok {
				return Config{}, fmt.Errorf("env config: unknown key %q", key)
			}
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return Config{}, fmt.Errorf("env config %s: %w", key, err)
			}
			*ptr = f
		}
	}
	if presets != nil {
		c.Presets = presets
	}
	return validated(c)
}

// LoadFile reads a calibration file, choosing the decoder by extension:
// .yaml/.yml, .json, or .env/.cal for flat key=value records.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		c, err = LoadYAML(f)
	case ".json":
		c, err = LoadJSON(f)
	case ".env", ".cal":
		c, err = LoadEnv(f)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// EnvKeys returns the numeric keys understood by LoadEnv, sorted.
func EnvKeys() []string {
	c := DefaultConfig()
	fields := c.floatFields()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.env)
	}
	sort.Strings(keys)
	return keys
}

func validated(c Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

type floatField struct {
	name string // dotted yaml path, used in validation messages
	env  string
	ptr  *float64
}

func (c *Config) floatFields() []floatField {
	return []floatField{
		{"rect.top_left.x", "RECT_TOP_LEFT_X", &c.Rect.TopLeft.X},
		{"rect.top_left.y", "RECT_TOP_LEFT_Y", &c.Rect.TopLeft.Y},
		{"rect.bottom_right.x", "RECT_BOTTOM_RIGHT_X", &c.Rect.BottomRight.X},
		{"rect.bottom_right.y", "RECT_BOTTOM_RIGHT_Y", &c.Rect.BottomRight.Y},
		{"bounds.x.min", "BOUNDS_X_MIN", &c.Bounds.X.Min},
		{"bounds.x.max", "BOUNDS_X_MAX", &c.Bounds.X.Max},
		{"bounds.y.min", "BOUNDS_Y_MIN", &c.Bounds.Y.Min},
		{"bounds.y.max", "BOUNDS_Y_MAX", &c.Bounds.Y.Max},
		{"affine.scale_x", "AFFINE_SCALE_X", &c.Affine.ScaleX},
		{"affine.offset_x", "AFFINE_OFFSET_X", &c.Affine.OffsetX},
		{"affine.scale_y", "AFFINE_SCALE_Y", &c.Affine.ScaleY},
		{"affine.offset_y", "AFFINE_OFFSET_Y", &c.Affine.OffsetY},
		{"rotation", "ROTATION", &c.Rotation},
		{"map_size.x", "MAP_SIZE_X", &c.MapSize.X},
		{"map_size.y", "MAP_SIZE_Y", &c.MapSize.Y},
		{"texture_scale", "TEXTURE_SCALE", &c.TextureScale},
		{"world.x", "WORLD_X", &c.World.X},
		{"world.y", "WORLD_Y", &c.World.Y},
	}
}

// parsePreset parses PRESET_BETWEEN_BOILERS=56.2,6.23 into a preset named
// "between boilers".
func parsePreset(key, val string) (Preset, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, "PRESET_"), "_", " "))
	xs, ys, ok := strings.Cut(val, ",")
	if !ok {
		return Preset{}, fmt.Errorf("env config %s: want \"x,y\", got %q", key, val)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Preset{}, fmt.Errorf("env config %s: %w", key, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Preset{}, fmt.Errorf("env config %s: %w", key, err)
	}
	return Preset{Name: name, Vec2: Vec2{x, y}}, nil
}
