package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phanxgames/floorcal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	textureFlag string
	inverse     bool
	showTrace   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] X Y",
	Short: "Convert a world point to normalized and pixel coordinates",
	Long: `Runs a world point through the calibration pipeline and prints the
normalized texture coordinate and, with --texture, the pixel coordinate.

With --inverse the input is a normalized coordinate (or a pixel coordinate
when --texture is set) and the world point is printed.

X and Y may be negative. A leading "--" also ends flag parsing.

Examples:
  floorcal convert 79 -64.5
  floorcal convert -66.5 67.4
  floorcal convert -- -66.5 67.4
  floorcal convert --texture 800x600 --trace 56.2 6.23
  floorcal convert --inverse --texture 800x600 400 300`,
	// Flags are parsed in RunE so that a negative X is not read as a
	// shorthand flag.
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := cmd.Flags()
		if err := fs.Parse(numbersAsArgs(fs, args)); err != nil {
			return err
		}
		if help, _ := fs.GetBool("help"); help {
			return cmd.Help()
		}
		rest := fs.Args()
		if err := cobra.ExactArgs(2)(cmd, rest); err != nil {
			return err
		}
		return runConvert(cmd, rest)
	},
}

func init() {
	convertCmd.Flags().StringVarP(&textureFlag, "texture", "t", "", "texture size as WIDTHxHEIGHT")
	convertCmd.Flags().BoolVarP(&inverse, "inverse", "i", false, "convert normalized (or pixel) coordinates back to world")
	convertCmd.Flags().BoolVar(&showTrace, "trace", false, "print every pipeline stage")
	convertCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(convertCmd)
}

// numbersAsArgs inserts "--" before the first positional argument when it
// is a negative number, so pflag does not read it as a shorthand flag.
// Flag values are skipped; an existing "--" or a first positional that is
// not negative leaves args unchanged.
func numbersAsArgs(fs *pflag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--" || !strings.HasPrefix(a, "-"):
			return args
		case isNumber(a):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case takesValue(fs, a):
			i++
		}
	}
	return args
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// takesValue reports whether the flag token a consumes the next argument.
func takesValue(fs *pflag.FlagSet, a string) bool {
	if strings.Contains(a, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(a, "--"); ok {
		f = fs.Lookup(name)
	} else if len(a) == 2 {
		f = fs.ShorthandLookup(a[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}

func runConvert(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	in, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	var tex *floorcal.TextureSize
	if textureFlag != "" {
		t, err := parseTexture(textureFlag)
		if err != nil {
			return err
		}
		tex = &t
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	p, err := floorcal.NewPipeline(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "calibration: %s (%s)\n", cfg.Name, cfg.Variant)

	if inverse {
		var world floorcal.Vec2
		if tex != nil {
			printPoint(out, "pixels", in)
			world = p.FromPixels(in, *tex)
		} else {
			printPoint(out, "normalized", in)
			world = p.FromNormalized(in)
		}
		printPoint(out, "world", world)
		return nil
	}

	t := p.Stages(in)
	printPoint(out, "world", t.World)
	if showTrace {
		printPoint(out, "affine", t.Affine)
		printPoint(out, "rotated", t.Rotated)
	}
	printPoint(out, "normalized", t.Normalized)
	if tex != nil {
		printPoint(out, "pixels", p.WorldToPixels(in, *tex))
	}
	if !t.Normalized.IsFinite() {
		log.Warn("non-finite result", zap.Stringer("variant", cfg.Variant))
	}
	return nil
}

func printPoint(w io.Writer, label string, p floorcal.Vec2) {
	fmt.Fprintf(w, "%-11s %.4f, %.4f\n", label+":", p.X, p.Y)
}

func parsePoint(xs, ys string) (floorcal.Vec2, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return floorcal.Vec2{}, fmt.Errorf("parse X %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return floorcal.Vec2{}, fmt.Errorf("parse Y %q: %w", ys, err)
	}
	return floorcal.Vec2{X: x, Y: y}, nil
}

// parseTexture reads a WIDTHxHEIGHT size such as 800x600.
func parseTexture(s string) (floorcal.TextureSize, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return floorcal.TextureSize{}, fmt.Errorf("texture size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return floorcal.TextureSize{}, fmt.Errorf("texture width %q: %w", ws, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return floorcal.TextureSize{}, fmt.Errorf("texture height %q: %w", hs, err)
	}
	if w <= 0 || h <= 0 {
		return floorcal.TextureSize{}, fmt.Errorf("texture size %q: dimensions must be positive", s)
	}
	return floorcal.TextureSize{Width: w, Height: h}, nil
}
