package cmd

import (
	"fmt"
	"os"

	"github.com/phanxgames/floorcal"
	"github.com/phanxgames/floorcal/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configEnv names a calibration file used when --config is not given.
const configEnv = "FLOORCAL_CONFIG"

var (
	// Global flags
	configPath  string
	variantName string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "floorcal",
	Short: "Floor-plan calibration viewer and converter",
	Long: `Maps world coordinates onto a floor-plan image through a rotation,
range normalization and an optional affine scale/offset, and shows the result
on the image for calibration.

Without --config the built-in factory first floor calibration is used.

Examples:
  floorcal view --image 1st_floor.png              # Open the calibration viewer
  floorcal convert --texture 800x600 79 -64.5      # Map a world point to pixels
  floorcal validate --config factory.yaml          # Check a calibration file
  floorcal config dump --variant affine-scale      # Print the effective calibration`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "calibration file (.yaml, .json, .env, .cal); defaults to $"+configEnv)
	rootCmd.PersistentFlags().StringVar(&variantName, "variant", "", "override the transform variant (bounds, affine-scale, affine-bounds)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logging.Options{Verbose: verbose})
}

// loadConfig resolves the calibration from --config, $FLOORCAL_CONFIG or the
// built-in default, then applies --variant. The result is validated.
func loadConfig(log *zap.Logger) (floorcal.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}

	cfg := floorcal.DefaultConfig()
	if path != "" {
		c, err := floorcal.LoadFile(path)
		if err != nil {
			return floorcal.Config{}, err
		}
		cfg = c
	}

	if variantName != "" {
		v, err := floorcal.ParseVariant(variantName)
		if err != nil {
			return floorcal.Config{}, err
		}
		cfg.Variant = v
		if err := cfg.Validate(); err != nil {
			return floorcal.Config{}, err
		}
	}

	log.Debug("calibration loaded",
		zap.String("path", path),
		zap.String("name", cfg.Name),
		zap.Stringer("variant", cfg.Variant),
		zap.String("fingerprint", cfg.Fingerprint()),
	)
	return cfg, nil
}
