package cmd

import (
	"fmt"
	"os"

	"github.com/phanxgames/floorcal/viewer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	imagePath     string
	scriptPath    string
	screenshotDir string
	showFPS       bool
	windowWidth   int
	windowHeight  int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the calibration viewer",
	Long: `Draws the floor plan with a marker at the transformed world point.

Controls:
  sliders      move the world point
  arrows       nudge the world point (shift for fine steps)
  1-9          jump to a preset
  V            cycle the transform variant
  R            reset point and view
  wheel        zoom
  right drag   pan
  P            screenshot
  F            toggle FPS
  Esc          quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&imagePath, "image", "", "floor plan image (PNG or JPEG); a grid is shown when empty")
	viewCmd.Flags().StringVar(&scriptPath, "script", "", "JSON script to drive the viewer")
	viewCmd.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "directory for screenshots")
	viewCmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS/TPS")
	viewCmd.Flags().IntVar(&windowWidth, "width", 1280, "window width")
	viewCmd.Flags().IntVar(&windowHeight, "height", 960, "window height")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	opts := viewer.Options{
		Config:        cfg,
		Logger:        log,
		ScreenshotDir: screenshotDir,
		ShowFPS:       showFPS,
	}
	if imagePath != "" {
		tex, err := viewer.LoadTexture(imagePath, cfg.TextureScale)
		if err != nil {
			return err
		}
		log.Info("texture loaded",
			zap.String("path", imagePath),
			zap.Int("width", tex.Size.Width),
			zap.Int("height", tex.Size.Height),
		)
		opts.Texture = tex
	}
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		r, err := viewer.LoadScript(data)
		if err != nil {
			return err
		}
		opts.Script = r
	}

	v, err := viewer.New(opts)
	if err != nil {
		return err
	}
	return viewer.Run(v, viewer.RunConfig{
		Title:  "floorcal - " + cfg.Name,
		Width:  windowWidth,
		Height: windowHeight,
	})
}
