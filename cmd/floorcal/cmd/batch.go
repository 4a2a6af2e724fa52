package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/phanxgames/floorcal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	batchTexture string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Convert a CSV of world points",
	Long: `Reads "x,y" rows from a file (or stdin when no file or "-" is given)
and writes "x,y,nx,ny" rows, plus "px,py" with --texture. Rows are converted
in parallel; output keeps the input order.

Examples:
  floorcal batch boilers.csv
  floorcal batch --texture 1024x768 < boilers.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchTexture, "texture", "t", "", "texture size as WIDTHxHEIGHT")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "conversion workers (0 = GOMAXPROCS)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	var tex *floorcal.TextureSize
	if batchTexture != "" {
		t, err := parseTexture(batchTexture)
		if err != nil {
			return err
		}
		tex = &t
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open points: %w", err)
		}
		defer f.Close()
		in = f
	}
	points, err := readPoints(in)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	p, err := floorcal.NewPipeline(cfg)
	if err != nil {
		return err
	}

	norm, err := p.ToNormalizedAll(cmd.Context(), points, batchWorkers)
	if err != nil {
		return err
	}
	log.Debug("batch converted", zap.Int("points", len(points)), zap.Stringer("variant", cfg.Variant))

	w := csv.NewWriter(cmd.OutOrStdout())
	for i, n := range norm {
		row := []string{ftoa(points[i].X), ftoa(points[i].Y), ftoa(n.X), ftoa(n.Y)}
		if tex != nil {
			px := p.ToPixels(n, float64(tex.Width), float64(tex.Height))
			row = append(row, ftoa(px.X), ftoa(px.Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readPoints parses "x,y" rows. Blank lines and lines starting with # are
// skipped.
func readPoints(r io.Reader) ([]floorcal.Vec2, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var points []floorcal.Vec2
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read points: %w", err)
		}
		pt, err := parsePoint(rec[0], rec[1])
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read points: line %d: %w", line, err)
		}
		points = append(points, pt)
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
