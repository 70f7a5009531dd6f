// Command edt computes the Euclidean distance transform of an image and
// writes the result as a normalized grayscale image.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/edt"
	"github.com/gogpu/edt/internal/gray"
)

var (
	fastMarching  bool
	parallel      bool
	workers       int
	threshold     uint8
	invert        bool
	progressSteps int
	scale         int
	smooth        bool
	output        string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "edt [flags] input-image",
	Short: "Compute the Euclidean distance transform of an image",
	Long: `edt reads an image (PNG, JPEG or BMP), thresholds it to a binary
feature mask, computes the per-pixel distance to the nearest feature and
writes the result as a grayscale image normalized to the farthest pixel.

Examples:
  # Exact transform of logo.png, output to edt.png
  edt logo.png

  # Parallel exact transform
  edt --parallel logo.png

  # Fast Marching, dumping a wavefront snapshot every 1000 steps
  edt --fmm --progress 1000 logo.png

  # Treat dark pixels as features instead of bright ones
  edt --invert logo.png`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&fastMarching, "fmm", "f", false, "use the Fast Marching method (approximate, faster)")
	rootCmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "parallelize the exact transform across all CPUs")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "exact number of workers for --parallel (0 = all CPUs)")
	rootCmd.Flags().Uint8VarP(&threshold, "threshold", "t", 127, "luma threshold; brighter pixels are features")
	rootCmd.Flags().BoolVar(&invert, "invert", false, "invert the feature mask after thresholding")
	rootCmd.Flags().IntVar(&progressSteps, "progress", 0, "with --fmm, write a wavefront snapshot every N freeze steps (0 = never)")
	rootCmd.Flags().IntVar(&scale, "scale", 1, "upscale the output by an integer factor")
	rootCmd.Flags().BoolVar(&smooth, "smooth", false, "with --scale, interpolate instead of keeping pixel boundaries crisp")
	rootCmd.Flags().StringVarP(&output, "output", "o", "edt.png", "output file (.png, .bmp or .jpg)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		edt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	img, err := gray.LoadImage(args[0])
	if err != nil {
		return err
	}
	r := edt.RasterFromImage(img, threshold)
	if invert {
		r = r.Invert()
	}
	fmt.Printf("dimensions %dx%d\n", r.Width, r.Height)

	start := time.Now()
	var field *edt.Field
	switch {
	case fastMarching && progressSteps > 0:
		field, err = edt.FMM(r, edt.WithProgress(snapshotEvery(progressSteps)))
	case fastMarching:
		field, err = edt.FMM(r)
	case workers > 0:
		field, err = edt.Exact(r, edt.WithWorkers(workers))
	case parallel:
		field, err = edt.Exact(r, edt.WithParallel())
	default:
		field, err = edt.Exact(r)
	}
	if err != nil {
		return err
	}
	fmt.Printf("time: %v\n", time.Since(start))

	var out image.Image = gray.FromField(field)
	if scale > 1 {
		if smooth {
			b := out.Bounds()
			out = gray.Smooth(out, b.Dx()*scale, b.Dy()*scale)
		} else {
			out = gray.Scale(out, scale)
		}
	}
	return gray.SaveImage(output, out)
}

// snapshotEvery returns a progress callback that writes the partial field
// with the current wavefront painted red, once every n freeze steps.
func snapshotEvery(n int) edt.ProgressFunc {
	step := 0
	return func(s edt.Step) error {
		if step%n == 0 {
			img := gray.Overlay(s.Field, s.Band())
			if err := gray.SaveImage(fmt.Sprintf("edt%06d.png", step), img); err != nil {
				return err
			}
		}
		step++
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
