package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/engine"
	"github.com/cwbudde/inkshape/internal/store"
)

var (
	imagePath  string
	strokePath string
	recMode    string
	strategy   string
	profile    string
	dataDir    string
	minInk     int
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize",
	Short: "Recognize a shape or digit from an image or stroke file",
	Long: `Loads ink onto the canvas from an image file or a JSON stroke file
and runs one recognition cycle, printing the detected label and confidence.

Image files are resized to the canvas and thresholded to ink. Stroke files
are JSON arrays of [x,y] points in canvas coordinates, replayed one draw
event per tick.`,
	RunE: runRecognize,
}

func init() {
	recognizeCmd.Flags().StringVar(&imagePath, "image", "", "Input image path")
	recognizeCmd.Flags().StringVar(&strokePath, "stroke", "", "Stroke file path (JSON array of [x,y] points)")
	recognizeCmd.Flags().StringVar(&recMode, "mode", "shape", "Recognition mode: shape, digit")
	recognizeCmd.Flags().StringVar(&strategy, "strategy", "filled", "Classifier strategy: filled, outline, incremental")
	recognizeCmd.Flags().StringVar(&profile, "profile", "", "Tuned threshold profile name")
	recognizeCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for profile storage")
	recognizeCmd.Flags().IntVar(&minInk, "min-ink", 0, "Minimum ink pixels before the canvas counts as drawn")

	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
	if imagePath == "" && strokePath == "" {
		return fmt.Errorf("either --image or --stroke is required")
	}
	if imagePath != "" && strokePath != "" {
		return fmt.Errorf("--image and --stroke are mutually exclusive")
	}
	if strategy == "incremental" && strokePath == "" {
		return fmt.Errorf("the incremental strategy needs stroke input")
	}

	mode, err := engine.ParseMode(recMode)
	if err != nil {
		return err
	}

	cls, err := buildClassifier()
	if err != nil {
		return err
	}

	eng := engine.New(engine.Config{Mode: mode, Classifier: cls, MinInk: minInk})

	if imagePath != "" {
		bm, err := loadCanvasImage(imagePath)
		if err != nil {
			return err
		}
		if err := eng.LoadBitmap(bm); err != nil {
			return err
		}
	} else {
		points, err := loadStrokeFile(strokePath)
		if err != nil {
			return err
		}
		accepted := eng.DrawStroke(points)
		slog.Info("Stroke replayed", "points", len(points), "accepted", accepted)
	}

	if strategy == "incremental" {
		r := eng.Tracker().Classify()
		fmt.Printf("Label:      %s\n", r.Label)
		fmt.Printf("Confidence: %d\n", r.Confidence)
		return nil
	}

	result, err := eng.RunRecognition()
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	fmt.Printf("Label:      %s\n", result.Label())
	fmt.Printf("Confidence: %d\n", result.Confidence)
	if !result.Features.Empty {
		fmt.Printf("Ink pixels: %d\n", result.Features.PixelCount)
		fmt.Printf("Bounds:     %dx%d\n", result.Features.BBox.Width(), result.Features.BBox.Height())
	}
	return nil
}

// buildClassifier resolves the --strategy and --profile flags. A profile
// overrides the built-in bands but keeps its own metric.
func buildClassifier() (*classify.GeomClassifier, error) {
	if profile != "" {
		fs, err := store.NewFSStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open profile store: %w", err)
		}
		p, err := fs.LoadProfile(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		slog.Info("Loaded tuned profile", "name", p.Name, "metric", p.Metric, "accuracy", p.Accuracy)
		return p.Classifier()
	}

	switch strategy {
	case "filled", "incremental":
		return classify.NewFilledClassifier(), nil
	case "outline":
		return classify.NewOutlineClassifier(), nil
	}
	return nil, fmt.Errorf("unknown strategy: %s", strategy)
}

// loadCanvasImage decodes an image file, scales it onto the canvas and
// thresholds dark pixels to ink.
func loadCanvasImage(path string) (*canvas.Bitmap, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	resized := imaging.Resize(img, canvas.Width, canvas.Height, imaging.Lanczos)
	gray := imaging.Grayscale(resized)

	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := gray.NRGBAAt(x, y)
			if c.R < 128 {
				bm.SetPixel(x-bounds.Min.X, y-bounds.Min.Y, true)
			}
		}
	}

	slog.Info("Loaded image", "path", path, "ink", countInk(bm))
	return bm, nil
}

func countInk(bm *canvas.Bitmap) int {
	n := 0
	for a := 0; a < bm.Size(); a++ {
		if bm.Get(a) {
			n++
		}
	}
	return n
}

// loadStrokeFile parses a JSON array of [x,y] points.
func loadStrokeFile(path string) ([][2]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stroke file: %w", err)
	}

	var points [][2]int
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("failed to parse stroke file: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("stroke file contains no points")
	}
	return points, nil
}
