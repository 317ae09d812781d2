package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/store"
	"github.com/cwbudde/inkshape/internal/tune"
)

var (
	tuneMetric   string
	tuneIters    int
	tunePopSize  int
	tuneSeed     int64
	tunePerShape int
	tuneSlack    float64
	tuneName     string
	tuneDataDir  string
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Tune classifier threshold bands against a synthetic corpus",
	Long: `Rasterizes a corpus of randomized reference shapes, then searches
the classifier's threshold band edges with the mayfly optimizer. The best
band set is saved as a named profile together with its cost trace, ready
for 'recognize --profile'.`,
	RunE: runTune,
}

func init() {
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "fill", "Strategy to tune: fill, compactness")
	tuneCmd.Flags().IntVar(&tuneIters, "iters", 100, "Max iterations")
	tuneCmd.Flags().IntVar(&tunePopSize, "pop", 30, "Population size")
	tuneCmd.Flags().Int64Var(&tuneSeed, "seed", 42, "Random seed")
	tuneCmd.Flags().IntVar(&tunePerShape, "per-shape", 25, "Corpus samples per shape")
	tuneCmd.Flags().Float64Var(&tuneSlack, "slack", 40, "Band edge search radius (fixed-point units)")
	tuneCmd.Flags().StringVar(&tuneName, "name", "", "Profile name (required)")
	tuneCmd.Flags().StringVar(&tuneDataDir, "data-dir", "./data", "Base directory for profile storage")

	tuneCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(tuneCmd)
}

func runTune(cmd *cobra.Command, args []string) error {
	var metric classify.Metric
	switch tuneMetric {
	case "fill":
		metric = classify.MetricFill
	case "compactness":
		metric = classify.MetricCompactness
	default:
		return fmt.Errorf("unknown metric: %s", tuneMetric)
	}

	fs, err := store.NewFSStore(tuneDataDir)
	if err != nil {
		return fmt.Errorf("failed to open profile store: %w", err)
	}

	tw, err := store.NewTraceWriter(tuneDataDir, tuneName)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer tw.Close()

	slog.Info("Starting tuning run", "metric", tuneMetric, "iters", tuneIters, "pop", tunePopSize, "perShape", tunePerShape)
	start := time.Now()

	outcome, err := tune.Run(tune.Options{
		Metric:   metric,
		Iters:    tuneIters,
		PopSize:  tunePopSize,
		Seed:     tuneSeed,
		PerShape: tunePerShape,
		Slack:    tuneSlack,
		OnImprove: func(eval int, cost float64) {
			if err := tw.Append(store.TraceEntry{Eval: eval, Cost: cost, Timestamp: time.Now()}); err != nil {
				slog.Warn("Failed to append trace entry", "error", err)
			}
		},
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	p := &store.Profile{
		Name:        tuneName,
		Metric:      tuneMetric,
		Bands:       outcome.Bands,
		Accuracy:    outcome.Accuracy,
		InitialCost: outcome.InitialCost,
		BestCost:    outcome.BestCost,
		Samples:     outcome.Samples,
		Iters:       tuneIters,
		PopSize:     tunePopSize,
		Seed:        tuneSeed,
		CreatedAt:   time.Now().UTC(),
	}
	if err := fs.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	slog.Info("Tuning complete",
		"profile", tuneName,
		"initialCost", outcome.InitialCost,
		"bestCost", outcome.BestCost,
		"accuracy", outcome.Accuracy,
		"evals", outcome.Evals,
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)

	fmt.Printf("Profile:   %s\n", tuneName)
	fmt.Printf("Metric:    %s\n", tuneMetric)
	fmt.Printf("Cost:      %.4f -> %.4f\n", outcome.InitialCost, outcome.BestCost)
	fmt.Printf("Accuracy:  %.1f%% over %d samples\n", outcome.Accuracy*100, outcome.Samples)
	fmt.Printf("Trace:     %s\n", tw.Path())
	return nil
}
