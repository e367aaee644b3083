package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/fingerprint"
	"github.com/prateek-arvo/sonar/pkg/session"
)

var (
	pipelineTestSampleRate int
	pipelineTestDuration   time.Duration
	pipelineTestEnvelope   bool
)

var pipelineTestCmd = &cobra.Command{
	Use:   "pipeline-test",
	Short: "Self-test the pipeline with a synthesized sweep",
	Long: `Synthesizes the excitation sweep locally, runs it through the full
pipeline twice and verifies the invariants: matrix shape, row sums,
determinism, and a self-comparison match at the configured threshold.
Useful for validating a build or a custom configuration without any
recorded captures.`,
	RunE: runPipelineTest,
}

func init() {
	rootCmd.AddCommand(pipelineTestCmd)

	pipelineTestCmd.Flags().IntVar(&pipelineTestSampleRate, "sample-rate", 48000,
		"sample rate of the synthesized capture")
	pipelineTestCmd.Flags().DurationVar(&pipelineTestDuration, "duration", time.Second,
		"duration of the synthesized capture")
	pipelineTestCmd.Flags().BoolVar(&pipelineTestEnvelope, "envelope", false,
		"include envelope-modulation features")
}

func runPipelineTest(cmd *cobra.Command, args []string) error {
	timer := NewPerformanceTimer()

	cfg := fingerprint.DefaultConfig()
	if pipelineTestEnvelope {
		cfg = fingerprint.VibrationConfig()
	}

	statusHead.Println("Pipeline self-test")
	fmt.Printf("   fft size:       %d\n", cfg.FFTSize)
	fmt.Printf("   segments:       %d\n", cfg.SegmentCount)
	fmt.Printf("   bands:          %d\n", len(cfg.BandRanges))
	fmt.Printf("   threshold:      %.2f\n", cfg.MatchThreshold)
	fmt.Printf("   envelope:       %v\n\n", cfg.UseEnvelopeFeatures)

	timer.StartEvent("synthesis")
	sweep := audio.LinearChirp(
		cfg.BandRanges[0].Low,
		cfg.BandRanges[len(cfg.BandRanges)-1].High,
		pipelineTestDuration,
		pipelineTestSampleRate)
	timer.StopEvent("synthesis")

	store := session.NewBaselineStore()
	sess, err := session.NewSession(cfg, audio.StaticCapturer(sweep), store)
	if err != nil {
		return err
	}

	timer.StartEvent("baseline_capture")
	first, err := sess.Capture(context.Background())
	if err != nil {
		statusBad.Printf("FAIL: baseline capture: %v\n", err)
		return err
	}
	timer.StopEvent("baseline_capture")

	// Matrix shape and row normalization
	if len(first.BandMatrix) != cfg.SegmentCount {
		return fmt.Errorf("expected %d matrix rows, got %d", cfg.SegmentCount, len(first.BandMatrix))
	}
	for i := range first.BandMatrix {
		sum := first.BandMatrix.RowSum(i)
		if sum < 1-1e-6 || sum > 1+1e-6 {
			return fmt.Errorf("matrix row %d sums to %.9f, expected 1.0", i, sum)
		}
	}
	statusGood.Println("   matrix shape and row sums OK")

	if err := sess.SaveBaseline(); err != nil {
		return err
	}

	timer.StartEvent("verify_capture")
	second, err := sess.Capture(context.Background())
	if err != nil {
		statusBad.Printf("FAIL: verify capture: %v\n", err)
		return err
	}
	timer.StopEvent("verify_capture")

	// Determinism: the identical buffer must reproduce the identical vector
	for i := range first.Features {
		if first.Features[i] != second.Features[i] {
			return fmt.Errorf("determinism violation at feature %d: %v vs %v",
				i, first.Features[i], second.Features[i])
		}
	}
	statusGood.Println("   determinism OK")

	result, err := sess.Compare()
	if err != nil {
		return err
	}
	if result.Outcome != session.OutcomeMatch {
		return fmt.Errorf("self-comparison outcome %s, similarity %.6f", result.Outcome, result.Result.Similarity)
	}
	statusGood.Printf("   self-comparison MATCH (similarity %.6f)\n", result.Result.Similarity)

	timer.PrintSummary()
	return nil
}
