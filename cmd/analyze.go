package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prateek-arvo/sonar/internal/app"
	"github.com/prateek-arvo/sonar/pkg/audio"
)

var (
	analyzeTimeout time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [capture.wav]",
	Short: "Run the fingerprint pipeline on a recorded capture",
	Long: `Runs the full signal pipeline on a recorded capture window and prints
the resulting fingerprint summary, including the leading rows of the
normalized band matrix for inspection. Nothing is stored or compared.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().DurationVarP(&analyzeTimeout, "timeout", "t", 30*time.Second,
		"timeout for capture and processing")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	appCtx := &app.Context{
		InputFile:    args[0],
		OutputFormat: viper.GetString("output_format"),
		Timeout:      analyzeTimeout,
		Verbose:      viper.GetBool("verbose"),
		Quiet:        quiet,
	}

	verifyApp, err := app.NewVerifyApp(appCtx)
	if err != nil {
		return err
	}

	timer := NewPerformanceTimer()
	timer.StartEvent("pipeline")

	fp, err := verifyApp.Capture(ctx, audio.NewWavCapturer(args[0]))
	if err != nil {
		statusBad.Fprintf(os.Stderr, "Capture failed: %v\n", err)
		return err
	}
	timer.StopEvent("pipeline")

	summary := app.SummarizeFingerprint(fp, verifyApp.Config().Output.MatrixSegments)

	if appCtx.OutputFormat == "text" {
		printFingerprintSummary(summary)
		if viper.GetBool("verbose") {
			timer.PrintSummary()
		}
		return nil
	}

	data, err := app.FormatReport(summary, appCtx.OutputFormat)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printFingerprintSummary(summary *app.FingerprintSummary) {
	precision := viper.GetInt("output.precision")

	statusHead.Println("Fingerprint")
	fmt.Printf("   id:              %s\n", summary.ID)
	fmt.Printf("   sample rate:     %d Hz\n", summary.SampleRate)
	fmt.Printf("   duration:        %.3f s\n", summary.DurationSecs)
	fmt.Printf("   segments:        %d\n", summary.SegmentCount)
	fmt.Printf("   bands:           %d\n", summary.BandCount)
	fmt.Printf("   feature length:  %d\n", summary.FeatureLength)

	if summary.Degenerate {
		statusWarn.Println("   degenerate capture: similarity scores will not be meaningful")
	}

	if len(summary.MatrixHead) > 0 {
		statusHead.Printf("\nNormalized band matrix (first %d segments)\n", len(summary.MatrixHead))
		for i, row := range summary.MatrixHead {
			fmt.Printf("   seg %2d:", i)
			for _, v := range row {
				fmt.Printf(" %.*f", precision, v)
			}
			fmt.Println()
		}
	}
}
