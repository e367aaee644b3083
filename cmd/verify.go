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
	"github.com/prateek-arvo/sonar/pkg/fingerprint"
	"github.com/prateek-arvo/sonar/pkg/session"
)

var (
	verifyTimeout time.Duration
)

var verifyCmd = &cobra.Command{
	Use:   "verify [capture.wav]",
	Short: "Verify a capture against the stored baseline",
	Long: `Runs the pipeline on a recorded capture window and scores the resulting
fingerprint against the stored baseline. The exit code reflects the
outcome: 0 for a match, 1 for no match or a missing baseline.

A baseline captured with a different pipeline configuration (segment
count, band table, envelope features) cannot be compared and fails with
a configuration mismatch error rather than reporting a low score.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVarP(&verifyTimeout, "timeout", "t", 30*time.Second,
		"timeout for capture and processing")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	appCtx := &app.Context{
		InputFile:    args[0],
		BaselineFile: resolveBaselinePath(),
		OutputFormat: viper.GetString("output_format"),
		Timeout:      verifyTimeout,
		Verbose:      viper.GetBool("verbose"),
		Quiet:        quiet,
	}

	verifyApp, err := app.NewVerifyApp(appCtx)
	if err != nil {
		return err
	}

	result, fp, err := verifyApp.Verify(ctx, audio.NewWavCapturer(args[0]))
	if err != nil {
		if fingerprint.IsConfigMismatch(err) {
			statusBad.Fprintln(os.Stderr, "Configuration mismatch: baseline and capture were produced with different pipeline settings")
		}
		return err
	}

	report := &app.VerifyReport{
		Outcome:     result.Outcome,
		Similarity:  result.Result,
		Fingerprint: app.SummarizeFingerprint(fp, verifyApp.Config().Output.MatrixSegments),
	}

	if appCtx.OutputFormat != "text" {
		data, err := app.FormatReport(report, appCtx.OutputFormat)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	} else {
		printVerifyReport(report)
	}

	if result.Outcome != session.OutcomeMatch {
		// Non-zero exit without cobra's usage noise
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(1)
	}
	return nil
}

func printVerifyReport(report *app.VerifyReport) {
	precision := viper.GetInt("output.precision")

	switch report.Outcome {
	case session.OutcomeMatch:
		statusGood.Println("MATCH")
	case session.OutcomeNoMatch:
		statusBad.Println("NO MATCH")
	case session.OutcomeNoBaseline:
		statusWarn.Println("NO BASELINE")
		fmt.Println("   No baseline is stored; run 'sonar baseline' first.")
		return
	}

	if report.Similarity != nil {
		fmt.Printf("   similarity:  %.*f\n", precision, report.Similarity.Similarity)
		fmt.Printf("   threshold:   %.*f\n", precision, report.Similarity.Threshold)
	}
	if report.Fingerprint != nil && report.Fingerprint.Degenerate {
		statusWarn.Println("   degenerate capture: score is not meaningful")
	}
}
