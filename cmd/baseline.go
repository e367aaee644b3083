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
	baselineTimeout time.Duration
)

var baselineCmd = &cobra.Command{
	Use:   "baseline [capture.wav]",
	Short: "Capture and store a new baseline fingerprint",
	Long: `Runs the pipeline on a recorded capture window and stores the resulting
fingerprint as the reference baseline, overwriting any previous one.
Later verify runs are scored against this baseline.`,
	Args: cobra.ExactArgs(1),
	RunE: runBaseline,
}

func init() {
	rootCmd.AddCommand(baselineCmd)

	baselineCmd.Flags().DurationVarP(&baselineTimeout, "timeout", "t", 30*time.Second,
		"timeout for capture and processing")
}

func runBaseline(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), baselineTimeout)
	defer cancel()

	appCtx := &app.Context{
		InputFile:    args[0],
		BaselineFile: resolveBaselinePath(),
		OutputFormat: viper.GetString("output_format"),
		Timeout:      baselineTimeout,
		Verbose:      viper.GetBool("verbose"),
		Quiet:        quiet,
	}

	verifyApp, err := app.NewVerifyApp(appCtx)
	if err != nil {
		return err
	}

	fp, err := verifyApp.SaveBaseline(ctx, audio.NewWavCapturer(args[0]))
	if err != nil {
		statusBad.Fprintf(os.Stderr, "Baseline capture failed: %v\n", err)
		return err
	}

	statusGood.Printf("Baseline stored: %s\n", appCtx.BaselineFile)
	fmt.Printf("   fingerprint id:  %s\n", fp.ID)
	fmt.Printf("   feature length:  %d\n", len(fp.Features))
	if fp.Diagnostics.Degenerate || fp.Diagnostics.ShortBuffer {
		statusWarn.Println("   degenerate capture stored as baseline; verification against it is unreliable")
	}

	return nil
}
