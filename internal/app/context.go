package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prateek-arvo/sonar/configs"
	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/fingerprint"
	"github.com/prateek-arvo/sonar/pkg/logging"
	"github.com/prateek-arvo/sonar/pkg/session"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	InputFile    string
	BaselineFile string
	OutputFormat string
	Timeout      time.Duration
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// VerifyApp handles the verification application lifecycle
type VerifyApp struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
}

// NewVerifyApp creates a new verification application
func NewVerifyApp(ctx *Context) (*VerifyApp, error) {
	// Set up logging
	logger := setupLogging(ctx)
	ctx.Logger = logger

	// Load configuration
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	ctx.Config = config

	if !ctx.Quiet && !ctx.Verbose {
		logger.SetLevel(logging.ParseLevel(config.LogLevel))
	}

	logger.Debug("Verification application initialized", logging.Fields{
		"input_file":    ctx.InputFile,
		"baseline_file": ctx.BaselineFile,
		"output_format": ctx.OutputFormat,
		"fft_size":      config.Pipeline.FFTSize,
		"segment_count": config.Pipeline.SegmentCount,
		"bands":         len(config.Pipeline.Bands),
	})

	return &VerifyApp{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// Config returns the loaded application configuration
func (app *VerifyApp) Config() *configs.Config {
	return app.config
}

// Capture runs the pipeline on one capture window from the given source
func (app *VerifyApp) Capture(ctx context.Context, capturer audio.Capturer) (*fingerprint.Fingerprint, error) {
	sess, err := session.NewSession(app.config.PipelineSettings(), capturer, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	fp, err := sess.Capture(ctx)
	if err != nil {
		return nil, err
	}

	return fp, nil
}

// SaveBaseline captures and persists a new baseline, overwriting any
// existing one
func (app *VerifyApp) SaveBaseline(ctx context.Context, capturer audio.Capturer) (*fingerprint.Fingerprint, error) {
	fp, err := app.Capture(ctx, capturer)
	if err != nil {
		return nil, err
	}

	if err := SaveBaselineFile(app.ctx.BaselineFile, fp); err != nil {
		return nil, fmt.Errorf("failed to persist baseline: %w", err)
	}

	app.logger.Info("Baseline saved", logging.Fields{
		"baseline_file":  app.ctx.BaselineFile,
		"fingerprint_id": fp.ID,
		"feature_length": len(fp.Features),
	})

	return fp, nil
}

// Verify captures a fingerprint and compares it against the persisted
// baseline. The NoBaseline outcome is returned, not raised.
func (app *VerifyApp) Verify(ctx context.Context, capturer audio.Capturer) (*session.CompareResult, *fingerprint.Fingerprint, error) {
	store := session.NewBaselineStore()

	baseline, found, err := LoadBaselineFile(app.ctx.BaselineFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load baseline: %w", err)
	}
	if found {
		store.Save(baseline.Features)
	}

	sess, err := session.NewSession(app.config.PipelineSettings(), capturer, store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	fp, err := sess.Capture(ctx)
	if err != nil {
		return nil, nil, err
	}

	result, err := sess.Compare()
	if err != nil {
		return nil, fp, err
	}

	return result, fp, nil
}

// setupLogging configures logging based on context
func setupLogging(ctx *Context) logging.Logger {
	logger := logging.GetGlobalLogger()

	switch {
	case ctx.Quiet:
		logger.SetLevel(logging.ErrorLevel)
	case ctx.Verbose:
		logger.SetLevel(logging.DebugLevel)
	}

	return logger.WithFields(logging.Fields{
		"component": "app",
	})
}
