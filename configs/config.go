package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/prateek-arvo/sonar/pkg/fingerprint"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`
	ConfigDir    string `mapstructure:"config_dir"`
	DataDir      string `mapstructure:"data_dir"`

	// Capture configuration
	Capture CaptureConfig `mapstructure:"capture"`

	// Signal pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// CaptureConfig contains capture collaborator settings
type CaptureConfig struct {
	SampleRate      int     `mapstructure:"sample_rate"`
	DurationSeconds float64 `mapstructure:"duration_seconds"`
	ChirpStartHz    float64 `mapstructure:"chirp_start_hz"`
	ChirpEndHz      float64 `mapstructure:"chirp_end_hz"`
}

// PipelineConfig contains the fingerprint pipeline parameters
type PipelineConfig struct {
	FFTSize             int          `mapstructure:"fft_size"`
	SegmentCount        int          `mapstructure:"segment_count"`
	Bands               []BandConfig `mapstructure:"bands"`
	FeatureFamily       string       `mapstructure:"feature_family"`
	UseEnvelopeFeatures bool         `mapstructure:"use_envelope_features"`
	MatchThreshold      float64      `mapstructure:"match_threshold"`
}

// BandConfig is one frequency band range in Hz
type BandConfig struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision      int  `mapstructure:"precision"`
	Timestamps     bool `mapstructure:"timestamps"`
	Colors         bool `mapstructure:"colors"`
	MatrixSegments int  `mapstructure:"matrix_segments"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Capture.SampleRate <= 0 {
		return fmt.Errorf("capture sample rate must be positive")
	}

	if config.Capture.DurationSeconds <= 0 {
		return fmt.Errorf("capture duration must be positive")
	}

	if config.Capture.ChirpEndHz <= config.Capture.ChirpStartHz {
		return fmt.Errorf("chirp end frequency must exceed start frequency")
	}

	if config.Output.Precision < 0 {
		return fmt.Errorf("output precision cannot be negative")
	}

	// Pipeline invariants are owned by the pipeline config itself
	return config.PipelineSettings().Validate()
}

// PipelineSettings maps the app-level pipeline section onto the immutable
// pipeline Config value passed into every invocation
func (c *Config) PipelineSettings() *fingerprint.Config {
	cfg := &fingerprint.Config{
		FFTSize:             c.Pipeline.FFTSize,
		SegmentCount:        c.Pipeline.SegmentCount,
		FeatureFamily:       fingerprint.FeatureFamily(c.Pipeline.FeatureFamily),
		UseEnvelopeFeatures: c.Pipeline.UseEnvelopeFeatures,
		MatchThreshold:      c.Pipeline.MatchThreshold,
	}

	for _, band := range c.Pipeline.Bands {
		cfg.BandRanges = append(cfg.BandRanges, fingerprint.BandRange{
			Low:  band.Low,
			High: band.High,
		})
	}

	return cfg
}
