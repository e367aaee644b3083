package configs

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/prateek-arvo/sonar/pkg/fingerprint"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Capture defaults: one second at 48 kHz, swept across the band table
	if !v.IsSet("capture.sample_rate") {
		v.Set("capture.sample_rate", 48000)
	}
	if !v.IsSet("capture.duration_seconds") {
		v.Set("capture.duration_seconds", 1.0)
	}
	if !v.IsSet("capture.chirp_start_hz") {
		v.Set("capture.chirp_start_hz", 2000.0)
	}
	if !v.IsSet("capture.chirp_end_hz") {
		v.Set("capture.chirp_end_hz", 12000.0)
	}

	// Pipeline defaults: the reference configuration
	if !v.IsSet("pipeline.fft_size") {
		v.Set("pipeline.fft_size", 512)
	}
	if !v.IsSet("pipeline.segment_count") {
		v.Set("pipeline.segment_count", 50)
	}
	if !v.IsSet("pipeline.bands") {
		v.Set("pipeline.bands", []map[string]float64{
			{"low": 2000, "high": 4000},
			{"low": 4000, "high": 6000},
			{"low": 6000, "high": 8000},
			{"low": 8000, "high": 10000},
			{"low": 10000, "high": 12000},
		})
	}
	if !v.IsSet("pipeline.feature_family") {
		v.Set("pipeline.feature_family", string(fingerprint.FeatureDeltaRatio))
	}
	if !v.IsSet("pipeline.use_envelope_features") {
		v.Set("pipeline.use_envelope_features", false)
	}
	if !v.IsSet("pipeline.match_threshold") {
		// Calibrated for delta-ratio features; the raw-band family uses 0.85
		v.Set("pipeline.match_threshold", fingerprint.DeltaRatioThreshold)
	}

	// Output defaults
	if !v.IsSet("output.precision") {
		v.Set("output.precision", 4)
	}
	if !v.IsSet("output.timestamps") {
		v.Set("output.timestamps", true)
	}
	if !v.IsSet("output.colors") {
		v.Set("output.colors", true)
	}
	if !v.IsSet("output.matrix_segments") {
		v.Set("output.matrix_segments", 3)
	}

	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "text")
	}
	if !v.IsSet("data_dir") {
		v.Set("data_dir", defaultDataDir())
	}
}

// defaultDataDir returns the baseline storage directory
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sonar"
	}
	return filepath.Join(home, ".local", "share", "sonar")
}

// InitDefaults applies defaults to the global viper instance. Called by
// the CLI after the config file has been located.
func InitDefaults() {
	setDefaults(viper.GetViper())
}
