package fingerprint

import "fmt"

const epsilon = 1e-12

// FeatureFamily selects which feature construction the pipeline runs.
// Thresholds are calibrated per family and must never be mixed: the
// delta-ratio family matches at 0.92, the raw-band family at 0.85.
type FeatureFamily string

const (
	FeatureDeltaRatio FeatureFamily = "delta_ratio"
	FeatureRawBand    FeatureFamily = "raw_band"
)

// Family-paired decision thresholds
const (
	DeltaRatioThreshold = 0.92
	RawBandThreshold    = 0.85
)

// BandRange is a half-open frequency interval [Low, High) in Hz
type BandRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Config holds the immutable pipeline parameters. Baseline capture and
// comparison capture must run with the same Config; the resulting feature
// vectors are otherwise incomparable.
type Config struct {
	FFTSize             int           `json:"fft_size"`
	SegmentCount        int           `json:"segment_count"`
	BandRanges          []BandRange   `json:"band_ranges"`
	FeatureFamily       FeatureFamily `json:"feature_family"`
	UseEnvelopeFeatures bool          `json:"use_envelope_features"`
	MatchThreshold      float64       `json:"match_threshold"`
}

// DefaultConfig returns the reference pipeline configuration: 512-point
// FFT, 50 segments, five bands spanning 2-12 kHz, delta-ratio features
func DefaultConfig() *Config {
	return &Config{
		FFTSize:      512,
		SegmentCount: 50,
		BandRanges: []BandRange{
			{Low: 2000, High: 4000},
			{Low: 4000, High: 6000},
			{Low: 6000, High: 8000},
			{Low: 8000, High: 10000},
			{Low: 10000, High: 12000},
		},
		FeatureFamily:       FeatureDeltaRatio,
		UseEnvelopeFeatures: false,
		MatchThreshold:      DeltaRatioThreshold,
	}
}

// RawBandConfig returns the legacy raw-band variant with its own
// calibrated threshold
func RawBandConfig() *Config {
	cfg := DefaultConfig()
	cfg.FeatureFamily = FeatureRawBand
	cfg.MatchThreshold = RawBandThreshold
	return cfg
}

// VibrationConfig returns the vibration-aware variant with envelope
// modulation features appended
func VibrationConfig() *Config {
	cfg := DefaultConfig()
	cfg.UseEnvelopeFeatures = true
	return cfg
}

// Validate checks the configuration invariants
func (c *Config) Validate() error {
	if c.FFTSize < 2 || c.FFTSize&(c.FFTSize-1) != 0 {
		return NewPipelineError("config", ErrCodeInvalidConfig,
			fmt.Sprintf("fft size must be a power of two, got %d", c.FFTSize), nil)
	}

	if c.SegmentCount < 2 {
		return NewPipelineError("config", ErrCodeInvalidConfig,
			fmt.Sprintf("segment count must be at least 2, got %d", c.SegmentCount), nil)
	}

	if len(c.BandRanges) == 0 {
		return NewPipelineError("config", ErrCodeInvalidConfig,
			"at least one band range is required", nil)
	}

	prev := 0.0
	for i, band := range c.BandRanges {
		if band.Low < 0 || band.High <= band.Low {
			return NewPipelineError("config", ErrCodeInvalidConfig,
				fmt.Sprintf("band %d has invalid range [%.1f, %.1f)", i, band.Low, band.High), nil)
		}
		if band.Low < prev {
			return NewPipelineError("config", ErrCodeInvalidConfig,
				fmt.Sprintf("band %d overlaps or precedes band %d", i, i-1), nil)
		}
		prev = band.High
	}

	switch c.FeatureFamily {
	case FeatureDeltaRatio, FeatureRawBand:
	default:
		return NewPipelineError("config", ErrCodeInvalidConfig,
			fmt.Sprintf("unknown feature family %q", c.FeatureFamily), nil)
	}

	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return NewPipelineError("config", ErrCodeInvalidConfig,
			fmt.Sprintf("match threshold must be in (0, 1], got %f", c.MatchThreshold), nil)
	}

	return nil
}

// FeatureLength returns the feature vector length this configuration
// produces
func (c *Config) FeatureLength() int {
	bands := len(c.BandRanges)

	var length int
	switch c.FeatureFamily {
	case FeatureRawBand:
		length = c.SegmentCount * bands
	default:
		length = (c.SegmentCount - 1) * bands
	}

	if c.UseEnvelopeFeatures {
		length += 3
	}
	return length
}

// Clone returns a deep copy so callers can derive variants without
// mutating a shared config
func (c *Config) Clone() *Config {
	clone := *c
	clone.BandRanges = make([]BandRange, len(c.BandRanges))
	copy(clone.BandRanges, c.BandRanges)
	return &clone
}
