package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek-arvo/sonar/pkg/audio"
)

func TestGeneratorSweepEndToEnd(t *testing.T) {
	// Reference scenario: 1 s at 48 kHz swept across the full band table
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	sweep := audio.LinearChirp(2000, 12000, time.Second, 48000)
	fp, err := gen.Generate(sweep)
	require.NoError(t, err)

	require.Len(t, fp.BandMatrix, 50)
	for i, row := range fp.BandMatrix {
		require.Len(t, row, 5)
		assert.InDelta(t, 1.0, fp.BandMatrix.RowSum(i), 1e-6, "row %d", i)
	}

	assert.Len(t, fp.Features, 245)
	assert.False(t, fp.Diagnostics.Degenerate)
	assert.False(t, fp.Diagnostics.ShortBuffer)

	result, err := Compare(fp.Features, fp.Features, DeltaRatioThreshold)
	require.NoError(t, err)
	assert.True(t, result.Match)
	assert.InDelta(t, 1.0, result.Similarity, 1e-9)
}

func TestGeneratorDeterminism(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	sweep := audio.LinearChirp(2000, 12000, time.Second, 48000)

	first, err := gen.Generate(sweep)
	require.NoError(t, err)
	second, err := gen.Generate(sweep)
	require.NoError(t, err)

	// Same buffer, same config: bit-identical features
	assert.Equal(t, first.Features, second.Features)
	assert.Equal(t, first.BandMatrix, second.BandMatrix)
}

func TestGeneratorSilence(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	fp, err := gen.Generate(audio.Silence(time.Second, 48000))
	require.NoError(t, err)

	// Silence produces defined near-uniform ratios and a degenerate flag,
	// never a crash
	assert.True(t, fp.Diagnostics.Degenerate)
	require.Len(t, fp.Features, 245)
	for i, f := range fp.Features {
		assert.InDelta(t, 1.0, f, 1e-6, "feature %d", i)
	}
}

func TestGeneratorEnvelopeFeatures(t *testing.T) {
	gen, err := NewGenerator(VibrationConfig())
	require.NoError(t, err)

	sweep := audio.LinearChirp(2000, 12000, time.Second, 48000)
	fp, err := gen.Generate(sweep)
	require.NoError(t, err)

	// 245 delta ratios plus mean, std dev and centroid of the envelope
	require.Len(t, fp.Features, 248)
	assert.Positive(t, fp.Features[245]) // envelope mean

	// Envelope stats of silence collapse to zero
	silent, err := gen.Generate(audio.Silence(time.Second, 48000))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, silent.Features[245], 1e-9)
	assert.InDelta(t, 0.0, silent.Features[246], 1e-9)
	assert.InDelta(t, 0.0, silent.Features[247], 1e-9)
}

func TestGeneratorRawBandFamily(t *testing.T) {
	cfg := RawBandConfig()
	assert.Equal(t, RawBandThreshold, cfg.MatchThreshold)

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)

	sweep := audio.LinearChirp(2000, 12000, time.Second, 48000)
	fp, err := gen.Generate(sweep)
	require.NoError(t, err)

	// Raw-band family flattens all 50 normalized rows
	assert.Len(t, fp.Features, 250)
}

func TestGeneratorShortBuffer(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	fp, err := gen.Generate(&audio.SampleBuffer{Samples: make([]float64, 10), SampleRate: 48000})
	require.NoError(t, err)
	assert.True(t, fp.Diagnostics.ShortBuffer)
	assert.Len(t, fp.Features, 245)
}

func TestGeneratorRejectsMissingBuffer(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	_, err = gen.Generate(nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))

	_, err = gen.Generate(&audio.SampleBuffer{Samples: []float64{1}, SampleRate: 0})
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"reference config", func(c *Config) {}, false},
		{"vibration config", func(c *Config) { c.UseEnvelopeFeatures = true }, false},
		{"fft not power of two", func(c *Config) { c.FFTSize = 500 }, true},
		{"segment count too small", func(c *Config) { c.SegmentCount = 1 }, true},
		{"no bands", func(c *Config) { c.BandRanges = nil }, true},
		{"inverted band", func(c *Config) { c.BandRanges[2] = BandRange{Low: 8000, High: 6000} }, true},
		{"overlapping bands", func(c *Config) { c.BandRanges[1].Low = 3000 }, true},
		{"unknown family", func(c *Config) { c.FeatureFamily = "spectral_hash" }, true},
		{"threshold too high", func(c *Config) { c.MatchThreshold = 1.5 }, true},
		{"threshold zero", func(c *Config) { c.MatchThreshold = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				assert.Equal(t, ErrCodeInvalidConfig, ErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFeatureLength(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 245, cfg.FeatureLength())

	assert.Equal(t, 248, VibrationConfig().FeatureLength())
	assert.Equal(t, 250, RawBandConfig().FeatureLength())
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.BandRanges[0].Low = 1

	assert.Equal(t, 2000.0, cfg.BandRanges[0].Low)
}
