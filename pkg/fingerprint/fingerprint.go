package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/dsp"
	"github.com/prateek-arvo/sonar/pkg/logging"
)

// Diagnostics flags inputs whose similarity scores carry no confidence.
// Degenerate captures keep the normal output shape; the flags are the
// only signal that the result should not be trusted.
type Diagnostics struct {
	Degenerate  bool    `json:"degenerate"`
	ShortBuffer bool    `json:"short_buffer"`
	TotalEnergy float64 `json:"total_energy"`
}

// Fingerprint is the output of one pipeline invocation
type Fingerprint struct {
	ID            string               `json:"id"`
	Timestamp     time.Time            `json:"timestamp"`
	Duration      time.Duration        `json:"duration"`
	SampleRate    int                  `json:"sample_rate"`
	SegmentCount  int                  `json:"segment_count"`
	BandCount     int                  `json:"band_count"`
	FeatureFamily FeatureFamily        `json:"feature_family"`
	Features      []float64            `json:"features"`
	BandMatrix    NormalizedBandMatrix `json:"band_matrix"`
	Diagnostics   Diagnostics          `json:"diagnostics"`
}

// Generator runs the capture-to-feature-vector pipeline. A generator is
// bound to one validated Config; it is pure with respect to its inputs
// and safe to reuse across sequential invocations.
type Generator struct {
	config    *Config
	fft       *dsp.FFT
	segmenter *Segmenter
	logger    logging.Logger
}

// NewGenerator creates a generator for the given configuration
func NewGenerator(config *Config) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	fft, err := dsp.NewFFT(config.FFTSize)
	if err != nil {
		return nil, NewPipelineError("config", ErrCodeInvalidConfig, "invalid fft size", err)
	}

	return &Generator{
		config:    config.Clone(),
		fft:       fft,
		segmenter: NewSegmenter(config.FFTSize, config.SegmentCount),
		logger: logging.WithFields(logging.Fields{
			"component": "fingerprint_generator",
		}),
	}, nil
}

// Config returns the generator's configuration
func (g *Generator) Config() *Config {
	return g.config.Clone()
}

// Generate turns one capture buffer into a fingerprint. The buffer must
// be complete; the pipeline never runs on partial captures.
func (g *Generator) Generate(buf *audio.SampleBuffer) (*Fingerprint, error) {
	if buf == nil || buf.SampleRate <= 0 {
		return nil, NewPipelineError("generate", ErrCodeInvalidInput,
			"sample buffer is missing or has no sample rate", nil)
	}

	logger := g.logger.WithFields(logging.Fields{
		"sample_rate": buf.SampleRate,
		"samples":     len(buf.Samples),
	})
	logger.Debug("Starting fingerprint generation")

	frames := g.segmenter.Frames(buf)

	totalEnergy := 0.0
	rows := make([][]float64, len(frames))
	for i, frame := range frames {
		magnitudes, err := g.fft.Magnitudes(frame)
		if err != nil {
			return nil, NewPipelineError("spectral", ErrCodeInvalidInput, "fft failed", err)
		}

		row := BandEnergies(magnitudes, buf.SampleRate, g.config.FFTSize, g.config.BandRanges)
		for _, e := range row {
			totalEnergy += e
		}
		rows[i] = row
	}

	matrix := NormalizeRows(rows)

	var features []float64
	switch g.config.FeatureFamily {
	case FeatureRawBand:
		features = FlattenRows(matrix)
	default:
		features = DeltaRatios(matrix)
	}

	if g.config.UseEnvelopeFeatures {
		envelope := dsp.RMSEnvelope(buf.Samples, buf.SampleRate)
		stats := dsp.EnvelopeStatistics(envelope)
		features = append(features, stats.Mean, stats.StdDev, stats.Centroid)
	}

	diagnostics := Diagnostics{
		Degenerate:  totalEnergy < epsilon*float64(g.config.SegmentCount),
		ShortBuffer: len(buf.Samples) < g.config.SegmentCount,
		TotalEnergy: totalEnergy,
	}
	if diagnostics.Degenerate || diagnostics.ShortBuffer {
		logger.Warn("Degenerate capture, similarity scores will not be meaningful", logging.Fields{
			"degenerate":   diagnostics.Degenerate,
			"short_buffer": diagnostics.ShortBuffer,
			"total_energy": diagnostics.TotalEnergy,
		})
	}

	fingerprint := &Fingerprint{
		ID:            generateID(buf),
		Timestamp:     time.Now(),
		Duration:      buf.Duration(),
		SampleRate:    buf.SampleRate,
		SegmentCount:  g.config.SegmentCount,
		BandCount:     len(g.config.BandRanges),
		FeatureFamily: g.config.FeatureFamily,
		Features:      features,
		BandMatrix:    matrix,
		Diagnostics:   diagnostics,
	}

	logger.Debug("Fingerprint generation completed", logging.Fields{
		"fingerprint_id": fingerprint.ID,
		"feature_length": len(features),
	})

	return fingerprint, nil
}

func generateID(buf *audio.SampleBuffer) string {
	hasher := sha256.New()
	fmt.Fprintf(hasher, "%d_%d_%d",
		time.Now().UnixNano(),
		len(buf.Samples),
		buf.SampleRate)
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
