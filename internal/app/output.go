package app

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/prateek-arvo/sonar/pkg/fingerprint"
	"github.com/prateek-arvo/sonar/pkg/session"
)

// VerifyReport is the output structure for one verification run
type VerifyReport struct {
	Outcome     session.Outcome               `json:"outcome" yaml:"outcome"`
	Similarity  *fingerprint.SimilarityResult `json:"similarity,omitempty" yaml:"similarity,omitempty"`
	Fingerprint *FingerprintSummary           `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// FingerprintSummary is the fingerprint without its raw feature data,
// plus the leading band-matrix rows for diagnostics display
type FingerprintSummary struct {
	ID            string      `json:"id" yaml:"id"`
	SampleRate    int         `json:"sample_rate" yaml:"sample_rate"`
	DurationSecs  float64     `json:"duration_seconds" yaml:"duration_seconds"`
	SegmentCount  int         `json:"segment_count" yaml:"segment_count"`
	BandCount     int         `json:"band_count" yaml:"band_count"`
	FeatureLength int         `json:"feature_length" yaml:"feature_length"`
	Degenerate    bool        `json:"degenerate" yaml:"degenerate"`
	MatrixHead    [][]float64 `json:"matrix_head,omitempty" yaml:"matrix_head,omitempty"`
}

// SummarizeFingerprint builds the display form of a fingerprint, keeping
// the first matrixSegments rows of the normalized band matrix
func SummarizeFingerprint(fp *fingerprint.Fingerprint, matrixSegments int) *FingerprintSummary {
	if fp == nil {
		return nil
	}

	head := matrixSegments
	if head > len(fp.BandMatrix) {
		head = len(fp.BandMatrix)
	}
	if head < 0 {
		head = 0
	}

	matrixHead := make([][]float64, head)
	for i := range head {
		row := make([]float64, len(fp.BandMatrix[i]))
		copy(row, fp.BandMatrix[i])
		matrixHead[i] = row
	}

	return &FingerprintSummary{
		ID:            fp.ID,
		SampleRate:    fp.SampleRate,
		DurationSecs:  fp.Duration.Seconds(),
		SegmentCount:  fp.SegmentCount,
		BandCount:     fp.BandCount,
		FeatureLength: len(fp.Features),
		Degenerate:    fp.Diagnostics.Degenerate || fp.Diagnostics.ShortBuffer,
		MatrixHead:    matrixHead,
	}
}

// FormatReport renders a report as json or yaml. Every float in a report
// came through an epsilon-stabilized denominator, so JSON encoding cannot
// hit unsupported Inf/NaN values.
func FormatReport(report any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(report)
	case "json", "":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to format output data: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
