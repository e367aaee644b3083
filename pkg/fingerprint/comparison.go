package fingerprint

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// SimilarityResult holds the result of comparing two feature vectors
type SimilarityResult struct {
	Similarity     float64       `json:"similarity"` // -1.0-1.0, in practice 0.0-1.0
	Threshold      float64       `json:"threshold"`
	Match          bool          `json:"match"`
	FeatureLength  int           `json:"feature_length"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// CosineSimilarity computes epsilon-stabilized cosine similarity. By
// convention it returns 0 when the lengths differ or either vector is
// empty; that degenerate 0 means "no meaningful comparison", not genuine
// dissimilarity - use Compare to get the distinction surfaced as an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	dot := floats.Dot(a, b)
	normA := math.Sqrt(floats.Dot(a, a))
	normB := math.Sqrt(floats.Dot(b, b))

	return dot / (normA*normB + epsilon)
}

// Compare scores a feature vector against a reference and applies the
// decision threshold. Vectors of different lengths come from mismatched
// configurations and fail loudly - they are never truncated or padded.
func Compare(candidate, reference []float64, threshold float64) (*SimilarityResult, error) {
	start := time.Now()

	if len(candidate) == 0 || len(reference) == 0 {
		return nil, NewPipelineError("compare", ErrCodeInvalidInput,
			"cannot compare empty feature vectors", nil)
	}

	if len(candidate) != len(reference) {
		return nil, NewPipelineError("compare", ErrCodeConfigMismatch,
			fmt.Sprintf("feature vector length mismatch: %d vs %d (baseline and comparison captures must use the same configuration)",
				len(candidate), len(reference)), nil)
	}

	similarity := CosineSimilarity(candidate, reference)

	return &SimilarityResult{
		Similarity:     similarity,
		Threshold:      threshold,
		Match:          similarity > threshold,
		FeatureLength:  len(candidate),
		ProcessingTime: time.Since(start),
	}, nil
}

// CompareFingerprints compares two fingerprints using the given
// configuration's threshold
func CompareFingerprints(candidate, reference *Fingerprint, config *Config) (*SimilarityResult, error) {
	if candidate == nil || reference == nil {
		return nil, NewPipelineError("compare", ErrCodeInvalidInput,
			"cannot compare nil fingerprints", nil)
	}
	return Compare(candidate.Features, reference.Features, config.MatchThreshold)
}
