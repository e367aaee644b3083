package fingerprint

import "gonum.org/v1/gonum/floats"

// NormalizedBandMatrix holds one row per segment, each row normalized so
// its band energies sum to 1 (epsilon-stabilized). Exposed alongside the
// feature vector for diagnostics display.
type NormalizedBandMatrix [][]float64

// NormalizeRows divides each row by its own sum. An all-zero row stays
// all-zero rather than producing NaN.
func NormalizeRows(rows [][]float64) NormalizedBandMatrix {
	matrix := make(NormalizedBandMatrix, len(rows))
	for i, row := range rows {
		total := floats.Sum(row)
		normalized := make([]float64, len(row))
		for j, v := range row {
			normalized[j] = v / (total + epsilon)
		}
		matrix[i] = normalized
	}
	return matrix
}

// DeltaRatios flattens the per-band ratios between consecutive rows into
// a feature vector of length (rows-1) * bands. The ratio of a silent band
// to a silent band is 1 by epsilon stabilization, so silence yields a
// near-uniform vector instead of a crash.
func DeltaRatios(matrix NormalizedBandMatrix) []float64 {
	if len(matrix) < 2 {
		return []float64{}
	}

	bands := len(matrix[0])
	features := make([]float64, 0, (len(matrix)-1)*bands)

	for i := 1; i < len(matrix); i++ {
		prev := matrix[i-1]
		cur := matrix[i]
		for j := range bands {
			features = append(features, (cur[j]+epsilon)/(prev[j]+epsilon))
		}
	}

	return features
}

// FlattenRows flattens the normalized matrix row-major. This is the legacy
// raw-band feature family.
func FlattenRows(matrix NormalizedBandMatrix) []float64 {
	if len(matrix) == 0 {
		return []float64{}
	}

	features := make([]float64, 0, len(matrix)*len(matrix[0]))
	for _, row := range matrix {
		features = append(features, row...)
	}
	return features
}

// RowSum returns the sum of one matrix row, for diagnostics
func (m NormalizedBandMatrix) RowSum(i int) float64 {
	if i < 0 || i >= len(m) {
		return 0
	}
	return floats.Sum(m[i])
}
