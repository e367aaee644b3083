package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRowsSumToOne(t *testing.T) {
	matrix := NormalizeRows([][]float64{
		{1, 2, 3, 4, 5},
		{0.001, 0.002, 0.003, 0.004, 0.99},
		{100, 0, 0, 0, 0},
	})

	for i := range matrix {
		assert.InDelta(t, 1.0, matrix.RowSum(i), 1e-6, "row %d", i)
	}
}

func TestNormalizeRowsUniformInput(t *testing.T) {
	// Equal band energies normalize to the exact uniform distribution
	matrix := NormalizeRows([][]float64{{7, 7, 7, 7, 7}})

	for _, v := range matrix[0] {
		assert.InDelta(t, 0.2, v, 1e-9)
	}
}

func TestNormalizeRowsAllZeroRow(t *testing.T) {
	// Epsilon stabilization keeps a silent row at zero instead of NaN
	matrix := NormalizeRows([][]float64{{0, 0, 0}})

	for _, v := range matrix[0] {
		assert.Zero(t, v)
	}
}

func TestDeltaRatios(t *testing.T) {
	matrix := NormalizedBandMatrix{
		{0.2, 0.8},
		{0.4, 0.6},
		{0.4, 0.6},
	}

	features := DeltaRatios(matrix)
	require.Len(t, features, 4)

	assert.InDelta(t, 2.0, features[0], 1e-9)
	assert.InDelta(t, 0.75, features[1], 1e-9)
	assert.InDelta(t, 1.0, features[2], 1e-9)
	assert.InDelta(t, 1.0, features[3], 1e-9)
}

func TestDeltaRatiosSilence(t *testing.T) {
	// Silent rows produce ratio 1 everywhere via epsilon stabilization
	matrix := NormalizedBandMatrix{
		{0, 0, 0},
		{0, 0, 0},
	}

	for _, ratio := range DeltaRatios(matrix) {
		assert.InDelta(t, 1.0, ratio, 1e-9)
	}
}

func TestDeltaRatiosTooFewRows(t *testing.T) {
	assert.Empty(t, DeltaRatios(NormalizedBandMatrix{{1, 2}}))
	assert.Empty(t, DeltaRatios(nil))
}

func TestFlattenRows(t *testing.T) {
	matrix := NormalizedBandMatrix{
		{0.1, 0.9},
		{0.3, 0.7},
	}

	features := FlattenRows(matrix)
	assert.Equal(t, []float64{0.1, 0.9, 0.3, 0.7}, features)
}
