package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHannWindowCoefficients(t *testing.T) {
	hann := NewHannWindow(512)
	coeffs := hann.Coefficients()
	require.Len(t, coeffs, 512)

	// Symmetric Hann: zero at both ends, near unity at the centre
	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.InDelta(t, 0.0, coeffs[511], 1e-12)
	assert.Greater(t, coeffs[255], 0.99)
	assert.InDelta(t, coeffs[100], coeffs[411], 1e-12)
}

func TestHannWindowFrameZeroPads(t *testing.T) {
	hann := NewHannWindow(8)
	coeffs := hann.Coefficients()

	dst := make([]float64, 8)
	hann.Frame(dst, []float64{1, 1, 1})

	assert.InDelta(t, coeffs[0], dst[0], 1e-12)
	assert.InDelta(t, coeffs[1], dst[1], 1e-12)
	assert.InDelta(t, coeffs[2], dst[2], 1e-12)
	for i := 3; i < 8; i++ {
		assert.Zero(t, dst[i], "index %d", i)
	}
}

func TestHannWindowFrameTruncates(t *testing.T) {
	hann := NewHannWindow(4)

	src := []float64{1, 1, 1, 1, 99, 99}
	dst := make([]float64, 4)
	hann.Frame(dst, src)

	coeffs := hann.Coefficients()
	for i := range dst {
		assert.InDelta(t, coeffs[i], dst[i], 1e-12)
	}
}
