package dsp

import (
	"github.com/mjibson/go-dsp/window"
)

// HannWindow holds precomputed symmetric Hann coefficients for one frame size
type HannWindow struct {
	size   int
	coeffs []float64
}

// NewHannWindow creates a Hann window of the given size
func NewHannWindow(size int) *HannWindow {
	return &HannWindow{
		size:   size,
		coeffs: window.Hann(size),
	}
}

// Size returns the window size
func (h *HannWindow) Size() int {
	return h.size
}

// Frame writes a windowed frame into dst: dst[i] = src[i] * w[i] for
// indices covered by src, zero beyond it. dst must have the window size;
// src longer than the window is truncated.
func (h *HannWindow) Frame(dst, src []float64) {
	if len(dst) != h.size {
		return
	}

	n := min(len(src), h.size)
	for i := range n {
		dst[i] = src[i] * h.coeffs[i]
	}
	for i := n; i < h.size; i++ {
		dst[i] = 0
	}
}

// Coefficients returns a copy of the window coefficients
func (h *HannWindow) Coefficients() []float64 {
	coeffs := make([]float64, len(h.coeffs))
	copy(coeffs, h.coeffs)
	return coeffs
}
