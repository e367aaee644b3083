package dsp

import (
	"fmt"
	"math"
)

// FFT computes fixed-size radix-2 transforms. The transform is hand-rolled
// rather than delegated to go-dsp because fingerprint comparison requires
// bit-reproducible magnitudes across runs and platforms: no parallel
// reductions, no size-dependent algorithm switches.
type FFT struct {
	size int
	rev  []int
}

// NewFFT creates a transform for the given size, which must be a power of two
func NewFFT(size int) (*FFT, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", size)
	}

	// Precompute the bit-reversal permutation once per size
	rev := make([]int, size)
	bits := 0
	for 1<<bits < size {
		bits++
	}
	for i := range size {
		r := 0
		for b := range bits {
			if i&(1<<b) != 0 {
				r |= 1 << (bits - 1 - b)
			}
		}
		rev[i] = r
	}

	return &FFT{size: size, rev: rev}, nil
}

// Size returns the transform size
func (f *FFT) Size() int {
	return f.size
}

// Magnitudes computes the magnitude spectrum of a real-valued frame.
// The input length must equal the transform size; the output has length
// size/2, one entry per bin of width sampleRate/size. No scaling is
// applied inside the transform.
func (f *FFT) Magnitudes(frame []float64) ([]float64, error) {
	n := f.size
	if len(frame) != n {
		return nil, fmt.Errorf("frame length (%d) doesn't match fft size (%d)", len(frame), n)
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for i, r := range f.rev {
		re[i] = frame[r]
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		stepRe := math.Cos(angle)
		stepIm := math.Sin(angle)
		half := length / 2

		for start := 0; start < n; start += length {
			// Twiddle factors advance by complex multiplication instead of
			// per-butterfly trig calls
			wRe, wIm := 1.0, 0.0
			for k := range half {
				i := start + k
				j := i + half

				tRe := re[j]*wRe - im[j]*wIm
				tIm := re[j]*wIm + im[j]*wRe

				re[j] = re[i] - tRe
				im[j] = im[i] - tIm
				re[i] += tRe
				im[i] += tIm

				wRe, wIm = wRe*stepRe-wIm*stepIm, wRe*stepIm+wIm*stepRe
			}
		}
	}

	// Keep the lower half only; the upper half mirrors it for real input
	magnitudes := make([]float64, n/2)
	for i := range magnitudes {
		magnitudes[i] = math.Hypot(re[i], im[i])
	}

	return magnitudes, nil
}
