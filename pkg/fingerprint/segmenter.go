package fingerprint

import (
	"github.com/prateek-arvo/sonar/pkg/audio"
	"github.com/prateek-arvo/sonar/pkg/dsp"
)

// Segmenter slices a capture buffer into a fixed count of Hann-windowed,
// FFT-sized frames
type Segmenter struct {
	fftSize      int
	segmentCount int
	window       *dsp.HannWindow
}

// NewSegmenter creates a segmenter for the given configuration
func NewSegmenter(fftSize, segmentCount int) *Segmenter {
	return &Segmenter{
		fftSize:      fftSize,
		segmentCount: segmentCount,
		window:       dsp.NewHannWindow(fftSize),
	}
}

// SegmentLength returns the per-segment sample count for a buffer of n
// samples: floor(n/segmentCount), clamped to a minimum of 1
func (s *Segmenter) SegmentLength(n int) int {
	segLen := n / s.segmentCount
	if segLen < 1 {
		segLen = 1
	}
	return segLen
}

// Frames produces exactly segmentCount windowed frames of fftSize samples.
// Segment s covers [s*segLen, (s+1)*segLen); reads past the end of the
// buffer contribute zero, and any buffer tail beyond segmentCount*segLen
// is dropped. Segments longer than fftSize are truncated.
func (s *Segmenter) Frames(buf *audio.SampleBuffer) [][]float64 {
	samples := buf.Samples
	segLen := s.SegmentLength(len(samples))

	frames := make([][]float64, s.segmentCount)
	for seg := range s.segmentCount {
		start := seg * segLen
		end := start + segLen
		if end > len(samples) {
			end = len(samples)
		}

		var segment []float64
		if start < len(samples) {
			segment = samples[start:end]
		}

		frame := make([]float64, s.fftSize)
		s.window.Frame(frame, segment)
		frames[seg] = frame
	}

	return frames
}
