package audio

import "time"

// SampleBuffer holds one complete capture window: mono amplitude samples
// plus the rate they were captured at. Buffers are treated as immutable
// once handed to the pipeline.
type SampleBuffer struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// Duration returns the buffer length in time
func (b *SampleBuffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(b.Samples)) / float64(b.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Empty reports whether the buffer carries no samples
func (b *SampleBuffer) Empty() bool {
	return b == nil || len(b.Samples) == 0
}
