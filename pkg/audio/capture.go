package audio

import "context"

// Capturer delivers one complete capture window. Implementations own the
// excitation playback and recording hardware; the pipeline only sees the
// finished buffer. Capture blocks until the full window is available or
// the context is done - there are no partial buffers.
type Capturer interface {
	Capture(ctx context.Context) (*SampleBuffer, error)
}

// CaptureFunc adapts a function to the Capturer interface
type CaptureFunc func(ctx context.Context) (*SampleBuffer, error)

// Capture implements Capturer
func (f CaptureFunc) Capture(ctx context.Context) (*SampleBuffer, error) {
	return f(ctx)
}

// StaticCapturer returns a fixed buffer on every capture. Used by tests
// and the self-test command.
func StaticCapturer(buf *SampleBuffer) Capturer {
	return CaptureFunc(func(ctx context.Context) (*SampleBuffer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return buf, nil
	})
}
