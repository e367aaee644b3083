package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

const wavHeaderSize = 44

// WavCapturer reads a recorded capture window from a WAV file. PCM 16-bit
// and 32-bit float formats are supported; multi-channel files are
// downmixed to mono by averaging.
type WavCapturer struct {
	Path string
}

// NewWavCapturer creates a capturer for the given WAV file
func NewWavCapturer(path string) *WavCapturer {
	return &WavCapturer{Path: path}
}

// Capture implements Capturer
func (w *WavCapturer) Capture(ctx context.Context) (*SampleBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(w.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav file: %w", err)
	}

	return DecodeWav(data)
}

// DecodeWav parses a RIFF/WAVE byte stream into a mono SampleBuffer
func DecodeWav(data []byte) (*SampleBuffer, error) {
	if len(data) < wavHeaderSize {
		return nil, errors.New("invalid wav file: too small")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New("invalid wav file: missing RIFF/WAVE header")
	}

	audioFormat := binary.LittleEndian.Uint16(data[20:22])
	channels := int(binary.LittleEndian.Uint16(data[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(data[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(data[34:36]))

	if channels < 1 {
		return nil, errors.New("invalid wav file: no channels")
	}
	if sampleRate <= 0 {
		return nil, errors.New("invalid wav file: bad sample rate")
	}

	payload, err := findDataChunk(data)
	if err != nil {
		return nil, err
	}

	var samples []float64
	switch {
	case audioFormat == 1 && bitsPerSample == 16:
		samples = decodePCM16(payload, channels)
	case audioFormat == 3 && bitsPerSample == 32:
		samples = decodeFloat32(payload, channels)
	default:
		return nil, fmt.Errorf("unsupported wav format: format=%d bits=%d", audioFormat, bitsPerSample)
	}

	return &SampleBuffer{Samples: samples, SampleRate: sampleRate}, nil
}

// findDataChunk walks RIFF sub-chunks to locate the sample payload.
// Files written by some recorders carry LIST/fact chunks before data.
func findDataChunk(data []byte) ([]byte, error) {
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		if chunkID == "data" {
			end := body + chunkSize
			if end > len(data) {
				end = len(data)
			}
			return data[body:end], nil
		}

		// Chunks are word-aligned
		offset = body + chunkSize + chunkSize%2
	}

	return nil, errors.New("invalid wav file: no data chunk")
}

func decodePCM16(payload []byte, channels int) []float64 {
	frameBytes := 2 * channels
	numFrames := len(payload) / frameBytes
	samples := make([]float64, numFrames)

	for i := range numFrames {
		sum := 0.0
		for c := range channels {
			off := i*frameBytes + c*2
			v := int16(binary.LittleEndian.Uint16(payload[off : off+2]))
			sum += float64(v) / 32768.0
		}
		samples[i] = sum / float64(channels)
	}

	return samples
}

func decodeFloat32(payload []byte, channels int) []float64 {
	frameBytes := 4 * channels
	numFrames := len(payload) / frameBytes
	samples := make([]float64, numFrames)

	for i := range numFrames {
		sum := 0.0
		for c := range channels {
			off := i*frameBytes + c*4
			bits := binary.LittleEndian.Uint32(payload[off : off+4])
			sum += float64(math.Float32frombits(bits))
		}
		samples[i] = sum / float64(channels)
	}

	return samples
}
