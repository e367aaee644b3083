package dsp

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// envelopeFrameMillis is the short-time RMS frame duration
const envelopeFrameMillis = 5

const epsilon = 1e-12

// EnvelopeStats summarizes an amplitude envelope for modulation analysis
type EnvelopeStats struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Centroid float64 `json:"centroid"`
}

// RMSEnvelope computes the short-time RMS envelope of a signal over
// non-overlapping ~5 ms frames. A signal shorter than one frame yields a
// single frame covering the whole signal.
func RMSEnvelope(signal []float64, sampleRate int) []float64 {
	if len(signal) == 0 || sampleRate <= 0 {
		return []float64{}
	}

	frameSize := sampleRate * envelopeFrameMillis / 1000
	if frameSize < 1 {
		frameSize = 1
	}
	if frameSize > len(signal) {
		frameSize = len(signal)
	}

	numFrames := len(signal) / frameSize
	envelope := make([]float64, numFrames)

	for i := range numFrames {
		start := i * frameSize
		sumSquares := 0.0
		for j := start; j < start+frameSize; j++ {
			sumSquares += signal[j] * signal[j]
		}
		envelope[i] = math.Sqrt(sumSquares / float64(frameSize))
	}

	return envelope
}

// EnvelopeStatistics computes mean, population standard deviation and the
// time-axis-weighted centroid of an envelope
func EnvelopeStatistics(envelope []float64) EnvelopeStats {
	if len(envelope) == 0 {
		return EnvelopeStats{}
	}

	weighted := 0.0
	total := 0.0
	for i, e := range envelope {
		weighted += float64(i) * e
		total += e
	}

	return EnvelopeStats{
		Mean:     stat.Mean(envelope, nil),
		StdDev:   stat.PopStdDev(envelope, nil),
		Centroid: weighted / (total + epsilon),
	}
}
