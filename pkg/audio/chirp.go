package audio

import (
	"math"
	"time"
)

// LinearChirp synthesizes a linear frequency sweep from startHz to endHz.
// The playback side uses the same sweep as the excitation signal; here it
// doubles as the reference input for self-tests.
func LinearChirp(startHz, endHz float64, duration time.Duration, sampleRate int) *SampleBuffer {
	numSamples := int(duration.Seconds() * float64(sampleRate))
	samples := make([]float64, numSamples)

	totalSeconds := duration.Seconds()
	for i := range numSamples {
		t := float64(i) / float64(sampleRate)
		// Instantaneous phase of a linear sweep: 2*pi*(f0*t + (f1-f0)*t^2/(2*T))
		phase := 2 * math.Pi * (startHz*t + (endHz-startHz)*t*t/(2*totalSeconds))
		samples[i] = math.Sin(phase)
	}

	return &SampleBuffer{Samples: samples, SampleRate: sampleRate}
}

// Tone synthesizes a pure sine at the given frequency
func Tone(freqHz float64, duration time.Duration, sampleRate int) *SampleBuffer {
	numSamples := int(duration.Seconds() * float64(sampleRate))
	samples := make([]float64, numSamples)

	for i := range numSamples {
		t := float64(i) / float64(sampleRate)
		samples[i] = math.Sin(2 * math.Pi * freqHz * t)
	}

	return &SampleBuffer{Samples: samples, SampleRate: sampleRate}
}

// Silence synthesizes an all-zero buffer
func Silence(duration time.Duration, sampleRate int) *SampleBuffer {
	numSamples := int(duration.Seconds() * float64(sampleRate))
	return &SampleBuffer{Samples: make([]float64, numSamples), SampleRate: sampleRate}
}
