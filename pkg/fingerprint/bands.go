package fingerprint

// BandEnergies maps a magnitude spectrum onto the configured frequency
// bands. For each [low, high) range the magnitudes of bin indices
// [floor(low/binHz), min(len-1, floor(high/binHz))] are summed, where
// binHz = sampleRate/fftSize. A range that maps to no valid bin yields
// energy 0, not an error.
func BandEnergies(magnitudes []float64, sampleRate, fftSize int, ranges []BandRange) []float64 {
	binHz := float64(sampleRate) / float64(fftSize)
	energies := make([]float64, len(ranges))

	for b, band := range ranges {
		low := int(band.Low / binHz)
		high := int(band.High / binHz)
		if high > len(magnitudes)-1 {
			high = len(magnitudes) - 1
		}

		sum := 0.0
		for bin := low; bin <= high; bin++ {
			if bin < 0 || bin >= len(magnitudes) {
				continue
			}
			sum += magnitudes[bin]
		}
		energies[b] = sum
	}

	return energies
}
