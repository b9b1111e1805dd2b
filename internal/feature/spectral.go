package feature

// Fraction of total spectral energy below the roll-off frequency.
const rolloffPercent = 0.85

// SpectralCentroid computes the magnitude-weighted mean frequency per frame
// and averages across frames. Empty frames contribute a centroid of 0.
func SpectralCentroid(spec [][]float64, sampleRate int) float64 {
	if len(spec) == 0 {
		return 0
	}
	var total float64
	for _, frame := range spec {
		var num, den float64
		for bin, mag := range frame {
			num += binFrequency(bin, sampleRate) * mag
			den += mag
		}
		if den > 0 {
			total += num / den
		}
	}
	return total / float64(len(spec))
}

// SpectralRolloff computes, per frame, the lowest frequency below which
// rolloffPercent of the frame's magnitude lies, averaged across frames.
func SpectralRolloff(spec [][]float64, sampleRate int) float64 {
	if len(spec) == 0 {
		return 0
	}
	var total float64
	for _, frame := range spec {
		var sum float64
		for _, mag := range frame {
			sum += mag
		}
		if sum == 0 {
			continue
		}
		target := rolloffPercent * sum
		var acc float64
		for bin, mag := range frame {
			acc += mag
			if acc >= target {
				total += binFrequency(bin, sampleRate)
				break
			}
		}
	}
	return total / float64(len(spec))
}

// ZeroCrossingRate computes the per-frame fraction of adjacent sample pairs
// with a sign change, averaged across frames of the standard analysis framing.
func ZeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	frameLen := WindowSize
	hop := HopSize
	if len(samples) < frameLen {
		frameLen = len(samples)
		hop = frameLen
	}

	var total float64
	frames := 0
	for start := 0; start+frameLen <= len(samples); start += hop {
		crossings := 0
		for i := start + 1; i < start+frameLen; i++ {
			if (samples[i-1] >= 0) != (samples[i] >= 0) {
				crossings++
			}
		}
		total += float64(crossings) / float64(frameLen)
		frames++
	}
	if frames == 0 {
		return 0
	}
	return total / float64(frames)
}
