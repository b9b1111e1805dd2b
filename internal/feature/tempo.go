package feature

// Beat-tracking search range and fallback.
const (
	tempoMinBPM = 60.0
	tempoMaxBPM = 240.0

	// DefaultTempoBPM is returned when the signal is too short to
	// autocorrelate an onset envelope.
	DefaultTempoBPM = 120.0
)

// onsetEnvelope computes per-frame spectral flux: the sum of positive
// magnitude increases between consecutive frames.
func onsetEnvelope(spec [][]float64) []float64 {
	if len(spec) < 2 {
		return nil
	}
	env := make([]float64, len(spec)-1)
	for t := 1; t < len(spec); t++ {
		var flux float64
		for bin, mag := range spec[t] {
			if d := mag - spec[t-1][bin]; d > 0 {
				flux += d
			}
		}
		env[t-1] = flux
	}
	return env
}

// EstimateTempo estimates beats per minute by autocorrelating the onset
// envelope and picking the strongest lag in the plausible tempo range.
func EstimateTempo(spec [][]float64, sampleRate int) float64 {
	env := onsetEnvelope(spec)
	if len(env) == 0 {
		return DefaultTempoBPM
	}

	// Remove the mean so the autocorrelation is not dominated by DC.
	var mean float64
	for _, e := range env {
		mean += e
	}
	mean /= float64(len(env))
	for i := range env {
		env[i] -= mean
	}

	frameRate := float64(sampleRate) / float64(HopSize)
	minLag := int(60 * frameRate / tempoMaxBPM)
	maxLag := int(60 * frameRate / tempoMinBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(env) {
		maxLag = len(env) - 1
	}
	if maxLag < minLag {
		return DefaultTempoBPM
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := 0; i+lag < len(env); i++ {
			corr += env[i] * env[i+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return DefaultTempoBPM
	}

	return 60 * frameRate / float64(bestLag)
}
