package feature

import (
	"math"
	"sort"
)

// Median filter kernel sizes for harmonic/percussive separation. Harmonic
// content is steady across time, percussive content spreads across frequency.
const (
	hpssTimeKernel = 17
	hpssFreqKernel = 17

	hpssEpsilon = 1e-8
)

// Quality score weighting: harmonic-to-percussive ratio, inverse jitter, and
// a constant floor.
const (
	qualityHPRWeight    = 0.5
	qualityJitterWeight = 0.3
	qualityFloor        = 0.2
)

func median(buf []float64) float64 {
	sort.Float64s(buf)
	n := len(buf)
	if n%2 == 1 {
		return buf[n/2]
	}
	return (buf[n/2-1] + buf[n/2]) / 2
}

// harmonicPercussive decomposes a magnitude spectrogram into harmonic and
// percussive components by median filtering along the time and frequency axes
// respectively, and returns the mean magnitude of each component.
func harmonicPercussive(spec [][]float64) (harmonicMean, percussiveMean float64) {
	if len(spec) == 0 || len(spec[0]) == 0 {
		return 0, 0
	}
	nFrames := len(spec)
	nBins := len(spec[0])

	var harmSum, percSum float64
	cells := float64(nFrames * nBins)

	buf := make([]float64, 0, hpssTimeKernel)
	for t := 0; t < nFrames; t++ {
		for b := 0; b < nBins; b++ {
			// Median across time at fixed frequency -> harmonic estimate.
			buf = buf[:0]
			for dt := -hpssTimeKernel / 2; dt <= hpssTimeKernel/2; dt++ {
				if ti := t + dt; ti >= 0 && ti < nFrames {
					buf = append(buf, spec[ti][b])
				}
			}
			h := median(buf)

			// Median across frequency at fixed time -> percussive estimate.
			buf = buf[:0]
			for db := -hpssFreqKernel / 2; db <= hpssFreqKernel/2; db++ {
				if bi := b + db; bi >= 0 && bi < nBins {
					buf = append(buf, spec[t][bi])
				}
			}
			p := median(buf)

			// Binary masking: assign the cell's energy to the stronger
			// component.
			if h >= p {
				harmSum += spec[t][b]
			} else {
				percSum += spec[t][b]
			}
		}
	}

	return harmSum / cells, percSum / cells
}

// jitter measures normalized sample-to-sample amplitude variation:
// std(diff(x)) / mean(|x|).
func jitter(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	var absSum float64
	for _, s := range samples {
		absSum += math.Abs(s)
	}
	meanAbs := absSum / float64(len(samples))
	if meanAbs == 0 {
		return 1
	}

	n := len(samples) - 1
	var diffSum float64
	for i := 1; i < len(samples); i++ {
		diffSum += samples[i] - samples[i-1]
	}
	diffMean := diffSum / float64(n)

	var varSum float64
	for i := 1; i < len(samples); i++ {
		d := samples[i] - samples[i-1] - diffMean
		varSum += d * d
	}
	return math.Sqrt(varSum/float64(n)) / meanAbs
}

// VoiceQuality scores voice quality in [0,1] from the harmonic-to-percussive
// energy ratio and an inverse-jitter term.
func VoiceQuality(samples []float64, spec [][]float64) float64 {
	harm, perc := harmonicPercussive(spec)
	hpr := harm / (perc + hpssEpsilon)

	score := qualityHPRWeight*hpr + qualityJitterWeight*(1-jitter(samples)) + qualityFloor
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
