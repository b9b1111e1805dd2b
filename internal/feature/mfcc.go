package feature

import (
	"math"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

const (
	numMelFilters = 26
	logFloor      = 1e-10
)

func hzToMel(f float64) float64 {
	return 2595 * math.Log10(1+f/700)
}

func melToHz(m float64) float64 {
	return 700 * (math.Pow(10, m/2595) - 1)
}

// melFilterbank builds triangular filters evenly spaced on the mel scale from
// 0 Hz to Nyquist, mapped onto STFT bins. filters[m][bin] is the filter weight.
func melFilterbank(sampleRate int) [][]float64 {
	nBins := WindowSize / 2
	maxMel := hzToMel(float64(sampleRate) / 2)

	// numMelFilters+2 edge points define numMelFilters triangles.
	edges := make([]float64, numMelFilters+2)
	for i := range edges {
		mel := maxMel * float64(i) / float64(numMelFilters+1)
		edges[i] = melToHz(mel)
	}

	filters := make([][]float64, numMelFilters)
	for m := 0; m < numMelFilters; m++ {
		filters[m] = make([]float64, nBins)
		lo, center, hi := edges[m], edges[m+1], edges[m+2]
		for bin := 0; bin < nBins; bin++ {
			f := binFrequency(bin, sampleRate)
			switch {
			case f <= lo || f >= hi:
				// outside the triangle
			case f <= center:
				if center > lo {
					filters[m][bin] = (f - lo) / (center - lo)
				}
			default:
				if hi > center {
					filters[m][bin] = (hi - f) / (hi - center)
				}
			}
		}
	}
	return filters
}

// MFCC computes model.NumMFCC mel-frequency cepstral coefficients per frame
// from the power spectrum and returns their frame-wise average. The zeroth
// coefficient (overall log energy) is included.
func MFCC(spec [][]float64, sampleRate int) [model.NumMFCC]float64 {
	var out [model.NumMFCC]float64
	if len(spec) == 0 {
		return out
	}

	filters := melFilterbank(sampleRate)
	logEnergy := make([]float64, numMelFilters)

	for _, frame := range spec {
		for m, filter := range filters {
			var e float64
			for bin, w := range filter {
				if w == 0 || bin >= len(frame) {
					continue
				}
				p := frame[bin] * frame[bin]
				e += w * p
			}
			logEnergy[m] = math.Log(e + logFloor)
		}

		// DCT-II of the log filterbank energies.
		for k := 0; k < model.NumMFCC; k++ {
			var c float64
			for m := 0; m < numMelFilters; m++ {
				c += logEnergy[m] * math.Cos(math.Pi*float64(k)*(float64(m)+0.5)/numMelFilters)
			}
			out[k] += c
		}
	}

	for k := range out {
		out[k] /= float64(len(spec))
	}
	return out
}
