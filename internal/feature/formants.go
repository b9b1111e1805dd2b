package feature

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

// formantPeakFraction: spectral peaks below this fraction of the maximum
// magnitude are ignored as formant candidates.
const formantPeakFraction = 0.1

// EstimateFormants estimates up to model.MaxFormants resonant frequencies by
// locating local peaks in the magnitude spectrum of the whole (unpreprocessed)
// signal and keeping the lowest positive-frequency ones, ascending.
func EstimateFormants(samples []float64, sampleRate int) []float64 {
	if len(samples) < 3 {
		return nil
	}

	spectrum := fft.FFTReal(samples)
	half := len(spectrum) / 2
	mag := make([]float64, half)
	peak := 0.0
	for i := 0; i < half; i++ {
		mag[i] = cmplx.Abs(spectrum[i])
		if mag[i] > peak {
			peak = mag[i]
		}
	}
	if peak == 0 {
		return nil
	}
	threshold := peak * formantPeakFraction

	freqRes := float64(sampleRate) / float64(len(samples))

	var formants []float64
	for i := 1; i < half-1; i++ {
		if mag[i] < threshold {
			continue
		}
		if mag[i] <= mag[i-1] || mag[i] <= mag[i+1] {
			continue
		}
		f := float64(i) * freqRes
		if f <= 0 {
			continue
		}
		formants = append(formants, f)
		if len(formants) == model.MaxFormants {
			break
		}
	}

	sort.Float64s(formants)
	return formants
}
