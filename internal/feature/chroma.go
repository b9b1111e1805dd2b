package feature

import (
	"math"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

// referenceA4 anchors the pitch-class mapping.
const referenceA4 = 440.0

// pitchClass maps a frequency to one of the 12 chromatic pitch classes
// (0 = C), via the MIDI note number of the nearest equal-tempered pitch.
func pitchClass(freq float64) int {
	midi := int(math.Round(12*math.Log2(freq/referenceA4))) + 69
	pc := midi % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Chroma folds per-frame spectral energy onto the 12 pitch classes, normalizes
// each frame by its maximum bin, and averages across frames.
func Chroma(spec [][]float64, sampleRate int) [model.NumChroma]float64 {
	var out [model.NumChroma]float64
	if len(spec) == 0 {
		return out
	}

	for _, frame := range spec {
		var bins [model.NumChroma]float64
		for bin, mag := range frame {
			f := binFrequency(bin, sampleRate)
			if f < 20 {
				continue
			}
			bins[pitchClass(f)] += mag * mag
		}

		peak := 0.0
		for _, b := range bins {
			if b > peak {
				peak = b
			}
		}
		if peak == 0 {
			continue
		}
		for i, b := range bins {
			out[i] += b / peak
		}
	}

	for i := range out {
		out[i] /= float64(len(spec))
	}
	return out
}
