package feature

import "math"

// Pitch tracking bounds. Bins outside this band never win the per-frame
// maximum-energy vote.
const (
	pitchMinHz = 50.0
	pitchMaxHz = 2000.0

	// DefaultPitchHz is used when no voiced frames are found.
	DefaultPitchHz = 150.0
)

// PitchTrack returns one pitch estimate per voiced frame: the center frequency
// of the maximum-energy bin inside the pitch band, for frames whose band
// energy exceeds zero. Unvoiced frames contribute nothing.
func PitchTrack(spec [][]float64, sampleRate int) []float64 {
	var track []float64
	for _, frame := range spec {
		bestMag := 0.0
		bestBin := -1
		for bin, mag := range frame {
			f := binFrequency(bin, sampleRate)
			if f < pitchMinHz || f > pitchMaxHz {
				continue
			}
			if mag > bestMag {
				bestMag = mag
				bestBin = bin
			}
		}
		if bestBin >= 0 && bestMag > 0 {
			track = append(track, binFrequency(bestBin, sampleRate))
		}
	}
	return track
}

// MeanPitch averages a pitch track, falling back to DefaultPitchHz when no
// voiced frames were found.
func MeanPitch(track []float64) float64 {
	if len(track) == 0 {
		return DefaultPitchHz
	}
	var sum float64
	for _, p := range track {
		sum += p
	}
	mean := sum / float64(len(track))
	if math.IsNaN(mean) {
		return DefaultPitchHz
	}
	return mean
}

// PitchVariance is the population variance over voiced frames, 0 when there
// are none.
func PitchVariance(track []float64) float64 {
	if len(track) == 0 {
		return 0
	}
	mean := MeanPitch(track)
	var sum float64
	for _, p := range track {
		d := p - mean
		sum += d * d
	}
	return sum / float64(len(track))
}
