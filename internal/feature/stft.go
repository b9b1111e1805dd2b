package feature

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Analysis framing tunables.
const (
	WindowSize = 1024
	HopSize    = 256
)

// MagnitudeSpectrum converts a complex spectrum into a magnitude spectrum
// keeping only the positive-frequency half.
func MagnitudeSpectrum(spectrum []complex128) []float64 {
	half := len(spectrum) / 2
	mag := make([]float64, half)
	for i := 0; i < half; i++ {
		mag[i] = cmplx.Abs(spectrum[i])
	}
	return mag
}

// STFT computes a time-major magnitude spectrogram using a Hamming window.
// Signals shorter than the window are zero-padded to a single frame.
// Result layout: spec[frameIdx][freqBin], with WindowSize/2 bins per frame.
func STFT(samples []float64) [][]float64 {
	if len(samples) == 0 {
		return nil
	}
	if len(samples) < WindowSize {
		padded := make([]float64, WindowSize)
		copy(padded, samples)
		samples = padded
	}

	win := window.Hamming(WindowSize)
	frame := make([]float64, WindowSize)

	var spec [][]float64
	for start := 0; start+WindowSize <= len(samples); start += HopSize {
		copy(frame, samples[start:start+WindowSize])
		for i := range frame {
			frame[i] *= win[i]
		}
		spec = append(spec, MagnitudeSpectrum(fft.FFTReal(frame)))
	}
	return spec
}

// binFrequency returns the center frequency in Hz of an STFT bin.
func binFrequency(bin, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / float64(WindowSize)
}
