// Package feature computes quantitative voice characteristics from mono
// floating-point audio: pitch, spectral shape, MFCC, chroma, tempo, formants
// and a heuristic voice-quality score.
package feature

import (
	"fmt"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/audio"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

// Extractor computes a VoiceCharacteristics vector from one audio sample.
// Zero value is not usable; construct with NewExtractor.
type Extractor struct {
	minSeconds float64
}

// NewExtractor returns an extractor enforcing the standard per-file minimum
// duration.
func NewExtractor() *Extractor {
	return &Extractor{minSeconds: audio.MinSampleSeconds}
}

// Extract computes the characteristics of one mono sample at the given rate.
// Preprocessing (normalization, silence removal, pre-emphasis) is applied
// before spectral analysis; formants are estimated from the raw signal.
func (e *Extractor) Extract(samples []float64, sampleRate int) (model.VoiceCharacteristics, error) {
	var vc model.VoiceCharacteristics

	if len(samples) == 0 || sampleRate <= 0 {
		return vc, fmt.Errorf("%w: empty sample buffer", audio.ErrInvalidAudio)
	}
	if dur := audio.Duration(samples, sampleRate); dur < e.minSeconds {
		return vc, fmt.Errorf("%w: %.1fs (minimum %.0fs)", audio.ErrInsufficientAudio, dur, e.minSeconds)
	}

	processed := audio.Preprocess(samples)
	spec := STFT(processed)

	track := PitchTrack(spec, sampleRate)

	vc.FundamentalFrequency = MeanPitch(track)
	vc.SpectralCentroid = SpectralCentroid(spec, sampleRate)
	vc.SpectralRolloff = SpectralRolloff(spec, sampleRate)
	vc.ZeroCrossingRate = ZeroCrossingRate(processed)
	vc.MFCC = MFCC(spec, sampleRate)
	vc.Chroma = Chroma(spec, sampleRate)
	vc.Tempo = EstimateTempo(spec, sampleRate)
	vc.PitchVariance = PitchVariance(track)
	vc.Formants = EstimateFormants(samples, sampleRate)
	vc.VoiceQualityScore = VoiceQuality(processed, spec)

	return vc, nil
}

// ExtractFile loads a WAV file at the engine working rate and extracts its
// characteristics, returning the sample duration in seconds alongside.
func (e *Extractor) ExtractFile(path string) (model.VoiceCharacteristics, float64, error) {
	samples, rate, err := audio.Load(path, audio.DefaultSampleRate)
	if err != nil {
		return model.VoiceCharacteristics{}, 0, err
	}
	vc, err := e.Extract(samples, rate)
	if err != nil {
		return model.VoiceCharacteristics{}, 0, err
	}
	return vc, audio.Duration(samples, rate), nil
}
