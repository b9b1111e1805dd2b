// Package profile aggregates per-sample voice characteristics into a single
// voice profile and scores it against a requested quality tier.
package profile

import (
	"errors"
	"sort"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

// ErrEmptyInput indicates Combine was called with no characteristics. The job
// runner validates inputs first, so hitting this is an invariant breach.
var ErrEmptyInput = errors.New("no voice characteristics to combine")

// Combine merges characteristics from multiple samples into one profile.
// Scalar and vector fields are unweighted arithmetic means; formants are the
// exact-value-deduplicated ascending union truncated to model.MaxFormants,
// with model.DefaultFormants substituted when the union is empty.
// Pure and order-independent.
func Combine(list []model.VoiceCharacteristics) (model.VoiceProfile, error) {
	var p model.VoiceProfile
	if len(list) == 0 {
		return p, ErrEmptyInput
	}

	n := float64(len(list))
	for _, c := range list {
		p.FundamentalFrequency += c.FundamentalFrequency
		p.SpectralCentroid += c.SpectralCentroid
		p.SpectralRolloff += c.SpectralRolloff
		p.ZeroCrossingRate += c.ZeroCrossingRate
		p.Tempo += c.Tempo
		p.PitchVariance += c.PitchVariance
		p.VoiceQualityScore += c.VoiceQualityScore
		for i, v := range c.MFCC {
			p.MFCC[i] += v
		}
		for i, v := range c.Chroma {
			p.Chroma[i] += v
		}
	}

	p.FundamentalFrequency /= n
	p.SpectralCentroid /= n
	p.SpectralRolloff /= n
	p.ZeroCrossingRate /= n
	p.Tempo /= n
	p.PitchVariance /= n
	p.VoiceQualityScore /= n
	for i := range p.MFCC {
		p.MFCC[i] /= n
	}
	for i := range p.Chroma {
		p.Chroma[i] /= n
	}

	p.Formants = combineFormants(list)

	return p, nil
}

func combineFormants(list []model.VoiceCharacteristics) []float64 {
	seen := make(map[float64]struct{})
	var union []float64
	for _, c := range list {
		for _, f := range c.Formants {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			union = append(union, f)
		}
	}
	if len(union) == 0 {
		return append([]float64(nil), model.DefaultFormants...)
	}
	sort.Float64s(union)
	if len(union) > model.MaxFormants {
		union = union[:model.MaxFormants]
	}
	return union
}
