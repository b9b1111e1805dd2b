package model

// Fixed feature vector sizes shared by the extractor and the combiner.
const (
	NumMFCC   = 13
	NumChroma = 12

	// MaxFormants bounds the formant list on characteristics and profiles.
	MaxFormants = 4
)

// DefaultFormants is substituted when no formant peaks survive combination.
// Values are typical vocal-tract resonances in Hz.
var DefaultFormants = []float64{500, 1500, 2500, 3500}

// VoiceCharacteristics holds the quantitative features extracted from a single
// audio sample. Immutable once computed.
type VoiceCharacteristics struct {
	FundamentalFrequency float64              `json:"fundamental_frequency"`
	SpectralCentroid     float64              `json:"spectral_centroid"`
	SpectralRolloff      float64              `json:"spectral_rolloff"`
	ZeroCrossingRate     float64              `json:"zero_crossing_rate"`
	MFCC                 [NumMFCC]float64     `json:"mfcc_features"`
	Chroma               [NumChroma]float64   `json:"chroma_features"`
	Tempo                float64              `json:"tempo"`
	PitchVariance        float64              `json:"pitch_variance"`
	Formants             []float64            `json:"formants"`
	VoiceQualityScore    float64              `json:"voice_quality_score"`
}

// VoiceProfile is the aggregate of one or more samples' characteristics.
// Scalar and vector fields are arithmetic means; formants are the deduplicated
// ascending union truncated to MaxFormants. Created once by the combiner and
// immutable thereafter.
type VoiceProfile struct {
	FundamentalFrequency float64            `json:"fundamental_frequency"`
	SpectralCentroid     float64            `json:"spectral_centroid"`
	SpectralRolloff      float64            `json:"spectral_rolloff"`
	ZeroCrossingRate     float64            `json:"zero_crossing_rate"`
	MFCC                 [NumMFCC]float64   `json:"mfcc_features"`
	Chroma               [NumChroma]float64 `json:"chroma_features"`
	Tempo                float64            `json:"tempo"`
	PitchVariance        float64            `json:"pitch_variance"`
	Formants             []float64          `json:"formants"`
	VoiceQualityScore    float64            `json:"voice_quality_score"`
}

// Quality is the requested training quality tier.
type Quality string

const (
	QualityDraft    Quality = "draft"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
	QualityPremium  Quality = "premium"
)

// Valid reports whether q names a known tier.
func (q Quality) Valid() bool {
	switch q {
	case QualityDraft, QualityStandard, QualityHigh, QualityPremium:
		return true
	}
	return false
}
