package profile

import (
	"math/rand"
	"time"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

// Per-tier score multipliers. Unknown tiers fall back to the standard
// multiplier.
var qualityMultipliers = map[model.Quality]float64{
	model.QualityDraft:    0.7,
	model.QualityStandard: 0.8,
	model.QualityHigh:     0.9,
	model.QualityPremium:  0.95,
}

const (
	defaultMultiplier = 0.8
	noiseStdDev       = 0.05
)

// Scorer maps an aggregate profile and a quality tier to a bounded score.
// The zero-mean Gaussian perturbation models measurement noise and comes from
// a seedable source so tests can fix or disable it.
type Scorer struct {
	rng       *rand.Rand
	withNoise bool
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithSeed fixes the noise source seed for reproducible scores.
func WithSeed(seed int64) ScorerOption {
	return func(s *Scorer) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithoutNoise disables the perturbation entirely for deterministic scoring.
func WithoutNoise() ScorerOption {
	return func(s *Scorer) {
		s.withNoise = false
	}
}

// NewScorer returns a scorer with noise enabled and a time-based seed unless
// configured otherwise.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		withNoise: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes clamp(base * multiplier + noise, 0, 1) where base is the
// profile's voice quality score.
func (s *Scorer) Score(p model.VoiceProfile, quality model.Quality) float64 {
	multiplier, ok := qualityMultipliers[quality]
	if !ok {
		multiplier = defaultMultiplier
	}

	score := p.VoiceQualityScore * multiplier
	if s.withNoise {
		score += s.rng.NormFloat64() * noiseStdDev
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
