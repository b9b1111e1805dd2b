package profile

import (
	"math"
	"testing"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

func TestScoreWithoutNoise(t *testing.T) {
	scorer := NewScorer(WithoutNoise())
	p := model.VoiceProfile{VoiceQualityScore: 0.5}

	cases := []struct {
		quality model.Quality
		want    float64
	}{
		{model.QualityDraft, 0.35},
		{model.QualityStandard, 0.40},
		{model.QualityHigh, 0.45},
		{model.QualityPremium, 0.475},
		{model.Quality("bogus"), 0.40},
	}
	for _, c := range cases {
		got := scorer.Score(p, c.quality)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Score(%q): expected %f, got %f", c.quality, c.want, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := NewScorer(WithSeed(42))
	for _, base := range []float64{-5, 0, 0.5, 1, 50} {
		p := model.VoiceProfile{VoiceQualityScore: base}
		for i := 0; i < 100; i++ {
			got := scorer.Score(p, model.QualityPremium)
			if got < 0 || got > 1 {
				t.Fatalf("Score out of [0,1] for base %f: %f", base, got)
			}
		}
	}
}

func TestScoreSeedReproducible(t *testing.T) {
	p := model.VoiceProfile{VoiceQualityScore: 0.7}

	a := NewScorer(WithSeed(7))
	b := NewScorer(WithSeed(7))
	for i := 0; i < 10; i++ {
		s1 := a.Score(p, model.QualityHigh)
		s2 := b.Score(p, model.QualityHigh)
		if s1 != s2 {
			t.Fatalf("Same seed diverged at draw %d: %f vs %f", i, s1, s2)
		}
	}
}

func TestScoreNoiseVaries(t *testing.T) {
	scorer := NewScorer(WithSeed(1))
	p := model.VoiceProfile{VoiceQualityScore: 0.5}

	first := scorer.Score(p, model.QualityStandard)
	varied := false
	for i := 0; i < 20; i++ {
		if scorer.Score(p, model.QualityStandard) != first {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("Expected noisy scores to vary across draws")
	}
}
