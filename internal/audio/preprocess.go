package audio

import "math"

// Silence detection tunables. Frames whose RMS energy falls more than
// SilenceThresholdDB below the loudest frame are treated as silence.
const (
	SilenceThresholdDB = 20.0
	silenceFrameLength = 2048
	silenceHopLength   = 512

	preEmphasisCoeff = 0.97
)

// Normalize scales samples so the absolute peak is 1.0. A silent buffer is
// returned unchanged.
func Normalize(samples []float64) []float64 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return samples
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s / peak
	}
	return out
}

// Interval is a half-open [Start,End) span of sample indices.
type Interval struct {
	Start, End int
}

// DetectNonSilent returns the non-silent spans of the signal, found by
// comparing per-frame RMS energy against a threshold SilenceThresholdDB below
// the loudest frame.
func DetectNonSilent(samples []float64) []Interval {
	if len(samples) == 0 {
		return nil
	}

	frameLen := silenceFrameLength
	hop := silenceHopLength
	if len(samples) < frameLen {
		frameLen = len(samples)
		hop = frameLen
	}

	var rms []float64
	maxRMS := 0.0
	for start := 0; start < len(samples); start += hop {
		end := start + frameLen
		if end > len(samples) {
			end = len(samples)
		}
		var sum float64
		for _, s := range samples[start:end] {
			sum += s * s
		}
		r := math.Sqrt(sum / float64(end-start))
		rms = append(rms, r)
		if r > maxRMS {
			maxRMS = r
		}
		if end == len(samples) {
			break
		}
	}
	if maxRMS == 0 {
		return nil
	}

	threshold := maxRMS * math.Pow(10, -SilenceThresholdDB/20)

	var intervals []Interval
	inSpan := false
	spanStart := 0
	for i, r := range rms {
		voiced := r >= threshold
		start := i * hop
		if voiced && !inSpan {
			inSpan = true
			spanStart = start
		}
		if !voiced && inSpan {
			inSpan = false
			intervals = append(intervals, Interval{Start: spanStart, End: start})
		}
	}
	if inSpan {
		intervals = append(intervals, Interval{Start: spanStart, End: len(samples)})
	}
	return intervals
}

// TrimSilence concatenates the non-silent spans of the signal, discarding
// leading, trailing and internal silence. When everything is classified as
// silence the original signal is returned rather than an empty one.
func TrimSilence(samples []float64) []float64 {
	intervals := DetectNonSilent(samples)
	if len(intervals) == 0 {
		return samples
	}
	total := 0
	for _, iv := range intervals {
		total += iv.End - iv.Start
	}
	if total == 0 {
		return samples
	}
	out := make([]float64, 0, total)
	for _, iv := range intervals {
		out = append(out, samples[iv.Start:iv.End]...)
	}
	return out
}

// PreEmphasis applies the standard first-order high-frequency boost
// y[n] = x[n] - c*x[n-1].
func PreEmphasis(samples []float64) []float64 {
	if len(samples) == 0 {
		return samples
	}
	out := make([]float64, len(samples))
	out[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		out[i] = samples[i] - preEmphasisCoeff*samples[i-1]
	}
	return out
}

// Preprocess runs the full analysis front end: peak normalization, silence
// removal, then pre-emphasis. If silence removal leaves nothing the original
// (normalized) signal is used instead.
func Preprocess(samples []float64) []float64 {
	normalized := Normalize(samples)
	trimmed := TrimSilence(normalized)
	if len(trimmed) == 0 {
		trimmed = normalized
	}
	return PreEmphasis(trimmed)
}
