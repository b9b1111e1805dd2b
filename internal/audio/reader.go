package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// DefaultSampleRate is the engine working rate. All samples handed to the
// feature extractor are resampled to this rate.
const DefaultSampleRate = 22050

// MinSampleSeconds is the per-file minimum duration accepted for training.
const MinSampleSeconds = 2.0

var (
	// ErrInvalidAudio indicates an unreadable or corrupt audio file.
	ErrInvalidAudio = errors.New("invalid audio file")
	// ErrInsufficientAudio indicates a sample shorter than MinSampleSeconds.
	ErrInsufficientAudio = errors.New("insufficient audio duration")
)

// Load decodes a PCM WAV file into mono float64 samples normalized to [-1,1]
// at targetRate. Stereo input is downmixed by channel averaging; other channel
// layouts are rejected. A targetRate of 0 keeps the file's native rate.
func Load(path string, targetRate int) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidAudio, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: decoding %s: %v", ErrInvalidAudio, path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("%w: %s has no samples", ErrInvalidAudio, path)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	mono, err := toMonoFloat64(buf.Data, buf.Format.NumChannels, scale)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrInvalidAudio, path, err)
	}

	rate := buf.Format.SampleRate
	if targetRate > 0 && targetRate != rate {
		mono = Resample(mono, rate, targetRate)
		rate = targetRate
	}

	return mono, rate, nil
}

// Duration returns the length in seconds of a sample buffer.
func Duration(samples []float64, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(samples)) / float64(sampleRate)
}

func toMonoFloat64(data []int, numChannels int, scale float64) ([]float64, error) {
	switch numChannels {
	case 1:
		out := make([]float64, len(data))
		for i, s := range data {
			out[i] = float64(s) * scale
		}
		return out, nil
	case 2:
		frames := len(data) / 2
		out := make([]float64, frames)
		for i := 0; i < frames; i++ {
			l := float64(data[2*i]) * scale
			r := float64(data[2*i+1]) * scale
			out[i] = (l + r) * 0.5
		}
		return out, nil
	default:
		return nil, errors.New("unsupported channel count: only mono/stereo supported")
	}
}

// Resample converts samples from srcRate to dstRate by linear interpolation.
// Adequate for feature analysis; not intended for playback quality.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(math.Ceil(float64(len(samples)) / ratio))
	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}
