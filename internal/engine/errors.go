package engine

import "errors"

var (
	// ErrJobNotFound indicates an unknown job id.
	ErrJobNotFound = errors.New("training job not found")
	// ErrNoAudioFiles indicates a submission without input samples.
	ErrNoAudioFiles = errors.New("no audio files provided")
	// ErrFileNotFound indicates an input path that does not exist.
	ErrFileNotFound = errors.New("audio file not found")
	// ErrJobActive indicates a deletion attempt on a job that is still
	// running.
	ErrJobActive = errors.New("training job still running")
)
