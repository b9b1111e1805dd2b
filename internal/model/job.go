package model

import "time"

// JobStatus is the lifecycle state of a training job.
type JobStatus string

const (
	StatusInitializing JobStatus = "initializing"
	StatusAnalyzing    JobStatus = "analyzing"
	StatusTraining     JobStatus = "training"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
	StatusCancelled    JobStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// TrainingJob is the serializable status record of one voice-training job.
// The executing worker is the only writer while the job runs; callers always
// receive a snapshot copy. Contains no scheduling primitives.
type TrainingJob struct {
	ID               string     `json:"id"`
	VoiceName        string     `json:"voice_name"`
	Language         string     `json:"language"`
	Quality          Quality    `json:"quality"`
	Status           JobStatus  `json:"status"`
	Progress         float64    `json:"progress"`
	CurrentStage     string     `json:"current_stage"`
	StageDetails     string     `json:"stage_details,omitempty"`
	AudioFiles       []string   `json:"audio_files"`
	EstimatedSeconds int        `json:"estimated_duration"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	FailedAt         *time.Time `json:"failed_at,omitempty"`
	Error            string     `json:"error,omitempty"`
	ModelID          string     `json:"model_id,omitempty"`
	QualityScore     float64    `json:"quality_score,omitempty"`
	TotalDuration    float64    `json:"total_duration,omitempty"`
}

// Clone returns a deep copy safe to hand to callers while the worker keeps
// mutating the original.
func (j *TrainingJob) Clone() TrainingJob {
	out := *j
	out.AudioFiles = append([]string(nil), j.AudioFiles...)
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		out.CompletedAt = &t
	}
	if j.FailedAt != nil {
		t := *j.FailedAt
		out.FailedAt = &t
	}
	return out
}
