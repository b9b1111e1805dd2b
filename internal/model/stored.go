package model

import "time"

// FormatVersion is the serialization schema version written into every
// StoredModel. Load paths must reject versions they do not understand.
const FormatVersion = "1"

// StoredModel is the on-disk record of one completed training job.
type StoredModel struct {
	FormatVersion        string       `json:"format_version"`
	VoiceName            string       `json:"voice_name"`
	Language             string       `json:"language"`
	Quality              Quality      `json:"quality"`
	Profile              VoiceProfile `json:"profile"`
	TotalDurationSeconds float64      `json:"total_input_duration_seconds"`
	QualityScore         float64      `json:"quality_score"`
	CreatedAt            time.Time    `json:"created_at"`
}

// ModelSummary is the listing view of a stored model, keyed by job id.
type ModelSummary struct {
	ID           string    `json:"id"`
	VoiceName    string    `json:"name"`
	Language     string    `json:"language"`
	Quality      Quality   `json:"quality"`
	QualityScore float64   `json:"quality_score"`
	CreatedAt    time.Time `json:"created_at"`
	FileSize     int64     `json:"file_size"`
}
