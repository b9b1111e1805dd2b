package main

import (
	"time"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

// CloneVoiceResponse is returned for POST /api/voices/clone.
type CloneVoiceResponse struct {
	Message          string `json:"message"`
	JobID            string `json:"job_id"`
	VoiceName        string `json:"voice_name"`
	EstimatedSeconds int    `json:"estimated_duration"`
}

// ModelSummaryDTO represents a stored voice model in listing responses.
type ModelSummaryDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Language     string    `json:"language"`
	Quality      string    `json:"quality"`
	QualityScore float64   `json:"quality_score"`
	CreatedAt    time.Time `json:"created_at"`
	FileSize     int64     `json:"file_size"`
}

// ListModelsResponse is the response for GET /api/voices.
type ListModelsResponse struct {
	Models []ModelSummaryDTO `json:"models"`
	Count  int               `json:"count"`
}

// CancelResponse is the response for POST /api/voices/clone/cancel/{id}.
type CancelResponse struct {
	Cancelled bool   `json:"cancelled"`
	JobID     string `json:"job_id"`
}

// DeleteModelResponse is the response for DELETE /api/voices/{id}.
type DeleteModelResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func toModelSummaryDTO(m model.ModelSummary) ModelSummaryDTO {
	return ModelSummaryDTO{
		ID:           m.ID,
		Name:         m.VoiceName,
		Language:     m.Language,
		Quality:      string(m.Quality),
		QualityScore: m.QualityScore,
		CreatedAt:    m.CreatedAt,
		FileSize:     m.FileSize,
	}
}
