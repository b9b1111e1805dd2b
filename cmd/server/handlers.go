package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/audio"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/config"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/engine"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/pkg/logger"
)

// Server encapsulates the HTTP server and its dependencies.
type Server struct {
	eng    *engine.Engine
	config config.ServerConfig
	log    engine.Logger
}

// NewServer creates a new server instance.
func NewServer(eng *engine.Engine, cfg config.ServerConfig) *Server {
	return &Server{
		eng:    eng,
		config: cfg,
		log:    logger.GetLogger(),
	}
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Infof("Voice training API listening on %s", addr)
	return http.ListenAndServe(addr, s.setupRoutes())
}

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response.
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "VoiceClone API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":      "GET /health",
			"cloneVoice":  "POST /api/voices/clone",
			"cloneStatus": "GET /api/voices/clone/status/{id}",
			"cloneCancel": "POST /api/voices/clone/cancel/{id}",
			"listVoices":  "GET /api/voices",
			"deleteVoice": "DELETE /api/voices/{id}",
		},
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleCloneVoice handles POST /api/voices/clone: a multipart upload of one
// or more audio samples plus voice metadata. Non-WAV samples are transcoded
// before submission.
func (s *Server) handleCloneVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	// Max 50MB of samples per request.
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		s.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	voiceName := r.FormValue("voice_name")
	if voiceName == "" {
		s.respondError(w, http.StatusBadRequest, "voice_name is required")
		return
	}
	quality := model.Quality(r.FormValue("quality"))
	if quality == "" {
		quality = model.QualityStandard
	}
	if !quality.Valid() {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown quality tier %q", quality))
		return
	}
	language := r.FormValue("language")
	if language == "" {
		language = "en-US"
	}

	files := r.MultipartForm.File["audio_files"]
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one audio file is required")
		return
	}

	paths, err := s.saveUploads(r, files)
	if err != nil {
		s.log.Errorf("Failed to store uploads: %v", err)
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID, err := s.eng.Submit(paths, voiceName, quality, language)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, _ := s.eng.Status(jobID)
	s.respondJSON(w, http.StatusAccepted, CloneVoiceResponse{
		Message:          "Voice cloning started",
		JobID:            jobID,
		VoiceName:        voiceName,
		EstimatedSeconds: job.EstimatedSeconds,
	})
}

// saveUploads persists the uploaded samples under the upload dir, converting
// anything that is not already WAV.
func (s *Server) saveUploads(r *http.Request, files []*multipart.FileHeader) ([]string, error) {
	dir := filepath.Join(s.config.UploadDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
		}

		dstPath := filepath.Join(dir, filepath.Base(fh.Filename))
		dst, err := os.Create(dstPath)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("storing upload %s: %w", fh.Filename, err)
		}
		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			return nil, fmt.Errorf("writing upload %s: %w", fh.Filename, err)
		}

		if !strings.EqualFold(filepath.Ext(dstPath), ".wav") {
			converted, err := audio.ConvertToMonoWAV(r.Context(), dstPath, dir, audio.ConvertConfig{})
			if err != nil {
				return nil, fmt.Errorf("converting %s: %w", fh.Filename, err)
			}
			dstPath = converted
		}
		paths = append(paths, dstPath)
	}
	return paths, nil
}

// handleCloneStatus handles GET /api/voices/clone/status/{id}.
func (s *Server) handleCloneStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := s.eng.Status(jobID)
	if err != nil {
		if errors.Is(err, engine.ErrJobNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("Job %s not found", jobID))
			return
		}
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve job status")
		return
	}
	s.respondJSON(w, http.StatusOK, job)
}

// handleCloneCancel handles POST /api/voices/clone/cancel/{id}.
func (s *Server) handleCloneCancel(w http.ResponseWriter, r *http.Request, jobID string) {
	cancelled := s.eng.Cancel(jobID)
	s.respondJSON(w, http.StatusOK, CancelResponse{
		Cancelled: cancelled,
		JobID:     jobID,
	})
}

// handleListModels handles GET /api/voices.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.eng.ListModels()
	if err != nil {
		s.log.Errorf("Failed to list voice models: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve voice models")
		return
	}

	dtos := make([]ModelSummaryDTO, len(summaries))
	for i, m := range summaries {
		dtos[i] = toModelSummaryDTO(m)
	}
	s.respondJSON(w, http.StatusOK, ListModelsResponse{
		Models: dtos,
		Count:  len(dtos),
	})
}

// handleDeleteModel handles DELETE /api/voices/{id}.
func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request, jobID string) {
	removed, err := s.eng.DeleteModel(jobID)
	if err != nil {
		if errors.Is(err, engine.ErrJobActive) {
			s.respondError(w, http.StatusConflict, fmt.Sprintf("Job %s is still running; cancel it first", jobID))
			return
		}
		s.log.Errorf("Failed to delete model %s: %v", jobID, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete voice model")
		return
	}
	if !removed {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Voice model %s not found", jobID))
		return
	}
	s.respondJSON(w, http.StatusOK, DeleteModelResponse{
		Message: "Voice model deleted successfully",
		ID:      jobID,
	})
}
