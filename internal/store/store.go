// Package store persists one serialized voice model per training job as a
// versioned JSON record on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

const modelFileExt = ".json"

var (
	// ErrModelNotFound indicates no stored model exists for the given id.
	ErrModelNotFound = errors.New("voice model not found")
	// ErrUnsupportedFormat indicates a stored record with an unknown
	// format_version.
	ErrUnsupportedFormat = errors.New("unsupported model format version")
)

// ModelStore owns the job id -> stored model file mapping within one
// directory. Safe for concurrent use; the filesystem provides the atomicity.
type ModelStore struct {
	dir string
}

// NewModelStore creates the backing directory if needed.
func NewModelStore(dir string) (*ModelStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating model dir: %w", err)
	}
	return &ModelStore{dir: dir}, nil
}

func (s *ModelStore) path(jobID string) string {
	return filepath.Join(s.dir, jobID+modelFileExt)
}

// Save writes the model record for jobID, replacing any previous record.
// The write goes through a temp file and rename so readers never observe a
// partial record.
func (s *ModelStore) Save(jobID string, m model.StoredModel) error {
	m.FormatVersion = model.FormatVersion

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	tmp := s.path(jobID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	if err := os.Rename(tmp, s.path(jobID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("moving model file: %w", err)
	}
	return nil
}

// Load reads and validates the model record for jobID.
func (s *ModelStore) Load(jobID string) (model.StoredModel, error) {
	var m model.StoredModel

	data, err := os.ReadFile(s.path(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return m, fmt.Errorf("%w: %s", ErrModelNotFound, jobID)
		}
		return m, fmt.Errorf("reading model file: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decoding model %s: %w", jobID, err)
	}
	if m.FormatVersion != model.FormatVersion {
		return model.StoredModel{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, m.FormatVersion)
	}
	return m, nil
}

// Delete removes the model file for jobID. Returns false when no file
// existed; unknown ids are not an error.
func (s *ModelStore) Delete(jobID string) (bool, error) {
	err := os.Remove(s.path(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting model file: %w", err)
	}
	return true, nil
}

// Exists reports whether a model record is present for jobID.
func (s *ModelStore) Exists(jobID string) bool {
	_, err := os.Stat(s.path(jobID))
	return err == nil
}

// List returns summaries of all stored models, most recent first. Records
// that fail to parse are skipped rather than failing the listing.
func (s *ModelStore) List() ([]model.ModelSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading model dir: %w", err)
	}

	summaries := make([]model.ModelSummary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, modelFileExt) {
			continue
		}
		id := strings.TrimSuffix(name, modelFileExt)

		m, err := s.Load(id)
		if err != nil {
			continue
		}

		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}

		summaries = append(summaries, model.ModelSummary{
			ID:           id,
			VoiceName:    m.VoiceName,
			Language:     m.Language,
			Quality:      m.Quality,
			QualityScore: m.QualityScore,
			CreatedAt:    m.CreatedAt,
			FileSize:     size,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}
