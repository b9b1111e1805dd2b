package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
)

func newTestStore(t *testing.T) *ModelStore {
	t.Helper()
	s, err := NewModelStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewModelStore failed: %v", err)
	}
	return s
}

func sampleModel(name string, createdAt time.Time) model.StoredModel {
	return model.StoredModel{
		VoiceName:            name,
		Language:             "en",
		Quality:              model.QualityStandard,
		TotalDurationSeconds: 12.5,
		QualityScore:         0.81,
		CreatedAt:            createdAt,
		Profile: model.VoiceProfile{
			FundamentalFrequency: 145,
			Formants:             []float64{500, 1500, 2500},
		},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	in := sampleModel("alice", time.Now().UTC().Truncate(time.Second))

	if err := s.Save("job-1", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := s.Load("job-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.FormatVersion != model.FormatVersion {
		t.Errorf("Expected format version %q, got %q", model.FormatVersion, out.FormatVersion)
	}
	if out.VoiceName != in.VoiceName || out.Language != in.Language {
		t.Errorf("Roundtrip changed identity fields: %+v", out)
	}
	if out.QualityScore != in.QualityScore {
		t.Errorf("Expected quality score %f, got %f", in.QualityScore, out.QualityScore)
	}
	if out.Profile.FundamentalFrequency != in.Profile.FundamentalFrequency {
		t.Errorf("Roundtrip changed profile F0")
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", in.CreatedAt, out.CreatedAt)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("job-1", sampleModel("first", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("job-1", sampleModel("second", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := s.Load("job-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.VoiceName != "second" {
		t.Errorf("Expected replaced record, got %q", out.VoiceName)
	}
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load("nope")
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Expected ErrModelNotFound, got %v", err)
	}
}

func TestLoadUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := NewModelStore(dir)
	if err != nil {
		t.Fatalf("NewModelStore failed: %v", err)
	}

	record := []byte(`{"format_version": "99", "voice_name": "x"}`)
	if err := os.WriteFile(filepath.Join(dir, "job-1.json"), record, 0o644); err != nil {
		t.Fatalf("Writing fixture failed: %v", err)
	}

	_, err = s.Load("job-1")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("job-1", sampleModel("alice", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := s.Delete("job-1")
	if err != nil || !removed {
		t.Fatalf("Expected first delete to remove, got removed=%v err=%v", removed, err)
	}
	if s.Exists("job-1") {
		t.Error("Model still exists after delete")
	}

	removed, err = s.Delete("job-1")
	if err != nil {
		t.Fatalf("Second delete errored: %v", err)
	}
	if removed {
		t.Error("Expected second delete to report nothing removed")
	}
}

func TestListOrderAndSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := NewModelStore(dir)
	if err != nil {
		t.Fatalf("NewModelStore failed: %v", err)
	}

	base := time.Now().UTC()
	if err := s.Save("old", sampleModel("old", base.Add(-time.Hour))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("new", sampleModel("new", base)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Writing fixture failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("Writing fixture failed: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "old" {
		t.Errorf("Expected most recent first, got %q then %q", list[0].ID, list[1].ID)
	}
	if list[0].FileSize <= 0 {
		t.Errorf("Expected positive file size, got %d", list[0].FileSize)
	}
}
