package engine

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/profile"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// writeToneWAV writes a mono 16-bit PCM WAV sine tone fixture.
func writeToneWAV(t *testing.T, path string, freq float64, seconds float64) {
	t.Helper()

	const sampleRate = 22050
	n := int(seconds * sampleRate)
	data := make([]int, n)
	for i := range data {
		v := 0.5 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		data[i] = int(v * 32767)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test WAV: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to write test WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to close encoder: %v", err)
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	base := []Option{
		WithModelDir(filepath.Join(t.TempDir(), "models")),
		WithIterationDelay(time.Millisecond),
		WithMinTotalDuration(1),
		WithLogger(nopLogger{}),
		WithScorer(profile.NewScorer(profile.WithoutNoise())),
	}
	e, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func waitForTerminal(t *testing.T, e *Engine, jobID string) model.TrainingJob {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		j, err := e.Status(jobID)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if j.Status.Terminal() {
			return j
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Job %s did not reach a terminal state", jobID)
	return model.TrainingJob{}
}

func toneFixtures(t *testing.T, count int, seconds float64) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, count)
	for i := range paths {
		paths[i] = filepath.Join(dir, "sample"+string(rune('a'+i))+".wav")
		writeToneWAV(t, paths[i], 200+40*float64(i), seconds)
	}
	return paths
}

func TestTrainCompletes(t *testing.T) {
	e := newTestEngine(t, WithMinTotalDuration(10))
	files := toneFixtures(t, 3, 5.0)

	id, err := e.Submit(files, "alice", model.QualityStandard, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	initial, err := e.Status(id)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if initial.EstimatedSeconds != 180 {
		t.Errorf("Expected estimate 180s for 3 standard files, got %d", initial.EstimatedSeconds)
	}

	j := waitForTerminal(t, e, id)
	if j.Status != model.StatusCompleted {
		t.Fatalf("Expected completed, got %s (error %q)", j.Status, j.Error)
	}
	if j.Progress != 100 {
		t.Errorf("Expected progress 100, got %f", j.Progress)
	}
	if j.ModelID != id {
		t.Errorf("Expected model id %s, got %s", id, j.ModelID)
	}
	if j.QualityScore < 0 || j.QualityScore > 1 {
		t.Errorf("Quality score out of [0,1]: %f", j.QualityScore)
	}
	if math.Abs(j.TotalDuration-15.0) > 0.1 {
		t.Errorf("Expected ~15s total input duration, got %f", j.TotalDuration)
	}
	if j.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set")
	}

	m, err := e.LoadModel(id)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}
	if m.VoiceName != "alice" || m.Language != "en" || m.Quality != model.QualityStandard {
		t.Errorf("Stored model identity mismatch: %+v", m)
	}
	if m.QualityScore != j.QualityScore {
		t.Errorf("Stored score %f differs from job score %f", m.QualityScore, j.QualityScore)
	}

	list, err := e.ListModels()
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Errorf("Expected listing with the new model, got %+v", list)
	}
}

func TestTrainMissingFileFails(t *testing.T) {
	e := newTestEngine(t)
	files := toneFixtures(t, 1, 3.0)
	missing := filepath.Join(t.TempDir(), "missing.wav")
	files = append(files, missing)

	id, err := e.Submit(files, "bob", model.QualityDraft, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	j := waitForTerminal(t, e, id)
	if j.Status != model.StatusFailed {
		t.Fatalf("Expected failed, got %s", j.Status)
	}
	if !strings.Contains(j.Error, missing) {
		t.Errorf("Expected error to name %q, got %q", missing, j.Error)
	}
	if j.FailedAt == nil {
		t.Error("Expected FailedAt to be set")
	}

	if e.Store().Exists(id) {
		t.Error("Failed job must not leave a stored model")
	}
}

func TestTrainShortFileFails(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	short := filepath.Join(dir, "short.wav")
	writeToneWAV(t, short, 220, 1.0)

	id, err := e.Submit([]string{short}, "carol", model.QualityStandard, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	j := waitForTerminal(t, e, id)
	if j.Status != model.StatusFailed {
		t.Fatalf("Expected failed, got %s", j.Status)
	}
	if !strings.Contains(j.Error, short) {
		t.Errorf("Expected error to name the short file, got %q", j.Error)
	}
	if e.Store().Exists(id) {
		t.Error("Failed job must not leave a stored model")
	}
}

func TestTrainTotalDurationTooShort(t *testing.T) {
	e := newTestEngine(t, WithMinTotalDuration(10))
	files := toneFixtures(t, 2, 3.0)

	id, err := e.Submit(files, "judy", model.QualityStandard, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	j := waitForTerminal(t, e, id)
	if j.Status != model.StatusFailed {
		t.Fatalf("Expected failed, got %s", j.Status)
	}
	if !strings.Contains(j.Error, "total input") {
		t.Errorf("Expected error to mention the total input duration, got %q", j.Error)
	}
	if e.Store().Exists(id) {
		t.Error("Failed job must not leave a stored model")
	}
}

func TestSubmitNoFiles(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Submit(nil, "dave", model.QualityStandard, "en"); !errors.Is(err, ErrNoAudioFiles) {
		t.Errorf("Expected ErrNoAudioFiles, got %v", err)
	}
}

func TestCancelDuringTraining(t *testing.T) {
	e := newTestEngine(t, WithIterationDelay(30*time.Millisecond))
	files := toneFixtures(t, 1, 3.0)

	id, err := e.Submit(files, "erin", model.QualityPremium, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Wait until the synthetic training loop is running.
	deadline := time.Now().Add(30 * time.Second)
	for {
		j, err := e.Status(id)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if j.Status == model.StatusTraining {
			break
		}
		if j.Status.Terminal() {
			t.Fatalf("Job finished before cancellation: %s", j.Status)
		}
		if time.Now().After(deadline) {
			t.Fatal("Job never entered training")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !e.Cancel(id) {
		t.Fatal("Expected Cancel to accept a running job")
	}

	j := waitForTerminal(t, e, id)
	if j.Status != model.StatusCancelled {
		t.Fatalf("Expected cancelled, got %s", j.Status)
	}
	if j.Progress >= 100 {
		t.Errorf("Cancelled job must not reach 100%%, got %f", j.Progress)
	}
	if j.StageDetails != "" {
		t.Errorf("Expected cleared stage details, got %q", j.StageDetails)
	}
	if e.Store().Exists(id) {
		t.Error("Cancelled job must not leave a stored model")
	}
}

func TestCancelUnknownOrTerminal(t *testing.T) {
	e := newTestEngine(t)
	if e.Cancel("no-such-job") {
		t.Error("Expected Cancel of unknown job to return false")
	}

	files := toneFixtures(t, 1, 3.0)
	id, err := e.Submit(files, "frank", model.QualityDraft, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	waitForTerminal(t, e, id)

	if e.Cancel(id) {
		t.Error("Expected Cancel of completed job to return false")
	}
	j, err := e.Status(id)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if j.Status != model.StatusCompleted {
		t.Errorf("Cancel of a terminal job changed its status to %s", j.Status)
	}
}

func TestTrainingProgressFillsBand(t *testing.T) {
	e := newTestEngine(t, WithIterationDelay(10*time.Millisecond))
	files := toneFixtures(t, 1, 3.0)

	id, err := e.Submit(files, "kim", model.QualityPremium, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The 50 premium iterations fill (35,70] one step at a time; polling
	// faster than the iteration delay must observe values strictly inside
	// the band, not a jump from 35 to 70.
	sawInside := false
	for {
		j, err := e.Status(id)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if j.Progress > 35 && j.Progress < 70 {
			sawInside = true
		}
		if j.Status.Terminal() {
			if j.Status != model.StatusCompleted {
				t.Fatalf("Expected completed, got %s (error %q)", j.Status, j.Error)
			}
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !sawInside {
		t.Error("Never observed a progress value strictly inside the training band (35,70)")
	}
}

func TestStatusUnknown(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Status("no-such-job"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
}

func TestDeleteModelRunningJob(t *testing.T) {
	e := newTestEngine(t, WithIterationDelay(30*time.Millisecond))
	files := toneFixtures(t, 1, 3.0)

	id, err := e.Submit(files, "lena", model.QualityPremium, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	deadline := time.Now().Add(30 * time.Second)
	for {
		j, err := e.Status(id)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if j.Status == model.StatusTraining {
			break
		}
		if j.Status.Terminal() {
			t.Fatalf("Job finished before the delete attempt: %s", j.Status)
		}
		if time.Now().After(deadline) {
			t.Fatal("Job never entered training")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := e.DeleteModel(id); !errors.Is(err, ErrJobActive) {
		t.Fatalf("Expected ErrJobActive for a running job, got %v", err)
	}
	if _, err := e.Status(id); err != nil {
		t.Fatalf("Registry entry must survive a refused delete: %v", err)
	}

	if !e.Cancel(id) {
		t.Fatal("Expected Cancel to accept the running job")
	}
	waitForTerminal(t, e, id)

	removed, err := e.DeleteModel(id)
	if err != nil {
		t.Fatalf("Delete after cancellation errored: %v", err)
	}
	if !removed {
		t.Error("Expected delete to remove the cancelled job's registry entry")
	}
	if _, err := e.Status(id); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected registry entry removed, got %v", err)
	}
}

func TestDeleteModel(t *testing.T) {
	e := newTestEngine(t)
	files := toneFixtures(t, 1, 3.0)

	id, err := e.Submit(files, "grace", model.QualityDraft, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	waitForTerminal(t, e, id)

	removed, err := e.DeleteModel(id)
	if err != nil || !removed {
		t.Fatalf("Expected delete to remove, got removed=%v err=%v", removed, err)
	}
	if _, err := e.Status(id); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Expected registry entry removed with the model, got %v", err)
	}

	removed, err = e.DeleteModel(id)
	if err != nil {
		t.Fatalf("Second delete errored: %v", err)
	}
	if removed {
		t.Error("Expected second delete to report nothing removed")
	}
}

func TestProgressMonotone(t *testing.T) {
	e := newTestEngine(t, WithIterationDelay(5*time.Millisecond))
	files := toneFixtures(t, 2, 3.0)

	id, err := e.Submit(files, "heidi", model.QualityHigh, "en")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	last := -1.0
	for {
		j, err := e.Status(id)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if j.Progress < last {
			t.Fatalf("Progress went backwards: %f after %f", j.Progress, last)
		}
		last = j.Progress
		if j.Progress >= 100 && j.Status != model.StatusCompleted {
			t.Fatalf("Progress 100 with non-completed status %s", j.Status)
		}
		if j.Status.Terminal() {
			if j.Status != model.StatusCompleted {
				t.Fatalf("Expected completed, got %s (error %q)", j.Status, j.Error)
			}
			break
		}
		time.Sleep(time.Millisecond)
	}
}

func TestConcurrentJobsBoundedPool(t *testing.T) {
	e := newTestEngine(t, WithWorkers(2))
	files := toneFixtures(t, 1, 3.0)

	ids := make([]string, 5)
	for i := range ids {
		id, err := e.Submit(files, "ivan", model.QualityDraft, "en")
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		ids[i] = id
	}

	for _, id := range ids {
		j := waitForTerminal(t, e, id)
		if j.Status != model.StatusCompleted {
			t.Errorf("Job %s: expected completed, got %s (error %q)", id, j.Status, j.Error)
		}
	}

	list, err := e.ListModels()
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(list) != len(ids) {
		t.Errorf("Expected %d stored models, got %d", len(ids), len(list))
	}
}
