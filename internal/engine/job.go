package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/audio"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/profile"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/store"
)

// trainingStage pairs a stage label with its cumulative progress ceiling.
type trainingStage struct {
	label   string
	ceiling float64
}

// The fixed stage table. "Preprocessing audio data" shares the extraction
// ceiling; it marks the transition into combination.
var trainingStages = []trainingStage{
	{"Analyzing audio quality", 10},
	{"Extracting voice characteristics", 35},
	{"Preprocessing audio data", 35},
	{"Training neural network", 70},
	{"Optimizing voice model", 85},
	{"Validating output quality", 95},
	{"Finalizing model", 100},
}

const (
	stageAnalyze = iota
	stageExtract
	stagePreprocess
	stageTrain
	stageOptimize
	stageValidate
	stageFinalize
)

// Synthetic optimization iterations per quality tier.
var trainingIterations = map[model.Quality]int{
	model.QualityDraft:    5,
	model.QualityStandard: 15,
	model.QualityHigh:     30,
	model.QualityPremium:  50,
}

const defaultIterations = 15

// Informational duration estimate shown to clients.
var estimateBaseSeconds = map[model.Quality]int{
	model.QualityDraft:    30,
	model.QualityStandard: 120,
	model.QualityHigh:     300,
	model.QualityPremium:  600,
}

func estimateTrainingSeconds(numFiles int, quality model.Quality) int {
	base, ok := estimateBaseSeconds[quality]
	if !ok {
		base = estimateBaseSeconds[model.QualityStandard]
	}
	multiplier := float64(numFiles) * 0.5
	if multiplier > 3.0 {
		multiplier = 3.0
	}
	return int(float64(base) * multiplier)
}

// run executes the full stage sequence for one job. It is the single writer
// of the job record; other goroutines only read snapshots or set the cancel
// flag.
func (e *Engine) run(h *jobHandle) {
	if err := e.runStages(h); err != nil {
		now := time.Now()
		var id string
		h.update(func(j *model.TrainingJob) {
			j.Status = model.StatusFailed
			j.Error = err.Error()
			j.FailedAt = &now
			id = j.ID
		})
		e.log.Errorf("Training job %s failed: %v", id, err)
	}
}

// checkpoint observes the cancellation flag. When set it transitions the job
// to cancelled and reports true; no other fields are touched.
func (e *Engine) checkpoint(h *jobHandle) bool {
	if !h.cancelled.Load() {
		return false
	}
	var id string
	h.update(func(j *model.TrainingJob) {
		j.Status = model.StatusCancelled
		j.StageDetails = ""
		id = j.ID
	})
	e.log.Infof("Training job %s cancelled", id)
	return true
}

// stageFloor is the progress value at which a stage's band begins.
func stageFloor(idx int) float64 {
	if idx == 0 {
		return 0
	}
	return trainingStages[idx-1].ceiling
}

// enterStage marks the transition into a stage. Marker stages jump straight
// to their ceiling; stages that report sub-progress (extraction, training)
// start at the band floor and fill toward the ceiling as their work completes.
func (e *Engine) enterStage(h *jobHandle, idx int, status model.JobStatus) {
	st := trainingStages[idx]
	target := st.ceiling
	if idx == stageExtract || idx == stageTrain {
		target = stageFloor(idx)
	}
	h.update(func(j *model.TrainingJob) {
		j.Status = status
		j.CurrentStage = st.label
		if target > j.Progress {
			j.Progress = target
		}
	})
}

func (e *Engine) runStages(h *jobHandle) error {
	submitted := h.snapshot()
	jobID := submitted.ID
	quality := submitted.Quality
	files := submitted.AudioFiles

	// Stage 1: validate every input before any extraction work.
	if e.checkpoint(h) {
		return nil
	}
	e.enterStage(h, stageAnalyze, model.StatusAnalyzing)

	loaded := make([][]float64, 0, len(files))
	totalDuration := 0.0
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		samples, rate, err := audio.Load(path, audio.DefaultSampleRate)
		if err != nil {
			return err
		}
		dur := audio.Duration(samples, rate)
		if dur < audio.MinSampleSeconds {
			return fmt.Errorf("%w: %s is %.1fs (minimum %.0fs)",
				audio.ErrInsufficientAudio, path, dur, audio.MinSampleSeconds)
		}
		totalDuration += dur
		loaded = append(loaded, samples)
	}
	if totalDuration < e.minTotalSeconds {
		return fmt.Errorf("%w: total input is %.1fs (minimum %.0fs)",
			audio.ErrInsufficientAudio, totalDuration, e.minTotalSeconds)
	}

	// Stage 2: per-file feature extraction with linear progress.
	if e.checkpoint(h) {
		return nil
	}
	e.enterStage(h, stageExtract, model.StatusAnalyzing)
	extractFloor := stageFloor(stageExtract)
	extractCeiling := trainingStages[stageExtract].ceiling

	characteristics := make([]model.VoiceCharacteristics, 0, len(loaded))
	for i, samples := range loaded {
		vc, err := e.extractor.Extract(samples, audio.DefaultSampleRate)
		if err != nil {
			return fmt.Errorf("extracting characteristics from %s: %w", files[i], err)
		}
		characteristics = append(characteristics, vc)

		progress := extractFloor + (extractCeiling-extractFloor)*float64(i+1)/float64(len(loaded))
		h.update(func(j *model.TrainingJob) {
			if progress > j.Progress {
				j.Progress = progress
			}
		})
	}

	// Stage 3: combine into the aggregate profile.
	if e.checkpoint(h) {
		return nil
	}
	e.enterStage(h, stagePreprocess, model.StatusAnalyzing)

	voiceProfile, err := profile.Combine(characteristics)
	if err != nil {
		return fmt.Errorf("combining voice characteristics: %w", err)
	}

	// Stage 4: synthetic optimization with per-iteration cancellation
	// checkpoints.
	if e.checkpoint(h) {
		return nil
	}
	e.enterStage(h, stageTrain, model.StatusTraining)
	trainFloor := stageFloor(stageTrain)
	trainCeiling := trainingStages[stageTrain].ceiling

	iterations, ok := trainingIterations[quality]
	if !ok {
		iterations = defaultIterations
	}
	for i := 0; i < iterations; i++ {
		if e.checkpoint(h) {
			return nil
		}
		time.Sleep(e.iterDelay)

		progress := trainFloor + (trainCeiling-trainFloor)*float64(i+1)/float64(iterations)
		details := fmt.Sprintf("Training iteration %d/%d", i+1, iterations)
		h.update(func(j *model.TrainingJob) {
			if progress > j.Progress {
				j.Progress = progress
			}
			j.StageDetails = details
		})
	}

	// Stage 5: optimization marker.
	if e.checkpoint(h) {
		return nil
	}
	e.enterStage(h, stageOptimize, model.StatusTraining)

	// Stage 6: score the profile against the requested tier.
	if e.checkpoint(h) {
		return nil
	}
	e.enterStage(h, stageValidate, model.StatusTraining)
	qualityScore := e.scorer.Score(voiceProfile, quality)

	// Stage 7: persist, then mark completed. Progress hits 100 only with
	// the completed status.
	if e.checkpoint(h) {
		return nil
	}
	h.update(func(j *model.TrainingJob) {
		j.CurrentStage = trainingStages[stageFinalize].label
		j.StageDetails = ""
	})

	snap := h.snapshot()
	stored := model.StoredModel{
		VoiceName:            snap.VoiceName,
		Language:             snap.Language,
		Quality:              snap.Quality,
		Profile:              voiceProfile,
		TotalDurationSeconds: totalDuration,
		QualityScore:         qualityScore,
		CreatedAt:            time.Now(),
	}
	if err := e.store.Save(jobID, stored); err != nil {
		return fmt.Errorf("saving voice model: %w", err)
	}

	now := time.Now()
	h.update(func(j *model.TrainingJob) {
		j.Status = model.StatusCompleted
		j.Progress = trainingStages[stageFinalize].ceiling
		j.QualityScore = qualityScore
		j.TotalDuration = totalDuration
		j.ModelID = jobID
		j.CompletedAt = &now
	})
	e.log.Infof("Training job %s completed (quality score %.3f)", jobID, qualityScore)
	return nil
}

// Store exposes the engine's model store to the serving layer.
func (e *Engine) Store() *store.ModelStore {
	return e.store
}
