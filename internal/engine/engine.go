// Package engine runs voice-profile training jobs: it owns the job registry,
// a bounded worker pool, and the staged state machine that takes a set of
// audio samples to a stored voice model.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/feature"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/profile"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/store"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/pkg/logger"
)

// Logger is the minimal logging surface the engine needs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Config holds engine construction parameters.
type Config struct {
	ModelDir        string
	Workers         int
	IterationDelay  time.Duration
	MinTotalSeconds float64
	Logger          Logger
	Scorer          *profile.Scorer
}

// Option configures the engine.
type Option func(*Config)

// WithModelDir sets the directory for stored voice models.
func WithModelDir(dir string) Option {
	return func(c *Config) { c.ModelDir = dir }
}

// WithWorkers caps the number of concurrently running training jobs.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithIterationDelay sets the duration of one synthetic training work unit.
func WithIterationDelay(d time.Duration) Option {
	return func(c *Config) { c.IterationDelay = d }
}

// WithMinTotalDuration sets the minimum combined input duration in seconds a
// job must provide to start training.
func WithMinTotalDuration(seconds float64) Option {
	return func(c *Config) { c.MinTotalSeconds = seconds }
}

// WithLogger sets the engine logger.
func WithLogger(log Logger) Option {
	return func(c *Config) { c.Logger = log }
}

// WithScorer sets the quality scorer, e.g. one with noise disabled for tests.
func WithScorer(s *profile.Scorer) Option {
	return func(c *Config) { c.Scorer = s }
}

func defaultConfig() *Config {
	return &Config{
		ModelDir:        "models",
		Workers:         4,
		IterationDelay:  300 * time.Millisecond,
		MinTotalSeconds: 10,
	}
}

// jobHandle pairs the serializable job snapshot with the scheduling state the
// snapshot must never expose. The executing worker is the only writer of job
// fields; the cancel flag is the only field another goroutine may set.
type jobHandle struct {
	mu        sync.Mutex
	job       model.TrainingJob
	cancelled atomic.Bool
}

func (h *jobHandle) snapshot() model.TrainingJob {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.job.Clone()
}

func (h *jobHandle) update(fn func(j *model.TrainingJob)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.job)
}

// Engine is the explicitly constructed training engine. It holds no global
// state; callers create one and share it.
type Engine struct {
	mu   sync.Mutex
	jobs map[string]*jobHandle

	store     *store.ModelStore
	extractor *feature.Extractor
	scorer    *profile.Scorer
	log       Logger

	sem             chan struct{}
	iterDelay       time.Duration
	minTotalSeconds float64
	wg              sync.WaitGroup
}

// New constructs an engine owning its worker pool, registry and model store.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.Scorer == nil {
		cfg.Scorer = profile.NewScorer()
	}

	st, err := store.NewModelStore(cfg.ModelDir)
	if err != nil {
		return nil, fmt.Errorf("creating model store: %w", err)
	}

	return &Engine{
		jobs:            make(map[string]*jobHandle),
		store:           st,
		extractor:       feature.NewExtractor(),
		scorer:          cfg.Scorer,
		log:             cfg.Logger,
		sem:             make(chan struct{}, cfg.Workers),
		iterDelay:       cfg.IterationDelay,
		minTotalSeconds: cfg.MinTotalSeconds,
	}, nil
}

// Submit registers a training job and schedules it on the worker pool.
// It never blocks on training: when the pool is saturated the job queues for
// the next free worker. Returns the new job id.
func (e *Engine) Submit(audioFiles []string, voiceName string, quality model.Quality, language string) (string, error) {
	if len(audioFiles) == 0 {
		return "", ErrNoAudioFiles
	}

	h := &jobHandle{
		job: model.TrainingJob{
			ID:               uuid.NewString(),
			VoiceName:        voiceName,
			Language:         language,
			Quality:          quality,
			Status:           model.StatusInitializing,
			CurrentStage:     "Preparing for training...",
			AudioFiles:       append([]string(nil), audioFiles...),
			EstimatedSeconds: estimateTrainingSeconds(len(audioFiles), quality),
			CreatedAt:        time.Now(),
		},
	}

	e.mu.Lock()
	e.jobs[h.job.ID] = h
	e.mu.Unlock()

	e.log.Infof("Submitted training job %s for voice %q (%d files, quality %s)",
		h.job.ID, voiceName, len(audioFiles), quality)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.sem <- struct{}{}
		defer func() { <-e.sem }()
		e.run(h)
	}()

	return h.job.ID, nil
}

// Status returns a snapshot of the job record.
func (e *Engine) Status(jobID string) (model.TrainingJob, error) {
	e.mu.Lock()
	h, ok := e.jobs[jobID]
	e.mu.Unlock()
	if !ok {
		return model.TrainingJob{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return h.snapshot(), nil
}

// Cancel requests cooperative cancellation. The running worker observes the
// flag at its next checkpoint. Returns false when the job is unknown or
// already terminal.
func (e *Engine) Cancel(jobID string) bool {
	e.mu.Lock()
	h, ok := e.jobs[jobID]
	e.mu.Unlock()
	if !ok {
		return false
	}

	h.mu.Lock()
	if h.job.Status.Terminal() {
		h.mu.Unlock()
		return false
	}
	h.cancelled.Store(true)
	h.mu.Unlock()

	e.log.Infof("Cancellation requested for job %s", jobID)
	return true
}

// ListModels lists stored voice models, most recent first.
func (e *Engine) ListModels() ([]model.ModelSummary, error) {
	return e.store.List()
}

// LoadModel loads a stored voice model by job id.
func (e *Engine) LoadModel(jobID string) (model.StoredModel, error) {
	return e.store.Load(jobID)
}

// DeleteModel removes the stored model file and the registry entry for jobID.
// A job that has not reached a terminal state is refused with ErrJobActive so
// its worker never persists a model the registry no longer references.
// Idempotent otherwise: returns false when neither existed.
func (e *Engine) DeleteModel(jobID string) (bool, error) {
	e.mu.Lock()
	h, known := e.jobs[jobID]
	e.mu.Unlock()

	if known {
		h.mu.Lock()
		terminal := h.job.Status.Terminal()
		h.mu.Unlock()
		if !terminal {
			return false, fmt.Errorf("%w: %s", ErrJobActive, jobID)
		}
	}

	removed, err := e.store.Delete(jobID)
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	delete(e.jobs, jobID)
	e.mu.Unlock()

	return removed || known, nil
}

// Close waits for all submitted jobs to reach a terminal state.
func (e *Engine) Close() error {
	e.wg.Wait()
	return nil
}
