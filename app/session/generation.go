package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/GameIsFlash/Purchase-Generator/models"
	"github.com/GameIsFlash/Purchase-Generator/service"

	"github.com/google/uuid"
)

var (
	// ErrGenerationInProgress is returned when a run is started while another is running
	ErrGenerationInProgress = errors.New("generation already in progress")
	// ErrJobNotFound is returned for an unknown generation job ID
	ErrJobNotFound = errors.New("generation job not found")
)

// GenerationTask is a handle on one asynchronous generation run
type GenerationTask struct {
	mu     sync.Mutex
	result models.GenerationResult
	done   chan struct{}
}

func newGenerationTask(kind models.GenerationKind, startedAt time.Time) *GenerationTask {
	return &GenerationTask{
		result: models.GenerationResult{
			ID:        uuid.NewString(),
			Kind:      kind,
			State:     models.GenerationRunning,
			StartedAt: startedAt,
		},
		done: make(chan struct{}),
	}
}

// ID returns the job ID
func (t *GenerationTask) ID() string {
	return t.result.ID
}

// Done is closed when the run reaches a terminal state
func (t *GenerationTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the run finishes or ctx is done
func (t *GenerationTask) Wait(ctx context.Context) (models.GenerationResult, error) {
	select {
	case <-t.done:
		return t.Snapshot(), nil
	case <-ctx.Done():
		return t.Snapshot(), ctx.Err()
	}
}

// Snapshot returns a copy of the current result
func (t *GenerationTask) Snapshot() models.GenerationResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.result
	out.Files = append([]string(nil), t.result.Files...)
	out.Errors = append([]string(nil), t.result.Errors...)
	return out
}

func (t *GenerationTask) finish(update func(*models.GenerationResult), finishedAt time.Time) {
	t.mu.Lock()
	update(&t.result)
	t.result.FinishedAt = &finishedAt
	t.mu.Unlock()
	close(t.done)
}

// jobRegistry tracks every task of the session and the one in flight
type jobRegistry struct {
	mu      sync.Mutex
	running *GenerationTask
	tasks   map[string]*GenerationTask
}

func newJobRegistry() *jobRegistry {
	return &jobRegistry{tasks: make(map[string]*GenerationTask)}
}

func (r *jobRegistry) start(task *GenerationTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running != nil {
		select {
		case <-r.running.Done():
		default:
			return ErrGenerationInProgress
		}
	}
	r.running = task
	r.tasks[task.ID()] = task
	return nil
}

func (r *jobRegistry) get(id string) (*GenerationTask, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	return task, ok
}

// Job returns the task with the given ID
func (s *Session) Job(id string) (*GenerationTask, error) {
	task, ok := s.jobs.get(id)
	if !ok {
		return nil, ErrJobNotFound
	}
	return task, nil
}

// StartPurchaseGeneration snapshots the order and writes one purchase document per
// supplier in the background. The catalog is reloaded from the source for the run.
func (s *Session) StartPurchaseGeneration(ctx context.Context) (*GenerationTask, error) {
	lines := s.Lines()
	return s.startGeneration(ctx, models.GenerationPurchase, func(catalog *models.Catalog, gen *service.DocumentGenerator, images service.ImageResolverInterface, result *models.GenerationResult) {
		batches, lineErrs, err := service.NewSupplierGrouper(images).GroupPurchase(lines, catalog)
		if err != nil {
			result.State = models.GenerationFailed
			result.FatalError = err.Error()
			result.NothingToPurchase = errors.Is(err, service.ErrNothingToPurchase)
			return
		}
		files, errs := gen.GeneratePurchaseDocuments(batches)
		result.State = models.GenerationCompleted
		result.Files = files
		result.Errors = append(lineErrs, errs...)
	})
}

// StartAvailabilityGeneration writes one availability document per supplier for the
// whole catalog in the background
func (s *Session) StartAvailabilityGeneration(ctx context.Context) (*GenerationTask, error) {
	return s.startGeneration(ctx, models.GenerationAvailability, func(catalog *models.Catalog, gen *service.DocumentGenerator, images service.ImageResolverInterface, result *models.GenerationResult) {
		batches, err := service.NewSupplierGrouper(images).GroupAvailability(catalog)
		if err != nil {
			result.State = models.GenerationFailed
			result.FatalError = err.Error()
			return
		}
		files, errs := gen.GenerateAvailabilityDocuments(batches)
		result.State = models.GenerationCompleted
		result.Files = files
		result.Errors = errs
	})
}

type generationRun func(catalog *models.Catalog, gen *service.DocumentGenerator, images service.ImageResolverInterface, result *models.GenerationResult)

func (s *Session) startGeneration(ctx context.Context, kind models.GenerationKind, run generationRun) (*GenerationTask, error) {
	task := newGenerationTask(kind, s.now())
	if err := s.jobs.start(task); err != nil {
		log.Printf("⚠️  %s generation rejected: %v", kind, err)
		return nil, err
	}

	paths := s.Paths()
	source := s.newSource(paths)
	// The run outlives the request that started it
	runCtx := context.WithoutCancel(ctx)

	go func() {
		log.Printf("🚀 Starting %s generation %s", kind, task.ID())

		var result models.GenerationResult
		catalog, err := source.Load(runCtx)
		if err != nil {
			result.State = models.GenerationFailed
			result.FatalError = err.Error()
		} else {
			gen := service.NewDocumentGenerator(paths.OutputDir, s.sink).WithClock(s.now)
			run(catalog, gen, service.NewImageResolver(paths.ImagesDir), &result)
		}

		task.finish(func(r *models.GenerationResult) {
			r.State = result.State
			r.Files = result.Files
			r.Errors = result.Errors
			r.FatalError = result.FatalError
			r.NothingToPurchase = result.NothingToPurchase
		}, s.now())

		if result.State == models.GenerationFailed {
			log.Printf("❌ %s generation %s failed: %s", kind, task.ID(), result.FatalError)
			return
		}
		log.Printf("🎉 %s generation %s completed: %d files, %d errors", kind, task.ID(), len(result.Files), len(result.Errors))
	}()

	return task, nil
}
