package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"orca-backend/models"

	"github.com/google/uuid"
)

// ErrGenerationJobNotFound is returned for unknown job ids
var ErrGenerationJobNotFound = errors.New("generation job not found")

// DefaultJobCapacity bounds how many jobs the repository holds
const DefaultJobCapacity = 256

// GenerationJobRepository keeps generation jobs in process memory. Jobs only
// live as long as the server; a restart forgets them like the feed. Past
// capacity the oldest finished jobs are evicted. Running jobs are never
// evicted so their pollers always find them.
type GenerationJobRepository struct {
	mu       sync.RWMutex
	jobs     map[uuid.UUID]*models.GenerationJob
	order    []uuid.UUID // insertion order
	capacity int
	now      func() time.Time
}

// GenerationJobRepositoryOption is a functional option for GenerationJobRepository
type GenerationJobRepositoryOption func(*GenerationJobRepository)

// JobsWithCapacity overrides DefaultJobCapacity
func JobsWithCapacity(n int) GenerationJobRepositoryOption {
	return func(r *GenerationJobRepository) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// NewGenerationJobRepository creates a new generation job repository
func NewGenerationJobRepository(opts ...GenerationJobRepositoryOption) *GenerationJobRepository {
	r := &GenerationJobRepository{
		jobs:     make(map[uuid.UUID]*models.GenerationJob),
		capacity: DefaultJobCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stores a new generation job, assigning its id and timestamps
func (r *GenerationJobRepository) Create(ctx context.Context, job *models.GenerationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	now := r.now()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Steps == nil {
		job.Steps = make(models.GenerationSteps, 0)
	}
	if _, exists := r.jobs[job.ID]; !exists {
		r.order = append(r.order, job.ID)
	}
	r.jobs[job.ID] = cloneJob(job)
	r.pruneLocked()
	return nil
}

// GetByID retrieves a copy of a generation job
func (r *GenerationJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GenerationJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrGenerationJobNotFound
	}
	return cloneJob(job), nil
}

// UpdateStatus updates the status of a generation job
func (r *GenerationJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.GenerationJobStatus) error {
	return r.update(id, func(job *models.GenerationJob) {
		job.Status = status
	})
}

// UpdateProgress updates the progress of a generation job
func (r *GenerationJobRepository) UpdateProgress(ctx context.Context, id uuid.UUID, currentStep string, steps models.GenerationSteps) error {
	return r.update(id, func(job *models.GenerationJob) {
		job.CurrentStep = &currentStep
		job.Steps = append(models.GenerationSteps(nil), steps...)
	})
}

// Complete marks a generation job as completed with the app it created
func (r *GenerationJobRepository) Complete(ctx context.Context, id uuid.UUID, appID string) error {
	return r.update(id, func(job *models.GenerationJob) {
		now := r.now()
		job.Status = models.JobStatusCompleted
		job.AppID = &appID
		job.CompletedAt = &now
	})
}

// Fail marks a generation job as failed
func (r *GenerationJobRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	return r.update(id, func(job *models.GenerationJob) {
		now := r.now()
		job.Status = models.JobStatusFailed
		job.ErrorMessage = &errorMessage
		job.CompletedAt = &now
	})
}

func (r *GenerationJobRepository) update(id uuid.UUID, fn func(*models.GenerationJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return ErrGenerationJobNotFound
	}
	fn(job)
	job.UpdatedAt = r.now()
	return nil
}

func (r *GenerationJobRepository) pruneLocked() {
	excess := len(r.jobs) - r.capacity
	if excess <= 0 {
		return
	}
	kept := r.order[:0]
	for _, id := range r.order {
		job := r.jobs[id]
		if excess > 0 && job.IsFinished() {
			delete(r.jobs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
}

func cloneJob(job *models.GenerationJob) *models.GenerationJob {
	c := *job
	c.Steps = append(models.GenerationSteps(nil), job.Steps...)
	if c.Steps == nil {
		c.Steps = make(models.GenerationSteps, 0)
	}
	return &c
}
