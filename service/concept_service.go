package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"orca-backend/logger"
	"orca-backend/metrics"
	"orca-backend/models"
	"orca-backend/notify"
	"orca-backend/repository"
)

// ConceptGenerator is the external collaborator that produces app concepts
type ConceptGenerator interface {
	DraftConcept(ctx context.Context, idea string) (*models.GeneratedAppConcept, error)
	ReverseEngineer(ctx context.Context, sector string) (*models.GeneratedAppConcept, error)
}

const (
	stepGenerate = "Generating Concept"
	stepValidate = "Validating Blueprint"
	stepDeploy   = "Deploying Concept"
)

// ConceptService runs concept generation as asynchronous jobs. A job applies
// at most one portfolio mutation, and only when generation succeeds.
type ConceptService struct {
	jobRepo   *repository.GenerationJobRepository
	generator ConceptGenerator
	portfolio *PortfolioService
	session   *SessionService
	notes     *notify.Log
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// ConceptServiceOption is a functional option for ConceptService
type ConceptServiceOption func(*ConceptService)

// ConceptWithGenerationJobRepository sets the generation job repository
func ConceptWithGenerationJobRepository(repo *repository.GenerationJobRepository) ConceptServiceOption {
	return func(s *ConceptService) {
		s.jobRepo = repo
	}
}

// ConceptWithGenerator sets the concept generator
func ConceptWithGenerator(g ConceptGenerator) ConceptServiceOption {
	return func(s *ConceptService) {
		s.generator = g
	}
}

// ConceptWithPortfolio sets the portfolio engine that receives generated concepts
func ConceptWithPortfolio(p *PortfolioService) ConceptServiceOption {
	return func(s *ConceptService) {
		s.portfolio = p
	}
}

// ConceptWithSession sets the auth gate
func ConceptWithSession(sess *SessionService) ConceptServiceOption {
	return func(s *ConceptService) {
		s.session = sess
	}
}

// ConceptWithNotifications sets the notification feed
func ConceptWithNotifications(l *notify.Log) ConceptServiceOption {
	return func(s *ConceptService) {
		s.notes = l
	}
}

// ConceptWithMetrics sets the metrics sink
func ConceptWithMetrics(m *metrics.Metrics) ConceptServiceOption {
	return func(s *ConceptService) {
		s.metrics = m
	}
}

// ConceptWithLogger sets the logger
func ConceptWithLogger(log *logger.Logger) ConceptServiceOption {
	return func(s *ConceptService) {
		s.log = log
	}
}

// NewConceptService creates a new concept service
func NewConceptService(opts ...ConceptServiceOption) *ConceptService {
	s := &ConceptService{log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("service", "ConceptService")
	return s
}

// StartGenerationRequest represents a request to generate a concept
type StartGenerationRequest struct {
	Mode  models.GenerationMode
	Input string // idea prompt or sector label
}

// StartGenerationResult represents the result of creating a generation job
type StartGenerationResult struct {
	JobID uuid.UUID
}

// StartGeneration validates the request and creates a pending job. It returns
// immediately; ProcessGeneration does the work.
func (s *ConceptService) StartGeneration(ctx context.Context, req StartGenerationRequest) (*StartGenerationResult, error) {
	if s.jobRepo == nil {
		return nil, errors.New("generation job repository not set")
	}
	if s.session == nil {
		return nil, errors.New("session service not set")
	}
	if _, err := s.session.Require(ctx); err != nil {
		return nil, err
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidGenerationInput, req.Mode)
	}
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidGenerationInput)
	}

	job := &models.GenerationJob{
		ID:     uuid.New(),
		Mode:   req.Mode,
		Input:  input,
		Status: models.JobStatusPending,
		Steps: models.GenerationSteps{
			{Name: stepGenerate, Status: "pending"},
			{Name: stepValidate, Status: "pending"},
			{Name: stepDeploy, Status: "pending"},
		},
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create generation job: %w", err)
	}

	s.log.Info("generation job created", "job_id", job.ID, "mode", job.Mode)
	return &StartGenerationResult{JobID: job.ID}, nil
}

// GetJob returns a job by id
func (s *ConceptService) GetJob(ctx context.Context, jobID uuid.UUID) (*models.GenerationJob, error) {
	if s.jobRepo == nil {
		return nil, errors.New("generation job repository not set")
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ProcessGeneration calls the generator once and applies the concept to the
// portfolio. It runs detached from the request that started it, so a client
// that stops polling still gets the app. Failure mutates no document and
// emits a single notification.
func (s *ConceptService) ProcessGeneration(ctx context.Context, jobID uuid.UUID) error {
	if s.jobRepo == nil {
		return errors.New("generation job repository not set")
	}
	if s.generator == nil || s.portfolio == nil {
		return errors.New("concept generator or portfolio not set")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load generation job: %w", err)
	}
	if err := s.jobRepo.UpdateStatus(ctx, jobID, models.JobStatusInProgress); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	steps := job.Steps

	s.setStep(ctx, jobID, steps, stepGenerate, "in_progress")
	var concept *models.GeneratedAppConcept
	switch job.Mode {
	case models.ModeSector:
		concept, err = s.generator.ReverseEngineer(ctx, job.Input)
	default:
		concept, err = s.generator.DraftConcept(ctx, job.Input)
	}
	if err != nil {
		s.setStep(ctx, jobID, steps, stepGenerate, "failed")
		return s.fail(ctx, job, fmt.Errorf("%w: %v", ErrGenerationFailed, err))
	}
	s.setStep(ctx, jobID, steps, stepGenerate, "completed")

	s.setStep(ctx, jobID, steps, stepValidate, "in_progress")
	if concept == nil || !concept.Category.Valid() {
		s.setStep(ctx, jobID, steps, stepValidate, "failed")
		return s.fail(ctx, job, fmt.Errorf("%w: generator returned an invalid concept", ErrGenerationFailed))
	}
	if job.Mode == models.ModeSector && len(concept.CustomCurriculum) == 0 {
		s.setStep(ctx, jobID, steps, stepValidate, "failed")
		return s.fail(ctx, job, fmt.Errorf("%w: missing curriculum", ErrGenerationFailed))
	}
	if job.Mode == models.ModeDraft {
		concept.CustomCurriculum = nil
	}
	s.setStep(ctx, jobID, steps, stepValidate, "completed")

	s.setStep(ctx, jobID, steps, stepDeploy, "in_progress")
	app, err := s.portfolio.CreateFromConcept(ctx, concept)
	if err != nil {
		s.setStep(ctx, jobID, steps, stepDeploy, "failed")
		return s.fail(ctx, job, err)
	}
	s.setStep(ctx, jobID, steps, stepDeploy, "completed")

	if err := s.jobRepo.Complete(ctx, jobID, app.ID); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	s.metrics.GenerationJob(string(job.Mode), string(models.JobStatusCompleted))
	s.log.Info("generation job completed", "job_id", jobID, "app_id", app.ID)
	return nil
}

// setStep updates the status of a specific step in the generation job
func (s *ConceptService) setStep(ctx context.Context, jobID uuid.UUID, steps models.GenerationSteps, name, status string) {
	for i := range steps {
		if steps[i].Name == name {
			steps[i].Status = status
			break
		}
	}
	if err := s.jobRepo.UpdateProgress(ctx, jobID, name, steps); err != nil {
		s.log.Warn("failed to update job progress", "job_id", jobID, "error", err)
	}
}

// fail marks the job failed and surfaces the failure once in the feed
func (s *ConceptService) fail(ctx context.Context, job *models.GenerationJob, cause error) error {
	if err := s.jobRepo.Fail(ctx, job.ID, cause.Error()); err != nil {
		s.log.Error("failed to mark job failed", "job_id", job.ID, "error", err)
	}
	s.metrics.GenerationJob(string(job.Mode), string(models.JobStatusFailed))
	if s.notes != nil {
		s.notes.Append(models.SenderSystem, "⚠️ Concept generation failed. Try again.")
	}
	s.log.Warn("generation job failed", "job_id", job.ID, "error", cause)
	return cause
}
