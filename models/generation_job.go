package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationJobStatus represents the status of a concept generation job
type GenerationJobStatus string

const (
	JobStatusPending    GenerationJobStatus = "pending"
	JobStatusInProgress GenerationJobStatus = "in_progress"
	JobStatusCompleted  GenerationJobStatus = "completed"
	JobStatusFailed     GenerationJobStatus = "failed"
)

// GenerationMode selects which generator request shape a job uses
type GenerationMode string

const (
	ModeDraft  GenerationMode = "draft"  // free-text idea
	ModeSector GenerationMode = "sector" // sector reverse-engineering with curriculum
)

// Valid reports whether m is a known generation mode
func (m GenerationMode) Valid() bool {
	return m == ModeDraft || m == ModeSector
}

// GenerationStep represents a step in the generation process
type GenerationStep struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pending", "in_progress", "completed", "failed"
}

// GenerationSteps represents a list of generation steps
type GenerationSteps []GenerationStep

// GenerationJob tracks one asynchronous call to the concept generator
type GenerationJob struct {
	ID           uuid.UUID           `json:"id"`
	Mode         GenerationMode      `json:"mode"`
	Input        string              `json:"input"`
	Status       GenerationJobStatus `json:"status"`
	CurrentStep  *string             `json:"current_step,omitempty"`
	Steps        GenerationSteps     `json:"steps"`
	AppID        *string             `json:"app_id,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
}

// IsFinished reports whether the job reached a terminal status
func (j *GenerationJob) IsFinished() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
