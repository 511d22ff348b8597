package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orca-backend/logger"
	"orca-backend/models"
	"orca-backend/service"
)

// ConceptHandler handles HTTP requests for concept generation jobs
type ConceptHandler struct {
	conceptService *service.ConceptService
	log            *logger.Logger
	// process runs a created job; tests replace it to run synchronously
	process func(jobID uuid.UUID)
}

// NewConceptHandler creates a new concept handler
func NewConceptHandler(conceptService *service.ConceptService, log *logger.Logger) *ConceptHandler {
	if log == nil {
		log = logger.Nop()
	}
	h := &ConceptHandler{
		conceptService: conceptService,
		log:            log.With("handler", "ConceptHandler"),
	}
	h.process = func(jobID uuid.UUID) {
		go h.runJob(jobID)
	}
	return h
}

// runJob uses a background context so the job survives the request that started it
func (h *ConceptHandler) runJob(jobID uuid.UUID) {
	if err := h.conceptService.ProcessGeneration(context.Background(), jobID); err != nil {
		// Stored in job.ErrorMessage; the client sees it when polling.
		h.log.Warn("generation job failed", "job_id", jobID, "error", err)
	}
}

// CreateConceptRequest represents the request body for generating a concept
type CreateConceptRequest struct {
	Mode   string `json:"mode" binding:"required"`
	Prompt string `json:"prompt"`
	Sector string `json:"sector"`
}

// CreateConcept handles POST /api/concepts
func (h *ConceptHandler) CreateConcept(c *gin.Context) {
	var req CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	mode := models.GenerationMode(strings.ToLower(req.Mode))
	input := req.Prompt
	if mode == models.ModeSector {
		input = req.Sector
	}

	// Create job (synchronous, fast)
	result, err := h.conceptService.StartGeneration(c.Request.Context(), service.StartGenerationRequest{
		Mode:  mode,
		Input: input,
	})
	if err != nil {
		respondError(c, err, "GENERATION_FAILED")
		return
	}

	h.process(result.JobID)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id":  result.JobID,
			"status":  models.JobStatusPending,
			"message": "Generation job created. Poll /api/jobs/:id for updates.",
		},
	})
}

// GetJobStatus handles GET /api/jobs/:id
func (h *ConceptHandler) GetJobStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid job ID format")
		return
	}

	job, err := h.conceptService.GetJob(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, job)
}
