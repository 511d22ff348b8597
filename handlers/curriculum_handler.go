package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orca-backend/service"
)

// CurriculumHandler handles lesson progression requests
type CurriculumHandler struct {
	curriculumService *service.CurriculumService
	mentorService     *service.MentorService
}

// NewCurriculumHandler creates a new curriculum handler
func NewCurriculumHandler(curriculumService *service.CurriculumService, mentorService *service.MentorService) *CurriculumHandler {
	return &CurriculumHandler{
		curriculumService: curriculumService,
		mentorService:     mentorService,
	}
}

// ListNodes handles GET /api/curriculum
func (h *CurriculumHandler) ListNodes(c *gin.Context) {
	nodes, err := h.curriculumService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, nodes)
}

// SubmitQuizRequest represents the request body for a quiz submission
type SubmitQuizRequest struct {
	Answers []int `json:"answers"`
}

// SubmitQuiz handles POST /api/curriculum/:id/quiz
func (h *CurriculumHandler) SubmitQuiz(c *gin.Context) {
	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.curriculumService.SubmitQuiz(c.Request.Context(), c.Param("id"), req.Answers)
	if err != nil {
		respondError(c, err, "QUIZ_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// RetryQuiz handles POST /api/curriculum/:id/quiz/retry
func (h *CurriculumHandler) RetryQuiz(c *gin.Context) {
	if err := h.curriculumService.RetryQuiz(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "QUIZ_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"reset": true})
}

// CompleteNode handles POST /api/curriculum/:id/complete
func (h *CurriculumHandler) CompleteNode(c *gin.Context) {
	result, err := h.curriculumService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "COMPLETE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// AnswerScenarioRequest represents the chosen option of a story scenario
type AnswerScenarioRequest struct {
	Option *int `json:"option" binding:"required"`
}

// AnswerScenario handles POST /api/curriculum/:id/scenarios/:idx/answer
func (h *CurriculumHandler) AnswerScenario(c *gin.Context) {
	idx, ok := scenarioIndex(c)
	if !ok {
		return
	}
	var req AnswerScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.curriculumService.AnswerScenario(c.Request.Context(), c.Param("id"), idx, *req.Option)
	if err != nil {
		respondError(c, err, "SCENARIO_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// ResetScenario handles POST /api/curriculum/:id/scenarios/:idx/reset
func (h *CurriculumHandler) ResetScenario(c *gin.Context) {
	idx, ok := scenarioIndex(c)
	if !ok {
		return
	}
	if err := h.curriculumService.ResetScenario(c.Request.Context(), c.Param("id"), idx); err != nil {
		respondError(c, err, "SCENARIO_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"reset": true})
}

// ToggleTask handles POST /api/curriculum/:id/tasks/:taskId/toggle
func (h *CurriculumHandler) ToggleTask(c *gin.Context) {
	done, err := h.curriculumService.ToggleTask(c.Request.Context(), c.Param("id"), c.Param("taskId"))
	if err != nil {
		respondError(c, err, "TASK_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"task_id": c.Param("taskId"), "done": done})
}

// AskTutorRequest represents a question about one lesson
type AskTutorRequest struct {
	Question string `json:"question"`
}

// AskTutor handles POST /api/curriculum/:id/tutor
func (h *CurriculumHandler) AskTutor(c *gin.Context) {
	var req AskTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	answer, err := h.mentorService.AskTutor(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		respondError(c, err, "TUTOR_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"answer": answer})
}

func scenarioIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 0 {
		badRequest(c, "INVALID_ID", "Invalid scenario index")
		return 0, false
	}
	return idx, true
}
