package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orca-backend/service"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is checked in order with errors.Is
var errorMappings = []errorMapping{
	{service.ErrNotAuthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{service.ErrUsernameRequired, http.StatusBadRequest, "USERNAME_REQUIRED"},
	{service.ErrAlreadyAuthenticated, http.StatusConflict, "ALREADY_AUTHENTICATED"},
	{service.ErrAppNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrURLRequired, http.StatusBadRequest, "URL_REQUIRED"},
	{service.ErrInvalidCategory, http.StatusBadRequest, "INVALID_CATEGORY"},
	{service.ErrConfirmationRequired, http.StatusBadRequest, "CONFIRMATION_REQUIRED"},
	{service.ErrNodeNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrNodeLocked, http.StatusConflict, "NODE_LOCKED"},
	{service.ErrProOnly, http.StatusForbidden, "PRO_ONLY"},
	{service.ErrQuizNotPassed, http.StatusConflict, "QUIZ_NOT_PASSED"},
	{service.ErrQuizAlreadySubmitted, http.StatusConflict, "QUIZ_ALREADY_SUBMITTED"},
	{service.ErrIncompleteAnswers, http.StatusBadRequest, "INCOMPLETE_ANSWERS"},
	{service.ErrAlreadyCompleted, http.StatusConflict, "ALREADY_COMPLETED"},
	{service.ErrScenarioNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrScenarioAnswered, http.StatusConflict, "SCENARIO_ANSWERED"},
	{service.ErrInvalidOption, http.StatusBadRequest, "INVALID_OPTION"},
	{service.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrInvalidGenerationInput, http.StatusBadRequest, "INVALID_REQUEST"},
	{service.ErrJobNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrGenerationFailed, http.StatusBadGateway, "GENERATION_FAILED"},
	{service.ErrEmptyMessage, http.StatusBadRequest, "MESSAGE_REQUIRED"},
	{service.ErrInvalidBackup, http.StatusBadRequest, "INVALID_BACKUP"},
}

// respondError writes the error envelope for a service error. Errors that
// match no sentinel are reported as 500 with fallbackCode.
func respondError(c *gin.Context, err error, fallbackCode string) {
	status, code := http.StatusInternalServerError, fallbackCode
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status, code = m.status, m.code
			break
		}
	}
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
