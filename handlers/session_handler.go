package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orca-backend/service"
)

// SessionHandler handles sign in and sign out
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Username string `json:"username"`
	IsPro    bool   `json:"is_pro"`
}

// Login handles POST /api/session
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.sessionService.Login(c.Request.Context(), service.LoginRequest{
		Username: req.Username,
		IsPro:    req.IsPro,
	})
	if err != nil {
		respondError(c, err, "LOGIN_FAILED")
		return
	}
	respondOK(c, http.StatusCreated, user)
}

// Current handles GET /api/session. An anonymous caller gets a null user.
func (h *SessionHandler) Current(c *gin.Context) {
	user, err := h.sessionService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"authenticated": user != nil,
		"user":          user,
	})
}

// Logout handles DELETE /api/session
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context()); err != nil {
		respondError(c, err, "LOGOUT_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"authenticated": false})
}
