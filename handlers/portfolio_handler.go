package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orca-backend/middleware"
	"orca-backend/models"
	"orca-backend/service"
	"orca-backend/stats"
)

// PortfolioHandler serves the studio settings, the public profile and the dashboard
type PortfolioHandler struct {
	portfolioService  *service.PortfolioService
	curriculumService *service.CurriculumService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *service.PortfolioService, curriculumService *service.CurriculumService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService:  portfolioService,
		curriculumService: curriculumService,
	}
}

// GetSettings handles GET /api/portfolio
func (h *PortfolioHandler) GetSettings(c *gin.Context) {
	settings, err := h.portfolioService.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, settings)
}

// SaveSettings handles PUT /api/portfolio
func (h *PortfolioHandler) SaveSettings(c *gin.Context) {
	var settings models.PortfolioSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	saved, err := h.portfolioService.SaveSettings(c.Request.Context(), settings)
	if err != nil {
		respondError(c, err, "UPDATE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, saved)
}

// PublicProfile handles GET /api/public/profile
func (h *PortfolioHandler) PublicProfile(c *gin.Context) {
	profile, err := h.portfolioService.PublicProfile(c.Request.Context())
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// Dashboard handles GET /api/dashboard
func (h *PortfolioHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.User(c)
	if user == nil {
		respondError(c, service.ErrNotAuthenticated, "RETRIEVAL_FAILED")
		return
	}
	apps, err := h.portfolioService.List(ctx)
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	views, err := h.curriculumService.List(ctx)
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	nodes := make([]models.CourseNode, len(views))
	for i, v := range views {
		nodes[i] = v.CourseNode
	}
	respondOK(c, http.StatusOK, stats.Snapshot(user, apps, nodes))
}
