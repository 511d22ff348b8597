package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orca-backend/models"
	"orca-backend/service"
)

// AppHandler handles HTTP requests for portfolio apps
type AppHandler struct {
	portfolioService *service.PortfolioService
}

// NewAppHandler creates a new app handler
func NewAppHandler(portfolioService *service.PortfolioService) *AppHandler {
	return &AppHandler{portfolioService: portfolioService}
}

// ListApps handles GET /api/apps
func (h *AppHandler) ListApps(c *gin.Context) {
	apps, err := h.portfolioService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, apps)
}

// GetApp handles GET /api/apps/:id
func (h *AppHandler) GetApp(c *gin.Context) {
	app, err := h.portfolioService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "RETRIEVAL_FAILED")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// UpdateApp handles PATCH /api/apps/:id
func (h *AppHandler) UpdateApp(c *gin.Context) {
	var patch models.AppPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.portfolioService.Edit(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "UPDATE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// RecategorizeRequest represents the request body for changing an app category
type RecategorizeRequest struct {
	Category string `json:"category" binding:"required"`
}

// RecategorizeApp handles PUT /api/apps/:id/category
func (h *AppHandler) RecategorizeApp(c *gin.Context) {
	var req RecategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.portfolioService.Recategorize(c.Request.Context(), c.Param("id"), models.AppCategory(req.Category))
	if err != nil {
		respondError(c, err, "UPDATE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// ToggleVisibility handles POST /api/apps/:id/visibility
func (h *AppHandler) ToggleVisibility(c *gin.Context) {
	result, err := h.portfolioService.ToggleVisibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "UPDATE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// ShipRequest represents the request body for shipping an app
type ShipRequest struct {
	URL string `json:"url"`
}

// ShipApp handles POST /api/apps/:id/ship
func (h *AppHandler) ShipApp(c *gin.Context) {
	var req ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.portfolioService.Ship(c.Request.Context(), service.ShipRequest{
		AppID: c.Param("id"),
		URL:   req.URL,
	})
	if err != nil {
		respondError(c, err, "SHIP_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// DeleteApp handles DELETE /api/apps/:id?confirm=true
func (h *AppHandler) DeleteApp(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	deleted, err := h.portfolioService.Delete(c.Request.Context(), service.DeleteRequest{
		AppID:     c.Param("id"),
		Confirmed: confirmed,
	})
	if err != nil {
		respondError(c, err, "DELETE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": deleted})
}
