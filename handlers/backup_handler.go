package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"orca-backend/service"
)

// BackupHandler handles export and import of the persisted documents
type BackupHandler struct {
	backupService *service.BackupService
	maxFileSize   int64
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		maxFileSize:   1 << 20, // 1MB
	}
}

// Export handles GET /api/backup
func (h *BackupHandler) Export(c *gin.Context) {
	bundle, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err, "EXPORT_FAILED")
		return
	}

	filename := fmt.Sprintf("orca-backup-%s.json", time.UnixMilli(bundle.ExportedAt).UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.JSON(http.StatusOK, bundle)
}

// Import handles POST /api/backup with a multipart "file" field
func (h *BackupHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "MISSING_FILE", "File is required")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		badRequest(c, "FILE_TOO_LARGE", fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".json") {
			mimeType = "application/json"
		}
	}
	if !strings.HasPrefix(mimeType, "application/json") {
		badRequest(c, "INVALID_FILE_TYPE", "File type not allowed. Allowed types: JSON")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		respondError(c, err, "FILE_READ_ERROR")
		return
	}
	if int64(len(raw)) > h.maxFileSize {
		badRequest(c, "FILE_TOO_LARGE", fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	result, err := h.backupService.Import(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err, "IMPORT_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}
