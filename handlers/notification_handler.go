package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"orca-backend/models"
	"orca-backend/notify"
	"orca-backend/service"
)

// streamHeartbeat keeps idle SSE connections open through proxies
const streamHeartbeat = 15 * time.Second

// NotificationHandler serves the event feed and the oracle chat
type NotificationHandler struct {
	notes         *notify.Log
	mentorService *service.MentorService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notes *notify.Log, mentorService *service.MentorService) *NotificationHandler {
	return &NotificationHandler{notes: notes, mentorService: mentorService}
}

// ListNotifications handles GET /api/notifications?since=<id>
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var feed []models.Notification
	if since := c.Query("since"); since != "" {
		feed = h.notes.Since(since)
	} else {
		feed = h.notes.List()
	}
	if feed == nil {
		feed = []models.Notification{}
	}
	respondOK(c, http.StatusOK, feed)
}

// StreamNotifications handles GET /api/notifications/stream. Entries after
// ?since=<id> are replayed first, then new entries are pushed as they land.
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	ch, unsubscribe := h.notes.Subscribe(32)
	defer unsubscribe()

	sent := make(map[string]bool)
	if since := c.Query("since"); since != "" {
		for _, n := range h.notes.Since(since) {
			c.SSEvent("notification", n)
			sent[n.ID] = true
		}
		c.Writer.Flush()
	}

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case n, ok := <-ch:
			if !ok {
				return false
			}
			if !sent[n.ID] {
				c.SSEvent("notification", n)
			}
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UnixMilli())
			return true
		}
	})
}

// ChatRequest represents a message to the oracle
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/oracle/chat
func (h *NotificationHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.mentorService.Chat(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err, "CHAT_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}
