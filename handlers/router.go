package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orca-backend/logger"
	"orca-backend/metrics"
	"orca-backend/middleware"
	"orca-backend/notify"
	"orca-backend/service"
)

// RouterConfig carries everything the router wires into handlers
type RouterConfig struct {
	Session     *service.SessionService
	Portfolio   *service.PortfolioService
	Curriculum  *service.CurriculumService
	Concepts    *service.ConceptService
	Mentor      *service.MentorService
	Backup      *service.BackupService
	Notes       *notify.Log
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
	CORSOrigins []string
	AILimiter   *middleware.RateLimiter
}

// NewRouter builds the gin engine with every route
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger, cfg.Metrics))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins))
	}

	sessionHandler := NewSessionHandler(cfg.Session)
	appHandler := NewAppHandler(cfg.Portfolio)
	portfolioHandler := NewPortfolioHandler(cfg.Portfolio, cfg.Curriculum)
	conceptHandler := NewConceptHandler(cfg.Concepts, cfg.Logger)
	curriculumHandler := NewCurriculumHandler(cfg.Curriculum, cfg.Mentor)
	notificationHandler := NewNotificationHandler(cfg.Notes, cfg.Mentor)
	backupHandler := NewBackupHandler(cfg.Backup)

	aiLimit := func(c *gin.Context) { c.Next() }
	if cfg.AILimiter != nil {
		aiLimit = cfg.AILimiter.Handler()
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Session endpoints
		api.POST("/session", sessionHandler.Login)
		api.GET("/session", sessionHandler.Current)
		api.DELETE("/session", sessionHandler.Logout)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireSession(cfg.Session))
	{
		protected.GET("/dashboard", portfolioHandler.Dashboard)

		// App endpoints
		protected.GET("/apps", appHandler.ListApps)
		protected.GET("/apps/:id", appHandler.GetApp)
		protected.PATCH("/apps/:id", appHandler.UpdateApp)
		protected.PUT("/apps/:id/category", appHandler.RecategorizeApp)
		protected.POST("/apps/:id/visibility", appHandler.ToggleVisibility)
		protected.POST("/apps/:id/ship", appHandler.ShipApp)
		protected.DELETE("/apps/:id", appHandler.DeleteApp)

		// Concept generation and job endpoints
		protected.POST("/concepts", aiLimit, conceptHandler.CreateConcept)
		protected.GET("/jobs/:id", conceptHandler.GetJobStatus)

		// Curriculum endpoints
		protected.GET("/curriculum", curriculumHandler.ListNodes)
		protected.POST("/curriculum/:id/quiz", curriculumHandler.SubmitQuiz)
		protected.POST("/curriculum/:id/quiz/retry", curriculumHandler.RetryQuiz)
		protected.POST("/curriculum/:id/complete", curriculumHandler.CompleteNode)
		protected.POST("/curriculum/:id/scenarios/:idx/answer", curriculumHandler.AnswerScenario)
		protected.POST("/curriculum/:id/scenarios/:idx/reset", curriculumHandler.ResetScenario)
		protected.POST("/curriculum/:id/tasks/:taskId/toggle", curriculumHandler.ToggleTask)
		protected.POST("/curriculum/:id/tutor", aiLimit, curriculumHandler.AskTutor)

		// Portfolio endpoints
		protected.GET("/portfolio", portfolioHandler.GetSettings)
		protected.PUT("/portfolio", portfolioHandler.SaveSettings)
		protected.GET("/public/profile", portfolioHandler.PublicProfile)

		// Notification endpoints
		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.GET("/notifications/stream", notificationHandler.StreamNotifications)
		protected.POST("/oracle/chat", aiLimit, notificationHandler.Chat)

		// Backup endpoints
		protected.GET("/backup", backupHandler.Export)
		protected.POST("/backup", backupHandler.Import)
	}

	return r
}
