package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"orca-backend/config"
	"orca-backend/gemini"
	"orca-backend/handlers"
	"orca-backend/logger"
	"orca-backend/metrics"
	"orca-backend/middleware"
	"orca-backend/models"
	"orca-backend/notify"
	"orca-backend/repository"
	"orca-backend/service"
	"orca-backend/state"
	"orca-backend/storage"
)

func main() {
	// Load .env file from the working directory or the project root
	foundEnv := config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	if !foundEnv {
		log.Warn("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	backend, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to initialize storage", "type", cfg.Storage.Type, "error", err)
	}
	if c, ok := backend.(io.Closer); ok {
		defer c.Close()
	}
	log.Info("storage initialized", "type", cfg.Storage.Type)
	store := state.New(backend, cfg.KeyPrefix, log)

	m := metrics.New()

	// Notification feed, optionally mirrored to Redis
	scheduler := notify.NewScheduler(notify.SystemClock{}, log)
	noteOpts := []notify.Option{
		notify.WithScheduler(scheduler),
		notify.WithHook(func(n models.Notification) { m.Notification(string(n.Sender)) }),
	}
	if cfg.RedisAddr != "" {
		publisher, err := notify.NewRedisPublisher(cfg.RedisAddr, cfg.RedisChannel, log)
		if err != nil {
			log.Warn("redis publisher disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer publisher.Close()
			noteOpts = append(noteOpts, notify.WithPublisher(publisher))
		}
	}
	notes := notify.NewLog(log, noteOpts...)

	// Initialize Gemini client. Without a key the AI routes fail with
	// GENERATION_FAILED and everything else keeps working.
	var ai gemini.Backend = gemini.Unavailable{}
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI features disabled")
	} else {
		geminiClient, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			log.Fatal("failed to initialize gemini", "error", err)
		}
		defer geminiClient.Close()
		ai = geminiClient
	}

	// Initialize services
	session := service.NewSessionService(store, service.SessionWithLogger(log))
	curriculum := service.NewCurriculumService(store, session, notes,
		service.CurriculumWithMetrics(m),
		service.CurriculumWithLogger(log),
	)
	portfolio := service.NewPortfolioService(store, session, notes,
		service.PortfolioWithCurriculum(curriculum),
		service.PortfolioWithMetrics(m),
		service.PortfolioWithLogger(log),
	)
	concepts := service.NewConceptService(
		service.ConceptWithGenerationJobRepository(repository.NewGenerationJobRepository()),
		service.ConceptWithGenerator(ai),
		service.ConceptWithPortfolio(portfolio),
		service.ConceptWithSession(session),
		service.ConceptWithNotifications(notes),
		service.ConceptWithMetrics(m),
		service.ConceptWithLogger(log),
	)
	mentor := service.NewMentorService(ai, curriculum, session, notes, log)
	backup := service.NewBackupService(store, session, func() int64 { return time.Now().UnixMilli() }, log,
		service.BackupWithCurriculum(curriculum))

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Session:     session,
		Portfolio:   portfolio,
		Curriculum:  curriculum,
		Concepts:    concepts,
		Mentor:      mentor,
		Backup:      backup,
		Notes:       notes,
		Metrics:     m,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		AILimiter:   middleware.NewRateLimiter(cfg.AIRatePerMinute, cfg.AIRateBurst, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	scheduler.Stop()
}
