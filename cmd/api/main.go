package main

import (
	"context"
	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/cache"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/notify"
	redispkg "go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Job board with candidate matching and a recruiter hiring workflow.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	auditLog := audit.New("jobboard-api", audit.Environment())
	defer auditLog.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	txManager := database.NewTxManager(dbPool)

	if cfg.AuditLogToDB {
		auditLog.SetPersistFunc(audit.NewRepository(dbPool).Persist)
	}

	// 4. Setup Redis (optional)
	var redisCheck usecase.Pinger
	if cfg.UpstashRedisURL != "" {
		if err := redispkg.Initialize(redispkg.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable - recommendations will not be cached", "error", err)
		} else {
			redisCheck = redispkg.HealthCheck
			defer redispkg.Close()
		}
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	principals := postgres.NewPrincipalResolver(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	noteRepo := postgres.NewNoteRepository(dbPool)
	recommendationCache := cache.NewRecommendationCache(redispkg.Client(), time.Duration(cfg.RecommendationCacheTTLSeconds)*time.Second)

	// 6. Setup Notifier
	notifier, closeNotifier := buildNotifier(cfg)
	defer closeNotifier()

	// 7. Setup UseCases
	validate := validation.New()
	matching := usecase.MatchingConfig{
		MatchThreshold:      cfg.MatchThreshold,
		CompleteThreshold:   cfg.ProfileCompleteThreshold,
		RecommendationLimit: cfg.RecommendationLimit,
	}
	jobUC := usecase.NewJobUsecase(jobRepo, applicationRepo, validate, auditLog)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, jobRepo, recommendationCache, validate, matching)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo, txManager, notifier, auditLog, matching)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationRepo, jobRepo, candidateRepo, txManager, notifier, auditLog)
	noteUC := usecase.NewNoteUsecase(noteRepo, applicationRepo, jobRepo, auditLog)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": dbPool.Ping,
		"redis":    redisCheck,
	})

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		CandidateUC:   candidateUC,
		ApplicationUC: applicationUC,
		InterviewUC:   interviewUC,
		NoteUC:        noteUC,
		HealthUC:      healthUC,
		Users:         userRepo,
		Principals:    principals,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// buildNotifier picks the delivery backend named by NOTIFIER. The returned func releases it.
func buildNotifier(cfg *config.Config) (domain.Notifier, func()) {
	switch cfg.Notifier {
	case config.NotifierEmail:
		emailService := email.NewEmailService(cfg)
		if !emailService.IsConfigured() {
			logger.Log.Warn("Email service not fully configured - falling back to log notifier")
			return notify.LogNotifier{}, func() {}
		}
		return emailService, func() {}
	case config.NotifierAMQP:
		publisher, err := notify.NewAMQPNotifier(cfg.RabbitMQURL, cfg.NotifyQueue)
		if err != nil {
			logger.Log.Warn("RabbitMQ unavailable - falling back to log notifier", "error", err)
			return notify.LogNotifier{}, func() {}
		}
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				logger.Log.Warn("Failed to close notifier", "error", err)
			}
		}
	default:
		return notify.LogNotifier{}, func() {}
	}
}
