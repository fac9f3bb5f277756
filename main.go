package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"skillbridge/config"
	"skillbridge/internal/app"
	"skillbridge/internal/audit"
	"skillbridge/internal/database"
	"skillbridge/internal/identity"
	"skillbridge/internal/mail"
	"skillbridge/internal/remote"
	"skillbridge/internal/server"
	"skillbridge/internal/services"
	"skillbridge/internal/storage/postgres"

	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

// @title           SkillBridge API
// @version         1.0
// @description     Municipal employment platform bridging a local relational store and a hosted table store.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Remote table store ---
	remoteClient := remote.NewClient(cfg.Remote, logger)
	remoteAccounts := remoteClient.Accounts()
	remoteResidents := remoteClient.Residents()
	remoteJobs := remoteClient.Jobs()
	remoteSkills := remoteClient.ResidentSkills()
	remoteApplications := remoteClient.Applications()
	remoteTrainings := remoteClient.Trainings()

	reconciler := identity.NewReconciler(remoteAccounts, remoteResidents, logger)
	auditor := audit.NewLogger(remoteClient, logger)

	var sender mail.Sender = mail.Noop{}
	if cfg.Mail.APIKey != "" {
		sender = mail.NewSendGridSender(cfg.Mail, logger)
	} else {
		logger.Warn("no mail API key configured, outbound notices disabled")
	}

	// --- Local repositories ---
	accountRepo := postgres.NewAccountRepo(dbPool, logger)
	residentRepo := postgres.NewResidentRepo(dbPool, logger)
	skillRepo := postgres.NewSkillRepo(dbPool, logger)

	// --- Services ---
	tokenStore := services.NewRedisTokenStore(redisClient)
	authService := services.NewAuthService(
		accountRepo, residentRepo,
		remoteAccounts, remoteResidents, remoteClient,
		reconciler, tokenStore,
		cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration,
		logger,
	)
	residentService := services.NewResidentService(
		residentRepo, remoteClient, cfg.Remote.Bucket, sender, auditor, logger,
	)
	skillService := services.NewSkillService(skillRepo, remoteSkills, logger)
	jobService := services.NewJobService(remoteJobs, remoteResidents, remoteSkills, auditor, logger)
	applicationService := services.NewApplicationService(
		remoteApplications, remoteJobs, remoteResidents, reconciler, sender, auditor, logger,
	)
	trainingService := services.NewTrainingService(remoteTrainings, remoteResidents, reconciler, auditor, logger)

	validate := validator.New()

	application := &app.Application{
		Config:             cfg,
		Logger:             logger,
		Validator:          validate,
		DBPool:             dbPool,
		RedisClient:        redisClient,
		Remote:             remoteClient,
		Reconciler:         reconciler,
		AuthService:        authService,
		ResidentService:    residentService,
		SkillService:       skillService,
		JobService:         jobService,
		ApplicationService: applicationService,
		TrainingService:    trainingService,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	logger.Info("shutting down")
}
