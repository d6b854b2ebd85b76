package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	_ "hejazi/docs"
	"hejazi/internal/cache/noop"
	rediscache "hejazi/internal/cache/redis"
	"hejazi/internal/config"
	noopemail "hejazi/internal/email/noop"
	"hejazi/internal/email/ses"
	"hejazi/internal/handler"
	"hejazi/internal/identity/firebase"
	"hejazi/internal/logger"
	"hejazi/internal/port"
	"hejazi/internal/repository/postgres"
	"hejazi/internal/router"
	"hejazi/internal/service"
	s3storage "hejazi/internal/storage/s3"
)

// @title Hejazi SSD API
// @version 1.0
// @description Security and safety operations backend: evaluations, violations, inspections and service permissions.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

const shutdownTimeout = 20 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	checks := map[string]handler.Pinger{"database": db}

	// Initialize permission cache
	var permCache port.PermissionCache = noop.NewPermissionCache()
	if cfg.Redis.Addr != "" {
		client, err := rediscache.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		permCache = rediscache.NewPermissionCache(client, cfg.Redis.TTL)
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("permission cache: redis")
	} else {
		log.Info().Msg("permission cache: disabled")
	}

	// Initialize identity provider
	var verifier port.IdentityVerifier
	if cfg.Firebase.Enabled() {
		v, err := firebase.NewVerifier(ctx, &cfg.Firebase)
		if err != nil {
			return fmt.Errorf("failed to initialize firebase: %w", err)
		}
		verifier = v
	}

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES: %w", err)
		}
	default:
		sender = noopemail.NewNoopSender()
	}

	// Initialize storage
	media, err := s3storage.NewMediaStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	jobRepo := postgres.NewJobRepo(db)
	taxonomyRepo := postgres.NewTaxonomyRepo(db)
	permRepo := postgres.NewPermissionRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	evalRepo := postgres.NewEvaluationRepo(db)
	violationRepo := postgres.NewViolationRepo(db)
	locationRepo := postgres.NewLocationRepo(db)
	distRepo := postgres.NewDistributionRepo(db)
	inspectionRepo := postgres.NewInspectionRepo(db)
	riskRepo := postgres.NewRiskRepo(db)
	maintRepo := postgres.NewMaintenanceRepo(db)
	appSecurityRepo := postgres.NewAppSecurityRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, verifier, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo, jobRepo, permCache)
	jobSvc := service.NewJobService(jobRepo, permCache)
	taxonomySvc := service.NewTaxonomyService(taxonomyRepo, permCache)
	permSvc := service.NewPermissionService(permRepo, taxonomyRepo, userRepo, jobRepo, permCache)
	profileSvc := service.NewProfileService(userRepo, media, permSvc, &cfg.S3)
	companySvc := service.NewCompanyService(companyRepo, evalRepo, tenantRepo, cfg.Scoring.Window)
	questionSvc := service.NewQuestionService(questionRepo)
	evalSvc := service.NewEvaluationService(evalRepo, companyRepo, questionRepo, userRepo, companySvc)
	violationSvc := service.NewViolationService(violationRepo, companyRepo, locationRepo, sender)
	locationSvc := service.NewLocationService(locationRepo, distRepo, userRepo)
	inspectionSvc := service.NewInspectionService(inspectionRepo, locationRepo, distRepo)
	riskSvc := service.NewRiskService(riskRepo, maintRepo, locationRepo)
	appSecuritySvc := service.NewAppSecurityService(appSecurityRepo)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(checks),
		Auth:        handler.NewAuthHandler(authSvc),
		Tenant:      handler.NewTenantHandler(tenantSvc),
		User:        handler.NewUserHandler(userSvc),
		Profile:     handler.NewProfileHandler(profileSvc),
		Job:         handler.NewJobHandler(jobSvc),
		Taxonomy:    handler.NewTaxonomyHandler(taxonomySvc),
		Permission:  handler.NewPermissionHandler(permSvc),
		Company:     handler.NewCompanyHandler(companySvc),
		Question:    handler.NewQuestionHandler(questionSvc),
		Evaluation:  handler.NewEvaluationHandler(evalSvc),
		Violation:   handler.NewViolationHandler(violationSvc),
		Location:    handler.NewLocationHandler(locationSvc),
		Inspection:  handler.NewInspectionHandler(inspectionSvc),
		Risk:        handler.NewRiskHandler(riskSvc),
		AppSecurity: handler.NewAppSecurityHandler(appSecuritySvc),
		Stats:       handler.NewStatsHandler(statsSvc),
	}

	production := cfg.Server.Environment == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup router
	r := router.Setup(router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Gates:          cfg.Gates,
		EnableSwagger:  !production,
	}, router.Guards{
		Auth:        authSvc,
		Permissions: permSvc,
		AppSecurity: appSecuritySvc,
	}, handlers)

	workerDone := make(chan struct{})
	if cfg.Scheduler.Enabled {
		worker, err := service.NewScoreWorker(companySvc, service.ScoreWorkerConfig{Spec: cfg.Scheduler.RecomputeCron})
		if err != nil {
			return err
		}
		go func() {
			defer close(workerDone)
			worker.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("environment", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	<-workerDone
	log.Info().Msg("server stopped")
	return nil
}
