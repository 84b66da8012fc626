package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"churchhub/database"
	"churchhub/internal/config"
	"churchhub/internal/logging"
	"churchhub/internal/microservices/http-api/handler"
	"churchhub/internal/microservices/http-api/middleware"
	"churchhub/internal/microservices/http-api/repository"
	"churchhub/internal/microservices/http-api/router"
	"churchhub/internal/microservices/http-api/service"
	"churchhub/internal/microservices/websocket"
	"churchhub/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	db, err := database.Connect(ctx, cfg.DatabaseURL, database.DefaultOptions, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.DBAutoMigrate {
		if err := database.MigrateUp(db, logger); err != nil {
			return err
		}
	}

	sessions, closeSessions, err := openSessions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	engine, err := buildRouter(cfg, logger, db, sessions, store, hub)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", server.Addr, "env", cfg.GoEnv, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server_stopped_gracefully")
	return nil
}

func openSessions(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.SessionStore, func(), error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, keeping sessions in memory")
		return repository.NewMemorySessionStore(), func() {}, nil
	}
	client, err := repository.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRedisSessionStore(client), func() { _ = client.Close() }, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "minio" {
		return storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	}
	return storage.NewDiskStore(cfg.UploadDir)
}

func buildRouter(cfg *config.Config, logger *slog.Logger, db *gorm.DB, sessions repository.SessionStore, store storage.Store, hub *websocket.Hub) (*gin.Engine, error) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	magazineRepo := repository.NewMagazineRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authService, err := service.NewAuthService(userRepo, branchRepo, sessions, cfg, logger)
	if err != nil {
		return nil, err
	}
	policy := service.UploadPolicy{MaxFiles: cfg.UploadMaxFiles, MaxSize: cfg.UploadMaxSize}

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(service.NewUserService(userRepo, branchRepo, logger)),
		Project:      handler.NewProjectHandler(service.NewProjectService(projectRepo, branchRepo, logger)),
		Contribution: handler.NewContributionHandler(service.NewContributionService(contributionRepo, projectRepo, hub, logger)),
		Branch:       handler.NewBranchHandler(service.NewBranchService(branchRepo, userRepo, projectRepo, logger)),
		Magazine: handler.NewMagazineHandler(service.NewMagazineService(
			magazineRepo, userRepo, branchRepo, store, hub, policy, logger)),
		Notification: handler.NewNotificationHandler(service.NewNotificationService(notificationRepo)),
		Health: handler.NewHealthHandler(
			handler.HealthCheck{Name: "database", Check: func(ctx context.Context) error { return database.Ping(ctx, db) }},
			handler.HealthCheck{Name: "sessions", Check: sessions.Ping},
		),
	}

	return router.NewRouter(handlers, router.Options{
		Verifier:           authService,
		Hub:                hub,
		AuthLimiter:        middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		AllowedOrigins:     cfg.CORSOrigins,
		RequestTimeout:     cfg.RequestTimeout,
		MaxMultipartMemory: 8 << 20,
		Logger:             logger,
	}), nil
}
