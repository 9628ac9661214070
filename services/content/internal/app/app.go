package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"damai-site/pkg/cache"
	"damai-site/pkg/config"
	"damai-site/pkg/database"
	"damai-site/pkg/jwt"
	"damai-site/pkg/logger"
	"damai-site/pkg/middleware"
	"damai-site/pkg/queue"
	"damai-site/pkg/s3"
	contentHTTP "damai-site/services/content/internal/controller/http"
	"damai-site/services/content/internal/repo/persistent"
	"damai-site/services/content/internal/usecase"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "damai-site/services/content/docs" // Swagger docs
)

const snapshotTTL = 5 * time.Minute

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			log.Error("Failed to init Sentry: %v (continuing without error reporting)", err)
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		if err := persistent.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate sqlite schema: %v", err)
			return nil, err
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis backs the snapshot cache, rate limits and logout; all degrade.
		log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (orphaned media will only be logged)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret, cfg.SessionTTL),
	}, nil
}

func (a *App) Run() error {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repositories
	updateRepo := persistent.NewUpdateRepository(a.db)
	galleryRepo := persistent.NewGalleryRepository(a.db)
	adminRepo := persistent.NewAdminRepository(a.db)

	// Initialize use cases
	snapshot := cache.NewSnapshot(a.redisClient, snapshotTTL)
	revoker := jwt.NewRevoker(a.redisClient)
	var orphans usecase.OrphanPublisher
	if a.queueClient != nil {
		orphans = a.queueClient
	}

	feedUseCase := usecase.NewFeedUseCase(updateRepo, adminRepo, a.s3Client, orphans, snapshot, a.log)
	galleryUseCase := usecase.NewGalleryUseCase(galleryRepo, adminRepo, a.s3Client, orphans, snapshot, a.log)
	adminUseCase := usecase.NewAdminUseCase(adminRepo, a.jwtService, revoker, a.log)

	// Initialize HTTP handlers
	handlers := Handlers{
		Feed:    contentHTTP.NewFeedHandler(feedUseCase, a.log),
		Gallery: contentHTTP.NewGalleryHandler(galleryUseCase, a.log),
		Admin:   contentHTTP.NewAdminHandler(adminUseCase, a.log),
	}
	auth := middleware.AuthMiddleware(a.jwtService, revoker)

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           NewRouter(a.cfg, a.log, handlers, auth, a.redisClient),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Content service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down content service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before closing what they depend on.
	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	sentry.Flush(2 * time.Second)
	a.log.Info("Content service exited")
	a.log.Sync()
	return shutdownErr
}
