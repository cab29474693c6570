package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/appdotbuilder/canossa-info-system/internal/auth"
	"github.com/appdotbuilder/canossa-info-system/internal/config"
	"github.com/appdotbuilder/canossa-info-system/internal/database"
	"github.com/appdotbuilder/canossa-info-system/internal/handler"
	"github.com/appdotbuilder/canossa-info-system/internal/logging"
	"github.com/appdotbuilder/canossa-info-system/internal/middleware"
	"github.com/appdotbuilder/canossa-info-system/internal/repository"
	"github.com/appdotbuilder/canossa-info-system/internal/router"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
	"github.com/appdotbuilder/canossa-info-system/internal/validation"
	cloud "github.com/appdotbuilder/canossa-info-system/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger, logCloser := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logCloser.Close()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisCtx, cancelRedis := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := database.ConnectRedis(redisCtx, cfg.RedisURL)
	cancelRedis()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Info().Msg("redis url not set, read cache disabled")
	}

	validate := validation.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	auditService := service.NewAuditService(repository.NewAuditLogRepository(db), logger)
	activityService := service.NewCampusActivityService(repository.NewCampusActivityRepository(db), validate, auditService, redisClient, cfg.CacheTTL, logger)
	pageService := service.NewPageContentService(repository.NewPageContentRepository(db), validate, auditService, redisClient, cfg.CacheTTL, logger)
	authService := service.NewAdminAuthService(repository.NewAdministratorRepository(db), auth.NewBcryptHasher(cfg.BcryptCost), tokens, validate, auditService, logger)

	deps := router.Dependencies{
		CampusActivityHandler: handler.NewCampusActivityHandler(activityService, logger),
		PageContentHandler:    handler.NewPageContentHandler(pageService, logger),
		AdminAuthHandler:      handler.NewAdminAuthHandler(authService, logger),
		AuditHandler:          handler.NewAuditHandler(auditService, logger),
		Tokens:                tokens,
	}

	if cfg.CloudinaryEnabled() {
		store, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cloudinary client")
		}
		uploadService := service.NewImageUploadService(store, auditService, cfg.UploadMaxSizeMB, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	} else {
		logger.Info().Msg("cloudinary not configured, image uploads disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			return utils.SendError(c, status, err.Error())
		},
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSOrigins,
		AccessLog:    cfg.AppEnv == "development",
	})
	if err := router.Register(app, cfg, deps); err != nil {
		logger.Fatal().Err(err).Msg("failed to register routes")
	}

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Bool("admin_gate", cfg.EnforceAdmin).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
