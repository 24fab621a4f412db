package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"platformapi/internal/cache"
	"platformapi/internal/config"
	"platformapi/internal/database"
	"platformapi/internal/database/migration"
	handlers "platformapi/internal/http/handler"
	"platformapi/internal/http/middleware"
	"platformapi/internal/logging"
	"platformapi/internal/otel"
	"platformapi/internal/repository/postgres"
	"platformapi/internal/service"
	"platformapi/internal/storage"
)

// @title Platform API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	logger := logging.New(os.Stdout, cfg.LogLevel, loc)
	ctx := logging.WithLogger(context.Background(), logger)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Auth.JWTSecret == "" {
		err := errors.New("AUTH_JWT_SECRET is required")
		logger.Error("invalid configuration", "error", err)
		return err
	}

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	// PostgreSQL connection (pooling via database/sql, spans via otelsql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		logger.Error("failed to migrate database", "error", err)
		return err
	}

	objStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize object storage", "error", err, "driver", cfg.Storage.Driver)
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Error("failed to register http metrics", "error", err)
		return err
	}

	settingsCache := cache.New(cache.WithRegisterer(reg))
	defer settingsCache.Close()

	// Repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	audit := service.NewAuditLogger(postgres.NewAuditPostgres(db))
	settingsSvc := service.NewSettingsService(postgres.NewSettingPostgres(db), settingsCache, cfg.SettingsCacheTTL)
	docSvc := service.NewDocumentService(objStore, docRepo, settingsSvc, audit, service.DocumentServiceConfig{
		UploadURLExpiry:   cfg.Upload.UploadURLExpiry,
		DownloadURLExpiry: cfg.Upload.DownloadURLExpiry,
		MaxSizeBytes:      cfg.Upload.DocumentMaxSizeBytes,
	})
	userSvc := service.NewUserService(postgres.NewUserPostgres(db), objStore, service.UserServiceConfig{
		APIURL:          cfg.APIURL,
		UploadURLExpiry: cfg.Upload.UploadURLExpiry,
		PhotoMaxSize:    cfg.Upload.PhotoMaxSizeBytes,
	})
	consentSvc := service.NewConsentService(postgres.NewConsentPostgres(db), audit)
	fileSvc := service.NewFileAccessService(docRepo, objStore, cfg.Upload.FileAccessURLExpiry)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// Global middleware. Order matters: the request logger needs the request ID,
	// and the tracing span must wrap everything below it.
	app.Use(recover.New())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(middleware.ClientInfo())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
		ExposeHeaders: middleware.RequestIDHeader,
	}))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Gatherer: reg,
		Auth: middleware.Auth(middleware.AuthOptions{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.JWTIssuer,
		}),
		Documents: docSvc,
		Users:     userSvc,
		Settings:  settingsSvc,
		Consents:  consentSvc,
		Files:     fileSvc,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "storage_driver", cfg.Storage.Driver)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("failed to start server", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}
