package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-platform/config"
	"github.com/Dosada05/tournament-platform/db"
	"github.com/Dosada05/tournament-platform/handlers"
	"github.com/Dosada05/tournament-platform/registration"
	"github.com/Dosada05/tournament-platform/registration/memory"
	redisstore "github.com/Dosada05/tournament-platform/registration/redis"
	"github.com/Dosada05/tournament-platform/repositories"
	api "github.com/Dosada05/tournament-platform/routes"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/storage"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Хранилище незавершённых регистраций
	var pendingStore registration.Store
	if cfg.RedisURL != "" {
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.TTL = cfg.RegistrationTTL

		store, err := redisstore.New(redisCfg)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close redis client", slog.Any("error", err))
			}
		}()
		pendingStore = store
		logger.Info("registration store: redis")
	} else {
		pendingStore = memory.New(cfg.RegistrationTTL)
		logger.Warn("REDIS_URL is not set, staged registrations are kept in memory")
	}

	// Инициализация загрузчика файлов (Cloudflare R2)
	var uploader storage.FileUploader
	r2Cfg := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Cfg.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), r2Cfg)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 is not configured, application attachments are disabled")
	}

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	applicationRepo := repositories.NewPostgresOrganizerApplicationRepository(dbConn)

	// Инициализация сервисов
	identityService := services.NewIdentityService(userRepo)
	authService := services.NewAuthService(identityService, userRepo, services.AuthConfig{
		JWTSecret: []byte(cfg.JWTSecretKey),
		TokenTTL:  cfg.TokenTTL,
	})
	applicationService := services.NewOrganizerApplicationService(dbConn, applicationRepo, userRepo, identityService, uploader, logger)
	registrationService := services.NewRegistrationService(
		pendingStore,
		registration.NewGuard(),
		authService,
		identityService,
		applicationService,
		logger,
		cfg.RegistrationRedirectDelay,
	)
	dashboardService := services.NewDashboardService(identityService, applicationService)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	flow := handlers.FlowCookie{Secure: cfg.CookieSecure, TTL: cfg.RegistrationTTL}
	h := api.Handlers{
		Auth:         handlers.NewAuthHandler(registrationService, authService, flow),
		Registration: handlers.NewRegistrationHandler(registrationService, flow),
		Applications: handlers.NewApplicationHandler(registrationService, applicationService),
		Review:       handlers.NewReviewHandler(applicationService),
		Users:        handlers.NewUserHandler(identityService, dashboardService),
		Health:       handlers.NewHealthHandler(dbConn, pendingStore),
	}

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
