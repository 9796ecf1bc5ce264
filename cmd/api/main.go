package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/socialnet-backend/docs"
	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	httphandlers "github.com/rafabene/socialnet-backend/internal/handlers/http"
	"github.com/rafabene/socialnet-backend/internal/handlers/dto"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/config"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/i18n"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/logging"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/realtime"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/security"
	"github.com/rafabene/socialnet-backend/internal/services"
)

//	@title						Social Network API
//	@version					1.0
//	@description				API de rede social: perfis, posts, curtidas, follow/block, feed de atividades e moderação.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Informe "Bearer {token}"

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting socialnet backend",
		"env", cfg.Env,
		"version", docs.SwaggerInfo.Version,
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stream de atividades
	hub := realtime.NewHub(
		func(a *entities.Activity) any { return dto.ToActivityResponse(a) },
		strings.Split(cfg.CORS.AllowedOrigins, ","),
		logger,
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	graphRepo := postgres.NewSocialGraphRepository(db)
	postRepo := postgres.NewPostRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	tokens := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)
	activityService := services.NewActivityService(activityRepo, userRepo, hub, logger)
	userService := services.NewUserService(userRepo, logger)
	authService := services.NewAuthService(userRepo, security.NewBcryptHasher(0), tokens, logger, cfg.Auth.OwnerEmail)
	socialService := services.NewSocialService(userRepo, graphRepo, uow, activityService, logger)
	postService := services.NewPostService(postRepo, userRepo, uow, activityService, logger)
	moderationService := services.NewModerationService(userRepo, postRepo, uow, activityService, logger)

	retention := postgres.NewActivityRetention(activityRepo, cfg.Activity.Retention, cfg.Activity.PurgeInterval, logger, nil)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := httphandlers.NewRouter(httphandlers.RouterDeps{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
		I18n:           i18nService,
		Tokens:         tokens,
		Hub:            hub,
		Auth:           authService,
		Users:          userService,
		Social:         socialService,
		Posts:          postService,
		Activities:     activityService,
		Moderation:     moderationService,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		log.Fatal(err)
	}

	// Workers em background
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		retention.Run(ctx)
	}()

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	wg.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
