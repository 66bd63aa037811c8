package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/gamehub-backend/docs"
	"github.com/rafabene/gamehub-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/gamehub-backend/internal/handlers/http"
	"github.com/rafabene/gamehub-backend/internal/handlers/middleware"
	"github.com/rafabene/gamehub-backend/internal/handlers/ws"
	"github.com/rafabene/gamehub-backend/internal/infrastructure/config"
	"github.com/rafabene/gamehub-backend/internal/infrastructure/i18n"
	"github.com/rafabene/gamehub-backend/internal/infrastructure/logging"
	"github.com/rafabene/gamehub-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/gamehub-backend/internal/infrastructure/storage"
	"github.com/rafabene/gamehub-backend/internal/infrastructure/token"
	"github.com/rafabene/gamehub-backend/internal/services"
)

//	@title			GameHub Backend API
//	@version		1.0
//	@description	Marketplace de jogos HTML5: contas, submissões e moderação
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting gamehub backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Validações de binding específicas do domínio
	if err := dto.RegisterCustomValidations(); err != nil {
		logger.Error("failed to register custom validations", "error", err)
		log.Fatal(err)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	submissionRepo := postgres.NewSubmissionRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar infraestrutura de auth e storage
	tokenManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	blobStore := storage.NewSignedURLStore(cfg.Storage.BaseURL, cfg.Storage.SigningKey)

	// Inicializar services
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	userService := services.NewUserService(userRepo, logger)
	gameService := services.NewGameService(submissionRepo, blobStore, logger, cfg.Storage.PlayURLTTL)
	moderationService := services.NewModerationService(submissionRepo, uow, logger, cfg.Moderation.OperationTimeout)

	// Feed websocket de moderação
	moderationFeed := ws.NewModerationFeed(logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	userHandler := httphandlers.NewUserHandler(userService)
	submissionHandler := httphandlers.NewSubmissionHandler(gameService, moderationService, moderationFeed)
	gameHandler := httphandlers.NewGameHandler(gameService)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Middleware de autenticação
	authMiddleware := middleware.NewAuthMiddleware(tokenManager, logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Users
		users := v1.Group("/users", authMiddleware.RequireAuth())
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/me", userHandler.GetMe)
			users.GET("/:id", userHandler.GetUser)
		}

		// Submissions (rascunhos + moderação)
		submissions := v1.Group("/submissions", authMiddleware.RequireAuth())
		{
			submissions.POST("", submissionHandler.CreateSubmission)
			submissions.GET("", submissionHandler.ListSubmissions)
			submissions.GET("/:id", submissionHandler.GetSubmission)
			submissions.PATCH("/:id", submissionHandler.UpdateSubmission)

			submissions.POST("/:id/submit", submissionHandler.Submit)
			submissions.POST("/:id/start-review", submissionHandler.StartReview)
			submissions.POST("/:id/approve", submissionHandler.Approve)
			submissions.POST("/:id/reject", submissionHandler.Reject)
			submissions.POST("/:id/publish", submissionHandler.Publish)
			submissions.POST("/:id/resubmit", submissionHandler.Resubmit)
		}

		// Catálogo público
		games := v1.Group("/games")
		{
			games.GET("", gameHandler.ListGames)
			games.GET("/:id/play", authMiddleware.RequireAuth(), gameHandler.PlayGame)
		}

		// Feed de moderação (admin)
		v1.GET("/moderation/feed", authMiddleware.RequireAuth(), moderationFeed.Serve)
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
