package app

import (
	"fmt"

	"payhook_backend/internal/alerts"
	"payhook_backend/internal/config"
	"payhook_backend/internal/handlers"
	"payhook_backend/internal/logger"
	"payhook_backend/internal/middleware"
	"payhook_backend/internal/models"
	"payhook_backend/internal/repositories"
	"payhook_backend/internal/routes"
	"payhook_backend/internal/services"
	"payhook_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Webhook.Secret == "" {
		logger.Fatal("Webhook secret is not configured, refusing to start")
	}

	// One isolated store per application. Both must be reachable before the
	// server accepts webhooks; a processor retry against a half-started
	// service would only generate noise.
	psrDB := openStore("psrtest", cfg.Stores.PsrTestDSN)
	eduDB := openStore("edutest", cfg.Stores.EduTestDSN)
	logger.Info("Account stores connected")

	ginRouter := SetupRouter(cfg, psrDB, eduDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
// Exported so tests can build the full pipeline against their own stores.
func SetupRouter(cfg *config.Config, psrDB, eduDB *gorm.DB) *gin.Engine {
	customValidator := validator.New()

	// The application -> store table is closed and built exactly once.
	// Wire metadata can select one of these entries and nothing else.
	resolver := services.NewStoreResolver(map[models.AppName]repositories.AccountRepository{
		models.AppPsrTest: repositories.NewAccountRepository(psrDB),
		models.AppEduTest: repositories.NewAccountRepository(eduDB),
	})

	notifier := alerts.NewNotifier(cfg)
	signatureService := services.NewSignatureService(cfg.Webhook.Secret)
	classifierService := services.NewClassifierService(customValidator)
	webhookService := services.NewWebhookService(signatureService, classifierService, resolver, notifier)

	baseHandler := handlers.NewBaseHandler()
	appHandlers := &handlers.AppHandlers{
		WebhookHandler: handlers.NewWebhookHandler(baseHandler, webhookService),
		HealthHandler:  handlers.NewHealthHandler(),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	logger.Info("Webhook pipeline initialized", "applications", resolver.Applications())
	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}

func openStore(name, dsn string) *gorm.DB {
	if dsn == "" {
		logger.Fatal("Account store DSN is not configured", "store", name)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to account store", "store", name, "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "store", name, "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Account store unavailable", "store", name, "error", err)
	}

	if err := repositories.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate account store", "store", name, "error", err)
	}

	return gormDB
}
