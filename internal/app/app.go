package app

import (
	"context"
	"errors"
	"fmt"

	"masseurmatch_backend/database"
	"masseurmatch_backend/internal/auth"
	"masseurmatch_backend/internal/config"
	"masseurmatch_backend/internal/handlers"
	"masseurmatch_backend/internal/imageprocessor"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/middleware"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/routes"
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/storage"
	"masseurmatch_backend/internal/validator"
	"masseurmatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("database migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	router, sc := SetupRouter(cfg, gormDB, tokens)

	worker := workers.NewSubscriptionWorker(
		gormDB,
		repositories.NewSubscriptionRepository(),
		repositories.NewProfileRepository(),
		sc.OnboardingService,
		cfg.Billing.GraceDays,
	)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine. Split from Run so integration tests
// can mount the router on a transaction-backed database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, tokens *auth.TokenManager) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStore(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	sc := services.NewServiceContainer(services.ServiceDeps{
		Tokens:     tokens,
		Storage:    storageInstance,
		Processor:  imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
		PlanLimits: models.DefaultPlanLimits(),
		UploadLimits: services.UploadLimits{
			MaxSizeBytes: cfg.Upload.MaxSize,
			AllowedTypes: cfg.Upload.AllowedTypes,
		},
	})

	appHandlers := handlers.NewAppHandlers(sc, validator.New(), handlers.HandlerDeps{
		WebhookSecret: cfg.Billing.WebhookSecret,
	})

	router := initializeGinRouter(gormDB)
	routes.RegisterRoutes(router, appHandlers, tokens)

	return router, sc
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the initial admin account when the instance boots
// with FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD set.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.FirstAdminEmail).First(&existing).Error
	if err == nil {
		logger.Info("admin user already exists", "email", cfg.FirstAdminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("seeded first admin user", "email", cfg.FirstAdminEmail)
	return nil
}
