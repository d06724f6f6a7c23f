package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/ai"
	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/config"
	"github.com/cekapguard/agency-api/internal/infrastructure/database"
	"github.com/cekapguard/agency-api/internal/infrastructure/repository"
	"github.com/cekapguard/agency-api/internal/infrastructure/stream"
	"github.com/cekapguard/agency-api/internal/presentation/http/handler"
	"github.com/cekapguard/agency-api/internal/presentation/http/routes"
	"github.com/cekapguard/agency-api/pkg/storage"
	"github.com/cekapguard/agency-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Change notification broker for the event stream
	broker := stream.NewBroker()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	customerRepo := repository.NewCustomerRepository(db, broker)
	documentRepo := repository.NewDocumentRepository(db, broker)
	activityRepo := repository.NewActivityLogRepository(db, broker)
	configRepo := repository.NewSystemConfigRepository(db, broker)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Expired idempotency keys are purged in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("idempotency key cleanup failed: %v", err)
			}
		}
	}()

	// Initialize attachment storage
	attachmentStore, err := storage.NewLocalStorage(
		cfg.Storage.Path,
		cfg.Storage.BaseURL,
		cfg.Storage.UploadMaxSize,
	)
	if err != nil {
		log.Fatalf("Failed to initialize attachment storage: %v", err)
	}

	// Initialize the policy note suggester
	suggester := ai.NewSuggester(cfg.AI.APIKey, cfg.AI.Model)

	// Initialize services
	authService := service.NewAuthService(userRepo, staffRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	activityService := service.NewActivityService(activityRepo)
	configService := service.NewConfigService(configRepo)
	documentService := service.NewDocumentService(documentRepo, configService, customerService, activityService)
	exportService := service.NewExportService(documentRepo)
	dashboardService := service.NewDashboardService(documentRepo, customerRepo, activityRepo)
	staffService := service.NewStaffService(staffRepo)
	suggestionService := service.NewSuggestionService(suggester.SuggestPolicyNotes)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Customer:   handler.NewCustomerHandler(customerService),
		Document:   handler.NewDocumentHandler(documentService, exportService),
		Activity:   handler.NewActivityHandler(activityService),
		Settings:   handler.NewSettingsHandler(configService),
		Staff:      handler.NewStaffHandler(staffService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Suggestion: handler.NewSuggestionHandler(suggestionService),
		Attachment: handler.NewAttachmentHandler(attachmentStore),
		Events:     handler.NewEventsHandler(broker),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
