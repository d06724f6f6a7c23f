package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/config"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	domainRepo "github.com/cekapguard/agency-api/internal/domain/repository"
	"github.com/cekapguard/agency-api/internal/presentation/http/handler"
	"github.com/cekapguard/agency-api/internal/presentation/http/middleware"
	"github.com/cekapguard/agency-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Customer   *handler.CustomerHandler
	Document   *handler.DocumentHandler
	Activity   *handler.ActivityHandler
	Settings   *handler.SettingsHandler
	Staff      *handler.StaffHandler
	Dashboard  *handler.DashboardHandler
	Suggestion *handler.SuggestionHandler
	Attachment *handler.AttachmentHandler
	Events     *handler.EventsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Uploaded attachments are served as static files
	router.Static(deps.Cfg.Storage.BaseURL, deps.Cfg.Storage.Path)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.Me)

	// Settings: readable by all staff, writable by the owner only
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", middleware.RequireRole(enum.UserRoleOwner), h.Settings.Update)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.POST("/check-duplicate", h.Customer.CheckDuplicate)
	}

	// Documents
	documents := protected.Group("/documents")
	{
		documents.GET("", h.Document.List)
		// Finalizing uses idempotency middleware so a retried submit
		// replays the issued document instead of creating another.
		documents.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Document.Create)
		documents.GET("/export", h.Document.Export)
		documents.POST("/reconcile", middleware.RequireRole(enum.UserRoleOwner), h.Document.Reconcile)
		documents.GET("/:id", h.Document.Get)
		documents.POST("/:id/pay", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Document.Pay)
	}

	// Attachments
	protected.POST("/attachments", h.Attachment.Upload)

	// Policy note suggestions
	protected.POST("/ai/suggest-notes", h.Suggestion.SuggestNotes)

	// Activity log (owner only)
	protected.GET("/logs", middleware.RequireRole(enum.UserRoleOwner), h.Activity.List)

	// Staff registry (owner only)
	staff := protected.Group("/staff")
	staff.Use(middleware.RequireRole(enum.UserRoleOwner))
	{
		staff.GET("", h.Staff.List)
		staff.POST("", h.Staff.Create)
		staff.DELETE("/:id", h.Staff.Delete)
	}

	// Change event stream
	protected.GET("/events", h.Events.Stream)
}
