package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sharath018/event-management-backend/config"
	"github.com/sharath018/event-management-backend/database"
	"github.com/sharath018/event-management-backend/internal/auditlog"
	"github.com/sharath018/event-management-backend/internal/auth"
	"github.com/sharath018/event-management-backend/internal/event"
	"github.com/sharath018/event-management-backend/internal/notification"
	"github.com/sharath018/event-management-backend/internal/reports"
	"github.com/sharath018/event-management-backend/middleware"

	_ "github.com/sharath018/event-management-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for audit trails

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		// Logout requires Auth Middleware
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	notifier := notification.NewActivityNotifier()
	policy := event.ParsePolicy(cfg.OnExistingParticipant)
	eventSvc := event.NewService(eventRepo, auditSvc, notifier, policy)
	eventHandler := event.NewHandler(eventSvc)

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/:eventId", eventHandler.GetEvent)
		eventRoutes.PUT("/:eventId", eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:eventId", eventHandler.DeleteEvent)

		eventRoutes.POST("/:eventId/participants", eventHandler.AddParticipants)
		eventRoutes.DELETE("/:eventId/participants/:participantId", eventHandler.RemoveParticipant)
	}

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(database.DB)
	notificationSvc := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationSvc)

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.GetNotifications)
		notificationRoutes.PATCH("/:notificationId/read", notificationHandler.MarkNotificationRead)
	}

	// ========== Audit Logs (Admin Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin))
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	// ========== Reports (Admin Only) ==========
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, reports.NewReportExporter())
	reportsHandler := reports.NewHandler(reportsSvc)

	reportRoutes := protected.Group("/reports")
	reportRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin))
	{
		reportRoutes.GET("/events", reportsHandler.GetEventsReport)
		reportRoutes.GET("/utilization", reportsHandler.GetUtilizationReport)
	}
}
