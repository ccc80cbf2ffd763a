package router

import (
	"github.com/gin-gonic/gin"

	"careflow/internal/config"
	"careflow/internal/domain"
	"careflow/internal/handler"
	"careflow/internal/middleware"
	"careflow/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	reportH *handler.ReportHandler,
	recordH *handler.RecordHandler,
	exportH *handler.ExportHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Report routes
	reports := protected.Group("/reports")
	reports.POST("/upload", reportH.Upload)
	reports.GET("", reportH.List)
	reports.GET("/:id", reportH.GetByID)
	reports.GET("/:id/records", recordH.ListByReport)
	reports.GET("/:id/export/csv", exportH.ExportCSV)
	reports.GET("/:id/export/xlsx", exportH.ExportXLSX)

	// Record review routes
	records := protected.Group("/records")
	records.GET("/review-queue", recordH.ReviewQueue)
	records.GET("/:id", recordH.GetByID)
	records.GET("/:id/audit", recordH.AuditTrail)
	records.POST("/:id/approve", recordH.Approve)
	records.POST("/:id/reject", recordH.Reject)
	records.POST("/:id/amend", recordH.Amend)

	// User management
	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)

	return r
}
