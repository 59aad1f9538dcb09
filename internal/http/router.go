package api

import (
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "warehouse/internal/config"
	"warehouse/internal/domain"
	h "warehouse/internal/http/handlers"
	"warehouse/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, deps h.Deps) *gin.Engine {
	_ = env
	h.Configure(deps)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware())

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth & forgot-password flow (unauthenticated surface)
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/validate", h.Validate)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-pin", h.VerifyPin)
		auth.POST("/reset-password", h.ResetPassword)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(deps.Auth))

		// Users
		users := protected.Group("/users")
		users.GET("", middleware.RequirePermission(domain.PermUsersView), h.GetUsers)
		users.GET("/:id", middleware.RequirePermission(domain.PermUsersView), h.GetUserByID)
		users.POST("", middleware.RequireRoles(domain.RoleAdmin), h.CreateUser)
		users.PUT("/:id", middleware.RequireRoles(domain.RoleAdmin), h.UpdateUser)
		users.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin), h.DeleteUser)

		// Inventory
		inventory := protected.Group("/inventory")
		inventory.GET("", middleware.RequirePermission(domain.PermInventoryView), h.GetInventory)
		inventory.GET("/low-stock", middleware.RequirePermission(domain.PermInventoryView), h.GetLowStock)
		inventory.GET("/:id", middleware.RequirePermission(domain.PermInventoryView), h.GetInventoryItem)
		inventory.POST("", middleware.RequirePermission(domain.PermInventoryEdit), h.CreateInventoryItem)
		inventory.PUT("/:id", middleware.RequirePermission(domain.PermInventoryEdit), h.UpdateInventoryItem)
		inventory.DELETE("/:id", middleware.RequirePermission(domain.PermInventoryEdit), h.DeleteInventoryItem)

		// Orders
		orders := protected.Group("/orders")
		orders.GET("", middleware.RequirePermission(domain.PermOrdersView), h.GetOrders)
		orders.GET("/:id", middleware.RequirePermission(domain.PermOrdersView), h.GetOrderByID)
		orders.PUT("/:id/status", middleware.RequirePermission(domain.PermOrdersEdit), h.UpdateOrderStatus)

		// Reports
		reports := protected.Group("/reports")
		reports.GET("/stock", middleware.RequirePermission(domain.PermReportsView), h.GetStockReport)
		reports.GET("/stock/pdf", middleware.RequirePermission(domain.PermReportsExport), h.GetStockReportPDF)
		reports.GET("/stock/csv", middleware.RequirePermission(domain.PermReportsExport), h.GetStockReportCSV)
		reports.GET("/movements", middleware.RequirePermission(domain.PermReportsView), h.GetMovementReport)
		reports.GET("/movements/pdf", middleware.RequirePermission(domain.PermReportsExport), h.GetMovementReportPDF)
		reports.GET("/movements/csv", middleware.RequirePermission(domain.PermReportsExport), h.GetMovementReportCSV)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	} else {
		cfg.AllowOrigins = []string{
			"http://localhost:3000", "http://127.0.0.1:3000",
			"http://localhost:5173", "http://127.0.0.1:5173",
		}
	}

	return cors.New(cfg)
}
