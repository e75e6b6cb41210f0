package main

import (
	"log"                             // log package is needed for logging
	"tokenestate/internal/api"        // Custom package for API handlers
	"tokenestate/internal/config"     // Custom package for configuration
	"tokenestate/internal/db"         // Custom package for database
	"tokenestate/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.GET("/health", api.HealthHandler())                         // Health check endpoint
	r.POST("/users", api.RegisterHandler(gdb))                    // Self-registration endpoint
	r.POST("/auth/login", api.LoginHandler(gdb, cfg.JWTSecret))   // Session token endpoint
	r.GET("/properties/public", api.PublicPropertiesHandler(gdb)) // Validated listings, no auth

	// Protected routes (bearer wallet credential or session token)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Auth(gdb, cfg.JWTSecret))
	apiGroup.GET("/properties", api.ListPropertiesHandler(gdb))                 // Role-scoped listing
	apiGroup.POST("/properties", api.CreatePropertyHandler(gdb))                // Manager/admin create
	apiGroup.GET("/properties/:id", api.GetPropertyHandler(gdb))                // Scoped detail
	apiGroup.PUT("/properties/:id", api.UpdatePropertyHandler(gdb))             // Manager/admin edit
	apiGroup.PUT("/properties/:id/status", api.UpdatePropertyStatusHandler(gdb)) // Admin status change
	apiGroup.DELETE("/properties/:id", api.DeletePropertyHandler(gdb))          // Admin delete
	apiGroup.GET("/investments", api.ListInvestmentsHandler(gdb))               // Role-scoped listing
	apiGroup.POST("/investments", api.CreateInvestmentHandler(gdb))             // Any authenticated role
	apiGroup.GET("/investments/:id", api.GetInvestmentHandler(gdb))             // Scoped detail
	apiGroup.PUT("/investments/:id", api.UpdateInvestmentHandler(gdb))          // Owner/admin edit
	apiGroup.DELETE("/investments/:id", api.DeleteInvestmentHandler(gdb))       // Owner/admin delete

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.Auth(gdb, cfg.JWTSecret), middleware.RequireAdmin())
	adminGroup.GET("/users", api.ListUsersHandler(gdb))                // List users endpoint
	adminGroup.PUT("/users/:id/role", api.UpdateUserRoleHandler(gdb)) // Role change endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
