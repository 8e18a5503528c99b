package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pipecrm/internal/api/middleware"
	"pipecrm/internal/config"
	"pipecrm/internal/handlers"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	base := e.Group("/api/v1")

	// Public routes, no token required.
	auth := base.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Routes requiring an authenticated caller.
	protected := auth.Group("")
	protected.Use(middleware.NewAuthMiddleware(cfg.JWT.Secret).Middleware())
	protected.GET("/me", authHandler.GetMe)
}
