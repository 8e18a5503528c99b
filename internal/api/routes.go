package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "pipecrm/docs/swagger"

	"pipecrm/internal/api/middleware"
	"pipecrm/internal/api/registry"
	"pipecrm/internal/routes"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "pipecrm")
	})
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api/v1")
	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret)
	api.Use(auth.Middleware())

	registry.RegisterCRUDRoutes(api, s.db)
	routes.SetupUploadRoutes(api, s.config)
}
