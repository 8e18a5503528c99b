package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-advanced-admin/admin"
	admingorm "github.com/go-advanced-admin/orm-gorm"
	adminecho "github.com/go-advanced-admin/web-echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	apimw "pipecrm/internal/api/middleware"
	"pipecrm/internal/api/validator"
	"pipecrm/internal/config"
	"pipecrm/internal/models"
	"pipecrm/internal/resource"
	"pipecrm/internal/routes"
	console "pipecrm/internal/utils/logger"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *gorm.DB
}

var log = console.New("api-server")

func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	e.HTTPErrorHandler = httpErrorHandler

	s := &Server{echo: e, config: cfg, db: db}

	if err := models.SeedRoles(db); err != nil {
		log.Warn("failed to seed roles: %v", err)
	}
	if err := models.SeedAdminProfile(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Warn("failed to seed admin profile: %v", err)
	}

	s.setupAdminPanel()

	routes.SetupAuthRoutes(e, db, cfg)
	s.registerRoutes()
	return s
}

// setupAdminPanel mounts the back-office panel over the same gorm handle.
func (s *Server) setupAdminPanel() {
	gormIntegrator := admingorm.NewIntegrator(s.db)
	echoIntegrator := adminecho.NewIntegrator(s.echo.Group(""))

	permissionChecker := func(request admin.PermissionRequest, ctx interface{}) (bool, error) {
		if c, ok := ctx.(echo.Context); ok {
			return apimw.GetUserRole(c) == models.RoleAdmin, nil
		}
		return false, nil
	}

	panel, err := admin.NewPanel(gormIntegrator, echoIntegrator, permissionChecker, nil)
	if err != nil {
		log.Warn("failed to create admin panel: %v", err)
		return
	}
	if _, err := panel.RegisterApp("pipecrm", "CRM Admin Panel", nil); err != nil {
		log.Warn("failed to register admin app: %v", err)
	}
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// httpErrorHandler is the single boundary where failures become responses.
// Classified store errors, validation errors and plain echo errors all end up
// here; anything unrecognized becomes a 500 with no internal detail leaked.
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	body := map[string]interface{}{
		"error": http.StatusText(http.StatusInternalServerError),
	}

	var resErr *resource.Error
	var validationErrs validator.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &resErr):
		code = resErr.Class.HTTPStatus()
		body["error"] = resErr.Message
		if len(resErr.Details) > 0 {
			body["details"] = resErr.Details
		}
		if resErr.Suggestion != "" {
			body["suggestion"] = resErr.Suggestion
		}
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		body["error"] = "validation failed"
		body["details"] = validationErrs.Format()
	case errors.As(err, &httpErr):
		code = httpErr.Code
		body["error"] = fmt.Sprintf("%v", httpErr.Message)
	default:
		log.Warn("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	body["code"] = code
	body["time"] = time.Now().Format(time.RFC3339)

	if !c.Response().Committed {
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			log.Warn("failed to write error response: %v", writeErr)
		}
	}
}
