package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pipecrm/internal/api/middleware"
	"pipecrm/internal/config"
	"pipecrm/internal/models"
	"pipecrm/internal/utils"
	console "pipecrm/internal/utils/logger"
)

// AuthHandler implements the session surface. The CRUD core only ever sees
// the user id this handler resolves into a token.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	log *console.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:  db,
		cfg: cfg,
		log: console.New("auth_handler"),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token"`
	Profile      *models.Profile `json:"profile"`
}

// Login exchanges email/password for an access and refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var profile models.Profile
	if err := h.db.Where("email = ?", req.Email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return h.issueTokens(c, profile)
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := utils.ParseJWT(req.RefreshToken, h.cfg.JWT.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", claims.UserID).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "profile not found")
	}

	return h.issueTokens(c, profile)
}

// GetMe returns the authenticated caller's profile.
func (h *AuthHandler) GetMe(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) issueTokens(c echo.Context, profile models.Profile) error {
	token, err := utils.GenerateJWT(profile, h.cfg.JWT.Secret)
	if err != nil {
		return h.log.Error("failed to sign access token", err)
	}
	refresh, err := utils.GenerateRefreshToken(profile, h.cfg.JWT.Secret)
	if err != nil {
		return h.log.Error("failed to sign refresh token", err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		Token:        token,
		RefreshToken: refresh,
		Profile:      &profile,
	})
}
