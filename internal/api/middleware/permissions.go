package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pipecrm/internal/models"
)

// RoleAllowsMethod reports whether a role may perform the given HTTP method.
// Admins can do anything, members read and write, viewers only read.
func RoleAllowsMethod(role, method string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleMember:
		return true
	case models.RoleViewer:
		return method == http.MethodGet || method == http.MethodHead
	default:
		return false
	}
}

// RequireRole gates a route group to specific roles, e.g. role and profile
// administration.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allowed[GetUserRole(c)] {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

// RequireMethodAccess applies the role/method matrix to every request in a
// group.
func RequireMethodAccess() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if RoleAllowsMethod(GetUserRole(c), c.Request().Method) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}
