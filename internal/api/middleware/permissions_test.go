package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"pipecrm/internal/models"
)

// TestRoleAllowsMethod pins the role/method access matrix.
func TestRoleAllowsMethod(t *testing.T) {
	cases := []struct {
		role   string
		method string
		want   bool
	}{
		{models.RoleAdmin, http.MethodDelete, true},
		{models.RoleMember, http.MethodPost, true},
		{models.RoleMember, http.MethodGet, true},
		{models.RoleViewer, http.MethodGet, true},
		{models.RoleViewer, http.MethodHead, true},
		{models.RoleViewer, http.MethodPost, false},
		{models.RoleViewer, http.MethodDelete, false},
		{"", http.MethodGet, false},
		{"superuser", http.MethodGet, false},
	}
	for _, tc := range cases {
		if got := RoleAllowsMethod(tc.role, tc.method); got != tc.want {
			t.Errorf("RoleAllowsMethod(%q, %s) = %v, want %v", tc.role, tc.method, got, tc.want)
		}
	}
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, method, role string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if role != "" {
		c.Set("role", role)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return mw(next)(c)
}

// TestRequireRole verifies only listed roles pass.
func TestRequireRole(t *testing.T) {
	mw := RequireRole(models.RoleAdmin)

	if err := invoke(t, mw, http.MethodGet, models.RoleAdmin); err != nil {
		t.Errorf("admin rejected: %v", err)
	}

	err := invoke(t, mw, http.MethodGet, models.RoleMember)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("member: err = %v, want 403", err)
	}
}

// TestRequireMethodAccess verifies the matrix applies per request method.
func TestRequireMethodAccess(t *testing.T) {
	mw := RequireMethodAccess()

	if err := invoke(t, mw, http.MethodGet, models.RoleViewer); err != nil {
		t.Errorf("viewer GET rejected: %v", err)
	}

	err := invoke(t, mw, http.MethodDelete, models.RoleViewer)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("viewer DELETE: err = %v, want 403", err)
	}
}
