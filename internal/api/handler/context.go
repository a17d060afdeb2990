package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// fast-fails before any service call: a non-empty username proves the
// middleware ran.
func ctxIdentity(c echo.Context) (username string, role domain.Role, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(domain.Role)
	return username, role, nil
}
