package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StaffRoleGuard lets only STAFF accounts through. Per-tenant capability
// flags are checked further down in the usecases; this is the coarse gate
// on the /admin group.
func StaffRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != "STAFF" {
				return c.JSON(http.StatusForbidden, errorJSON("staff only"))
			}

			return next(c)
		}
	}
}
