package authz

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly gates the admin HTML pages, sending other roles back to the
// index.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := Current(c)
		if !ok || !id.IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return next(c)
	}
}

// AdminOnlyJSON is the API flavour of AdminOnly.
func AdminOnlyJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := Current(c)
		if !ok || !id.IsAdmin() {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"message": "Admin ruxsati kerak.",
			})
		}
		return next(c)
	}
}
