package authz

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLogin gates HTML pages, sending anonymous visitors to the login
// form.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := Current(c); !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// RequireLoginJSON is the API flavour of RequireLogin.
func RequireLoginJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := Current(c); !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Login qiling (session topilmadi).",
			})
		}
		return next(c)
	}
}
