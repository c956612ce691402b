package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/hash"
	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
)

type AuthHandler struct {
	DB *gorm.DB
}

// LoginPage renders the login form. A signed in user goes straight home.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if _, ok := authz.Current(c); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login.html", viewData(c, authz.Identity{}, nil))
}

// Login checks the staff ID and password. Failures answer 200 with
// success=false so the form script can show the message inline.
func (h *AuthHandler) Login(c echo.Context) error {
	staffID := strings.TrimSpace(c.FormValue("staff_id"))
	password := c.FormValue("password")
	branch := strings.TrimSpace(c.FormValue("branch"))

	if staffID == "" || password == "" {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "ID va parolni kiriting!"})
	}

	var user models.User
	err := h.DB.Where("staff_id = ?", staffID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "Login yoki parol noto‘g‘ri!"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		if user.PasswordHash != password {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "Login yoki parol noto‘g‘ri!"})
		}
		// rows imported before hashing hold the raw password, replace
		// it on the first successful login
		if hashed, err := hash.HashPassword(password); err == nil {
			h.DB.Model(&user).Update("password_hash", hashed)
		}
	}

	if err := authz.SignIn(c, user, branch); err != nil {
		logging.FromContext(c.Request().Context()).Error("save session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Logout drops the session and returns to the login form.
func (h *AuthHandler) Logout(c echo.Context) error {
	_ = authz.SignOut(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
