package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/hash"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
)

// UserAdminHandler manages staff accounts through classic form posts
// with flash messages.
type UserAdminHandler struct {
	DB *gorm.DB
}

// Page lists accounts next to the create form.
func (h *UserAdminHandler) Page(c echo.Context) error {
	id, _ := authz.Current(c)

	var users []models.User
	if err := h.DB.Order("role, full_name").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.Render(http.StatusOK, "admin_users.html", viewData(c, id, echo.Map{
		"Users": users,
	}))
}

// Create adds a staff account.
func (h *UserAdminHandler) Create(c echo.Context) error {
	fullName := strings.TrimSpace(c.FormValue("FullName"))
	phone := strings.TrimSpace(c.FormValue("Phone"))
	staffID := strings.TrimSpace(c.FormValue("StaffID"))
	parol := strings.TrimSpace(c.FormValue("Parol"))
	role := strings.TrimSpace(c.FormValue("Role"))
	if role == "" {
		role = models.RoleUser
	}

	if fullName == "" || staffID == "" || parol == "" {
		AddFlash(c, "error", "FullName, StaffID, Parol majburiy.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("staff_id = ?", staffID).
		Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if count > 0 {
		AddFlash(c, "error", "Bunday StaffID mavjud.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	hashed, err := hash.HashPassword(parol)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user := models.User{
		FullName:     fullName,
		Phone:        phone,
		StaffID:      staffID,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	AddFlash(c, "success", "Foydalanuvchi qo‘shildi.")
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// Edit updates an account. An empty password keeps the stored hash.
func (h *UserAdminHandler) Edit(c echo.Context) error {
	uid, _ := strconv.Atoi(c.FormValue("Id"))

	var user models.User
	err := h.DB.Where("id = ?", uid).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		AddFlash(c, "error", "User topilmadi.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	fullName := strings.TrimSpace(c.FormValue("FullName"))
	phone := strings.TrimSpace(c.FormValue("Phone"))
	staffID := strings.TrimSpace(c.FormValue("StaffID"))
	newPass := strings.TrimSpace(c.FormValue("Parol"))
	role := strings.TrimSpace(c.FormValue("Role"))
	if role == "" {
		role = models.RoleUser
	}

	if staffID != "" && staffID != user.StaffID {
		var count int64
		if err := h.DB.Model(&models.User{}).
			Where("staff_id = ? AND id <> ?", staffID, user.ID).
			Count(&count).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
		if count > 0 {
			AddFlash(c, "error", "Bunday StaffID mavjud.")
			return c.Redirect(http.StatusSeeOther, "/admin/users")
		}
		user.StaffID = staffID
	}

	if fullName != "" {
		user.FullName = fullName
	}
	user.Phone = phone
	user.Role = role

	if newPass != "" {
		hashed, err := hash.HashPassword(newPass)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "hash error")
		}
		user.PasswordHash = hashed
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	AddFlash(c, "success", "User yangilandi.")
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

// Delete removes an account by id.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	uid, _ := strconv.Atoi(c.QueryParam("id"))
	if uid > 0 {
		if err := h.DB.Where("id = ?", uid).Delete(&models.User{}).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
		AddFlash(c, "success", "User o‘chirildi.")
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}
