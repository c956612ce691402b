package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
)

// ChatAdminHandler manages the Telegram delivery targets.
type ChatAdminHandler struct {
	DB *gorm.DB
}

// Page lists the chats ordered by owner name.
func (h *ChatAdminHandler) Page(c echo.Context) error {
	id, _ := authz.Current(c)

	var chats []models.TelegramChat
	if err := h.DB.Order("full_name").Find(&chats).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.Render(http.StatusOK, "admin_chats.html", viewData(c, id, echo.Map{
		"Chats": chats,
	}))
}

// Add stores a new chat id.
func (h *ChatAdminHandler) Add(c echo.Context) error {
	fullName := strings.TrimSpace(c.FormValue("FullName"))
	chatID := strings.TrimSpace(c.FormValue("ChatId"))

	if fullName == "" || chatID == "" {
		AddFlash(c, "error", "FullName va ChatId majburiy.")
		return c.Redirect(http.StatusSeeOther, "/admin/chats")
	}

	var count int64
	if err := h.DB.Model(&models.TelegramChat{}).Where("chat_id = ?", chatID).
		Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if count > 0 {
		AddFlash(c, "error", "Bu ChatId mavjud.")
		return c.Redirect(http.StatusSeeOther, "/admin/chats")
	}

	chat := models.TelegramChat{FullName: fullName, ChatID: chatID}
	if err := h.DB.Create(&chat).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	AddFlash(c, "success", "Chat ID qo‘shildi.")
	return c.Redirect(http.StatusSeeOther, "/admin/chats")
}

// Delete removes one chat by id.
func (h *ChatAdminHandler) Delete(c echo.Context) error {
	cid, _ := strconv.Atoi(c.FormValue("id"))
	if cid > 0 {
		if err := h.DB.Where("id = ?", cid).Delete(&models.TelegramChat{}).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
		AddFlash(c, "success", "Chat ID o‘chirildi.")
	}
	return c.Redirect(http.StatusSeeOther, "/admin/chats")
}
