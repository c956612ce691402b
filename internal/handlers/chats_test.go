package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/davronbekov/optika-orders/internal/models"
)

func TestChatAdd(t *testing.T) {
	db := InitTestDB(t)
	e := echo.New()

	form := url.Values{}
	form.Set("FullName", "Ombor guruh")
	form.Set("ChatId", "-1002003004005")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/chats", form, nil), rec)

	h := &ChatAdminHandler{DB: db}
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/chats", rec.Header().Get("Location"))

	var chat models.TelegramChat
	require.NoError(t, db.Take(&chat).Error)
	require.Equal(t, "Ombor guruh", chat.FullName)
	require.Equal(t, "-1002003004005", chat.ChatID)
}

func TestChatAddRejectsDuplicate(t *testing.T) {
	db := InitTestDB(t)
	require.NoError(t, db.Create(&models.TelegramChat{FullName: "Ombor guruh", ChatID: "-100200"}).Error)
	e := echo.New()

	form := url.Values{}
	form.Set("FullName", "Boshqa nom")
	form.Set("ChatId", "-100200")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/chats", form, nil), rec)

	h := &ChatAdminHandler{DB: db}
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.TelegramChat{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestChatAddRequiresFields(t *testing.T) {
	db := InitTestDB(t)
	e := echo.New()

	form := url.Values{}
	form.Set("FullName", "Ombor guruh")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/chats", form, nil), rec)

	h := &ChatAdminHandler{DB: db}
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.TelegramChat{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestChatDelete(t *testing.T) {
	db := InitTestDB(t)
	chat := models.TelegramChat{FullName: "Ombor guruh", ChatID: "-100200"}
	require.NoError(t, db.Create(&chat).Error)
	e := echo.New()

	form := url.Values{}
	form.Set("id", fmt.Sprint(chat.ID))

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/chats/delete", form, nil), rec)

	h := &ChatAdminHandler{DB: db}
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.TelegramChat{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}
