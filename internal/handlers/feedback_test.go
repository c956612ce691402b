package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/davronbekov/optika-orders/internal/models"
)

func TestFeedbackSendStoresEntry(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Dilshod Rahimov", "S-1", "parol", models.RoleUser)
	store := newTestStore()
	e := echo.New()
	cookies := login(t, e, store, db, "S-1", "parol", "Sergeli")

	body := `{"message":"  Sayt juda sekin ochilyapti  ","phone":"+998901112233"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/feedback", body, cookies), rec)

	h := &FeedbackHandler{DB: db}
	require.NoError(t, withSession(store, h.Send)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeJSON(t, rec)["success"])

	var fb models.Feedback
	require.NoError(t, db.Take(&fb).Error)
	require.Equal(t, "Dilshod Rahimov", fb.FullName)
	require.Equal(t, "+998901112233", fb.Phone)
	require.Equal(t, "Sayt juda sekin ochilyapti", fb.Message)
	require.False(t, fb.CreatedAt.IsZero())
}

func TestFeedbackSendRejectsEmptyMessage(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Dilshod Rahimov", "S-1", "parol", models.RoleUser)
	store := newTestStore()
	e := echo.New()
	cookies := login(t, e, store, db, "S-1", "parol", "Sergeli")

	h := &FeedbackHandler{DB: db}

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/feedback", `{"message":"   "}`, cookies), rec)
	require.NoError(t, withSession(store, h.Send)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Xabar bo‘sh bo‘lmasin.", decodeJSON(t, rec)["message"])

	rec_bad := httptest.NewRecorder()
	c_bad := e.NewContext(jsonRequest(http.MethodPost, "/api/feedback", `[1]`, cookies), rec_bad)
	require.NoError(t, withSession(store, h.Send)(c_bad))
	require.Equal(t, http.StatusBadRequest, rec_bad.Code)
	require.Equal(t, "JSON xato.", decodeJSON(t, rec_bad)["message"])
}

func TestFeedbackClear(t *testing.T) {
	db := InitTestDB(t)
	require.NoError(t, db.Create(&models.Feedback{
		FullName: "Dilshod Rahimov", Message: "Eski xabar", CreatedAt: time.Now(),
	}).Error)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/feedback/clear", nil, nil), rec)

	h := &FeedbackHandler{DB: db}
	require.NoError(t, h.Clear(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/feedback", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestFeedbackExportPDF(t *testing.T) {
	db := InitTestDB(t)
	require.NoError(t, db.Create(&models.Feedback{
		FullName:  "Dilshod Rahimov",
		Phone:     "+998901112233",
		Message:   "Juda yaxshi xizmat",
		CreatedAt: time.Now(),
	}).Error)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/feedback/pdf", nil), rec)

	h := &FeedbackHandler{DB: db}
	require.NoError(t, h.ExportPDF(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "feedback.pdf")
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}
