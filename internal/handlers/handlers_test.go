package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/hash"
	"github.com/davronbekov/optika-orders/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestStore() sessions.Store {
	return sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
}

// withSession runs a handler behind the session middleware, the way the
// router mounts it.
func withSession(store sessions.Store, h echo.HandlerFunc) echo.HandlerFunc {
	return session.Middleware(store)(h)
}

func seedUser(t *testing.T, db *gorm.DB, fullName, staffID, password, role string) models.User {
	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		FullName:     fullName,
		StaffID:      staffID,
		PasswordHash: hashed,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// login posts the form and hands back the session cookies for follow up
// requests.
func login(t *testing.T, e *echo.Echo, store sessions.Store, db *gorm.DB, staffID, password, branch string) []*http.Cookie {
	form := url.Values{}
	form.Set("staff_id", staffID)
	form.Set("password", password)
	form.Set("branch", branch)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &AuthHandler{DB: db}
	require.NoError(t, withSession(store, h.Login)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	require.Equal(t, true, resp["success"])

	return rec.Result().Cookies()
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeJSONList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func jsonRequest(method, target, body string, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func formRequest(method, target string, form url.Values, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}
