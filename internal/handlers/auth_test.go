package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/davronbekov/optika-orders/internal/hash"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
)

func TestLoginSetsSession(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-100", "parol123", models.RoleUser)
	store := newTestStore()
	e := echo.New()

	cookies := login(t, e, store, db, "S-100", "parol123", "Chilonzor")
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	probe := withSession(store, func(c echo.Context) error {
		id, ok := authz.Current(c)
		require.True(t, ok)
		require.Equal(t, "S-100", id.StaffID)
		require.Equal(t, "Aziza Karimova", id.FullName)
		require.Equal(t, "Chilonzor", id.Branch)
		require.False(t, id.IsAdmin())
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, probe(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWithoutBranchDefaultsToDash(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-100", "parol123", models.RoleUser)
	store := newTestStore()
	e := echo.New()

	cookies := login(t, e, store, db, "S-100", "parol123", "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	probe := withSession(store, func(c echo.Context) error {
		id, ok := authz.Current(c)
		require.True(t, ok)
		require.Equal(t, "-", id.Branch)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, probe(c))
}

func TestLoginWrongPassword(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-100", "parol123", models.RoleUser)
	store := newTestStore()
	e := echo.New()

	form := url.Values{}
	form.Set("staff_id", "S-100")
	form.Set("password", "xato-parol")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", form, nil), rec)

	h := &AuthHandler{DB: db}
	require.NoError(t, withSession(store, h.Login)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	require.Equal(t, false, resp["success"])
	require.Equal(t, "Login yoki parol noto‘g‘ri!", resp["message"])
}

func TestLoginUnknownStaffID(t *testing.T) {
	db := InitTestDB(t)
	store := newTestStore()
	e := echo.New()

	form := url.Values{}
	form.Set("staff_id", "S-404")
	form.Set("password", "parol")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", form, nil), rec)

	h := &AuthHandler{DB: db}
	require.NoError(t, withSession(store, h.Login)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	require.Equal(t, false, resp["success"])
	require.Equal(t, "Login yoki parol noto‘g‘ri!", resp["message"])
}

func TestLoginMissingFields(t *testing.T) {
	db := InitTestDB(t)
	store := newTestStore()
	e := echo.New()

	form := url.Values{}
	form.Set("staff_id", "  ")
	form.Set("password", "")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", form, nil), rec)

	h := &AuthHandler{DB: db}
	require.NoError(t, withSession(store, h.Login)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	require.Equal(t, false, resp["success"])
	require.Equal(t, "ID va parolni kiriting!", resp["message"])
}

func TestLoginUpgradesLegacyPlaintextPassword(t *testing.T) {
	db := InitTestDB(t)
	user := models.User{
		FullName:     "Eski Xodim",
		StaffID:      "S-OLD",
		PasswordHash: "oddiy-parol",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)

	store := newTestStore()
	e := echo.New()
	login(t, e, store, db, "S-OLD", "oddiy-parol", "")

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotEqual(t, "oddiy-parol", updated.PasswordHash)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "oddiy-parol"))

	// the upgraded hash keeps working on the next login
	login(t, e, store, db, "S-OLD", "oddiy-parol", "")
}

func TestLogoutExpiresCookie(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-100", "parol123", models.RoleUser)
	store := newTestStore()
	e := echo.New()
	cookies := login(t, e, store, db, "S-100", "parol123", "Chilonzor")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &AuthHandler{DB: db}
	require.NoError(t, withSession(store, h.Logout)(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	expired := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == authz.SessionName && ck.MaxAge < 0 {
			expired = true
		}
	}
	require.True(t, expired)
}

func TestLoginPageRedirectsWhenSignedIn(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-100", "parol123", models.RoleUser)
	store := newTestStore()
	e := echo.New()
	cookies := login(t, e, store, db, "S-100", "parol123", "Chilonzor")

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &AuthHandler{DB: db}
	require.NoError(t, withSession(store, h.LoginPage)(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}
