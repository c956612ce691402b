package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/davronbekov/optika-orders/internal/hash"
	"github.com/davronbekov/optika-orders/internal/models"
)

func TestUserCreateStoresHashedPassword(t *testing.T) {
	db := InitTestDB(t)
	e := echo.New()

	form := url.Values{}
	form.Set("FullName", "Aziza Karimova")
	form.Set("Phone", "+998901234567")
	form.Set("StaffID", "S-200")
	form.Set("Parol", "yashirin")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/users", rec.Header().Get("Location"))

	var user models.User
	require.NoError(t, db.Where("staff_id = ?", "S-200").Take(&user).Error)
	require.Equal(t, "Aziza Karimova", user.FullName)
	require.Equal(t, "+998901234567", user.Phone)
	require.Equal(t, models.RoleUser, user.Role)
	require.NotEqual(t, "yashirin", user.PasswordHash)
	require.True(t, hash.CheckPassword(user.PasswordHash, "yashirin"))
}

func TestUserCreateRejectsDuplicateStaffID(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-200", "parol", models.RoleUser)
	e := echo.New()

	form := url.Values{}
	form.Set("FullName", "Boshqa Odam")
	form.Set("StaffID", "S-200")
	form.Set("Parol", "parol2")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserCreateRequiresFields(t *testing.T) {
	db := InitTestDB(t)
	e := echo.New()

	form := url.Values{}
	form.Set("FullName", "Aziza Karimova")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestUserEditKeepsPasswordWhenBlank(t *testing.T) {
	db := InitTestDB(t)
	user := seedUser(t, db, "Aziza Karimova", "S-200", "eski-parol", models.RoleUser)
	e := echo.New()

	form := url.Values{}
	form.Set("Id", fmt.Sprint(user.ID))
	form.Set("FullName", "Aziza Karimova Yangi")
	form.Set("Phone", "")
	form.Set("StaffID", "S-200")
	form.Set("Parol", "")
	form.Set("Role", models.RoleAdmin)

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users/edit", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Edit(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, "Aziza Karimova Yangi", updated.FullName)
	require.Equal(t, models.RoleAdmin, updated.Role)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "eski-parol"))
}

func TestUserEditChangesPassword(t *testing.T) {
	db := InitTestDB(t)
	user := seedUser(t, db, "Aziza Karimova", "S-200", "eski-parol", models.RoleUser)
	e := echo.New()

	form := url.Values{}
	form.Set("Id", fmt.Sprint(user.ID))
	form.Set("Parol", "yangi-parol")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users/edit", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Edit(c))

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "yangi-parol"))
	require.False(t, hash.CheckPassword(updated.PasswordHash, "eski-parol"))
	// a blank full name keeps the stored one
	require.Equal(t, "Aziza Karimova", updated.FullName)
}

func TestUserEditRejectsTakenStaffID(t *testing.T) {
	db := InitTestDB(t)
	seedUser(t, db, "Aziza Karimova", "S-200", "parol", models.RoleUser)
	second := seedUser(t, db, "Dilshod Rahimov", "S-300", "parol", models.RoleUser)
	e := echo.New()

	form := url.Values{}
	form.Set("Id", fmt.Sprint(second.ID))
	form.Set("StaffID", "S-200")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users/edit", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Edit(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var unchanged models.User
	require.NoError(t, db.First(&unchanged, second.ID).Error)
	require.Equal(t, "S-300", unchanged.StaffID)
}

func TestUserEditUnknownUser(t *testing.T) {
	db := InitTestDB(t)
	e := echo.New()

	form := url.Values{}
	form.Set("Id", "999")
	form.Set("FullName", "Hech Kim")

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/admin/users/edit", form, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Edit(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/users", rec.Header().Get("Location"))
}

func TestUserDelete(t *testing.T) {
	db := InitTestDB(t)
	user := seedUser(t, db, "Aziza Karimova", "S-200", "parol", models.RoleUser)
	e := echo.New()

	target := fmt.Sprintf("/admin/users/delete?id=%d", user.ID)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)

	h := &UserAdminHandler{DB: db}
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}
