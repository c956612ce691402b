// Package authz holds the session backed login state and the route
// gates built on it.
package authz

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/davronbekov/optika-orders/internal/models"
)

// SessionName is the cookie holding the signed login state.
const SessionName = "optika_session"

const (
	keyStaffID  = "staff_id"
	keyFullName = "full_name"
	keyRole     = "role"
	keyBranch   = "branch"
)

// Identity is the logged in staff member as recorded in the session.
type Identity struct {
	StaffID  string
	FullName string
	Role     string
	Branch   string
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// Current reads the identity from the request session. The second return
// is false when nobody is logged in.
func Current(c echo.Context) (Identity, bool) {
	sess, _ := session.Get(SessionName, c)
	if sess == nil {
		return Identity{}, false
	}
	id := Identity{
		StaffID:  str(sess.Values[keyStaffID]),
		FullName: str(sess.Values[keyFullName]),
		Role:     str(sess.Values[keyRole]),
		Branch:   str(sess.Values[keyBranch]),
	}
	if id.StaffID == "" {
		return Identity{}, false
	}
	if id.Branch == "" {
		id.Branch = "-"
	}
	return id, true
}

// SignIn stores the user in the session. The branch is kept only when
// the login form sent one.
func SignIn(c echo.Context, user models.User, branch string) error {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return err
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[keyStaffID] = user.StaffID
	sess.Values[keyFullName] = user.FullName
	sess.Values[keyRole] = user.Role
	if branch != "" {
		sess.Values[keyBranch] = branch
	}
	return sess.Save(c.Request(), c.Response())
}

// SignOut drops the whole session.
func SignOut(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return err
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
