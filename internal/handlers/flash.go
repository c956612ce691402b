package handlers

import (
	"encoding/gob"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/davronbekov/optika-orders/internal/middleware/authz"
)

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Type    string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

// AddFlash queues a message on the session.
func AddFlash(c echo.Context, kind, message string) {
	sess, _ := session.Get(authz.SessionName, c)
	if sess == nil {
		return
	}
	sess.AddFlash(FlashMessage{Type: kind, Message: message})
	_ = sess.Save(c.Request(), c.Response())
}

// GetFlash pops every queued message.
func GetFlash(c echo.Context) []FlashMessage {
	sess, _ := session.Get(authz.SessionName, c)
	if sess == nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(FlashMessage); ok {
			out = append(out, fm)
		}
	}
	return out
}
