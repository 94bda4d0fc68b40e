package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyInfo     = "info"
)

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, _ := session.Get(flashSessionName, c)
	sess.AddFlash(message, key)
	sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFlashInfo sets an informational flash message.
func SetFlashInfo(c echo.Context, message string) {
	setFlash(c, flashKeyInfo, message)
}

// FlashMessages retrieves and clears flash messages from the session,
// already shaped as shell notices. The flash key becomes the notice tag, so
// a "success" flash renders with class "notice success".
func FlashMessages(c echo.Context) []Message {
	sess, _ := session.Get(flashSessionName, c)

	var messages []Message
	for _, key := range []string{flashKeySuccess, flashKeyError, flashKeyInfo} {
		for _, flash := range sess.Flashes(key) {
			text, ok := flash.(string)
			if !ok {
				continue
			}
			messages = append(messages, Message{Text: text, Tags: []string{key}})
		}
	}

	// Flashes() clears as it reads; persist the cleared state.
	if len(messages) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return messages
}
