package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/freddyb/standup/internal/view"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sessionMiddleware := session.Middleware(store)

	// Wrap a dummy handler so the session is properly initialized in the
	// context.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	sessionMiddleware(handler)(e.NewContext(req, rec))

	return c, rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("flashes surface as tagged notices", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashSuccess(c, "It worked!")
		view.SetFlashError(c, "It failed!")

		messages := view.FlashMessages(c)
		assert.Len(t, messages, 2)
		assert.Equal(t, view.Message{Text: "It worked!", Tags: []string{"success"}}, messages[0])
		assert.Equal(t, view.Message{Text: "It failed!", Tags: []string{"error"}}, messages[1])

		// Reading clears.
		assert.Empty(t, view.FlashMessages(c))
	})

	t.Run("info flash carries the info tag", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashInfo(c, "Signed out.")

		messages := view.FlashMessages(c)
		assert.Len(t, messages, 1)
		assert.Equal(t, []string{"info"}, messages[0].Tags)
	})

	t.Run("no flashes set", func(t *testing.T) {
		c, _ := setupTestContext()
		assert.Empty(t, view.FlashMessages(c))
	})
}
