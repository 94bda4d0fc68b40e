package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/middleware"
	"github.com/freddyb/standup/internal/view"
)

// AuthHandler handles sign-in and sign-out. The actual identity check is the
// identity widget's job; once the widget's flow completes, this handler
// records the verified identity in the session.
type AuthHandler struct {
	shell *view.Shell
	users domain.UserRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(shell *view.Shell, users domain.UserRepository) *AuthHandler {
	return &AuthHandler{shell: shell, users: users}
}

// LoginGet renders the sign-in page.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	ctx := view.Context{
		Title:    "Sign in",
		User:     middleware.Viewer(c),
		Messages: view.FlashMessages(c),
		Slots: view.Slots{
			Content: func() cmp.Node {
				return g.FormEl(
					g.Class("login-form"),
					g.Action("/login/"),
					g.Method("post"),
					g.LabelEl(g.For("username"), cmp.Text("Username")),
					g.Input(g.Type("text"), g.ID("username"), g.Name("username"), g.Required()),
					g.LabelEl(g.For("email"), cmp.Text("Email")),
					g.Input(g.Type("email"), g.ID("email"), g.Name("email"), g.Required()),
					g.Button(g.Type("submit"), cmp.Text("Sign in")),
				)
			},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.shell.Render(c.Response(), ctx)
}

// LoginPost completes the identity widget's flow: it trusts the verified
// email, finds or creates the matching user, and signs the session in.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	if username == "" || email == "" {
		view.SetFlashError(c, "Username and email are required.")
		return c.Redirect(http.StatusSeeOther, "/login/")
	}

	user, err := h.users.FindByUsername(c.Request().Context(), username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		user, err = h.users.Create(c.Request().Context(), &domain.User{
			Username:     username,
			Email:        email,
			GravatarHash: view.EmailHash(email),
		})
		if err != nil {
			return err
		}
	}
	if user == nil {
		user = &domain.User{Username: username, Email: email, GravatarHash: view.EmailHash(email)}
	}

	if err := middleware.SignIn(c, user.Username, user.GravatarHash, user.GithubLinked); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "Signed in as "+user.Username+".")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session and returns to the front page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := middleware.SignOut(c); err != nil {
		return err
	}
	view.SetFlashInfo(c, "Signed out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// LinkGithub marks the signed-in account as associated with a GitHub
// identity. The OAuth dance itself happens at the provider; this records the
// outcome.
func (h *AuthHandler) LinkGithub(c echo.Context) error {
	viewer := middleware.Viewer(c)
	if !viewer.Authenticated {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	if err := h.users.SetGithubLinked(c.Request().Context(), viewer.Username, true); err != nil {
		return err
	}
	if err := middleware.SignIn(c, viewer.Username, viewer.GravatarHash, true); err != nil {
		return err
	}
	view.SetFlashSuccess(c, "GitHub account linked.")
	return c.Redirect(http.StatusSeeOther, "/")
}
