package middleware

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/freddyb/standup/internal/view"
)

const (
	// AuthSessionName is the cookie session carrying the signed-in identity.
	AuthSessionName = "auth-session"

	viewerContextKey       = "viewer"
	githubLinkedContextKey = "github_linked"

	sessionKeyUsername     = "username"
	sessionKeyGravatar     = "gravatar_hash"
	sessionKeyGithubLinked = "github_linked"
)

// LoadViewer reads the auth session and stores the request's viewer in the
// echo context. It never rejects a request; anonymous viewers get the zero
// Viewer.
func LoadViewer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			viewer := view.Viewer{}
			linked := true

			sess, err := session.Get(AuthSessionName, c)
			if err == nil {
				if username, ok := sess.Values[sessionKeyUsername].(string); ok && username != "" {
					viewer.Authenticated = true
					viewer.Username = username
					viewer.GravatarHash, _ = sess.Values[sessionKeyGravatar].(string)
					linked, _ = sess.Values[sessionKeyGithubLinked].(bool)
				}
			}

			c.Set(viewerContextKey, viewer)
			c.Set(githubLinkedContextKey, linked)
			return next(c)
		}
	}
}

// RequireUser protects routes that need a signed-in user. It must run after
// LoadViewer.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Viewer(c).Authenticated {
				return c.Redirect(http.StatusSeeOther, "/login/")
			}
			return next(c)
		}
	}
}

// Viewer returns the viewer LoadViewer stored for this request.
func Viewer(c echo.Context) view.Viewer {
	if viewer, ok := c.Get(viewerContextKey).(view.Viewer); ok {
		return viewer
	}
	return view.Viewer{}
}

// GithubLinked reports whether the signed-in account has a linked GitHub
// identity. Anonymous requests report true so no warning renders.
func GithubLinked(c echo.Context) bool {
	if linked, ok := c.Get(githubLinkedContextKey).(bool); ok {
		return linked
	}
	return true
}

// SignIn records the identity in the auth session.
func SignIn(c echo.Context, username, gravatarHash string, githubLinked bool) error {
	sess, err := session.Get(AuthSessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessionKeyUsername] = username
	sess.Values[sessionKeyGravatar] = gravatarHash
	sess.Values[sessionKeyGithubLinked] = githubLinked
	return sess.Save(c.Request(), c.Response())
}

// SignOut clears the auth session.
func SignOut(c echo.Context) error {
	sess, err := session.Get(AuthSessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	sess.Values = make(map[any]any)
	return sess.Save(c.Request(), c.Response())
}
