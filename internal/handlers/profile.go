package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/middleware"
	"github.com/freddyb/standup/internal/view"
)

// ProfileHandler renders the signed-in user's own page.
type ProfileHandler struct {
	shell    *view.Shell
	statuses domain.StatusRepository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(shell *view.Shell, statuses domain.StatusRepository) *ProfileHandler {
	return &ProfileHandler{shell: shell, statuses: statuses}
}

// ProfileGet renders the viewer's profile with their recent updates. Routes
// using it must be protected by middleware.RequireUser.
func (h *ProfileHandler) ProfileGet(c echo.Context) error {
	viewer := middleware.Viewer(c)

	statuses, err := h.statuses.ByUser(c.Request().Context(), viewer.Username, recentStatusLimit)
	if err != nil {
		return err
	}

	ctx := view.Context{
		Title:             "Profile",
		User:              viewer,
		Messages:          view.FlashMessages(c),
		BackendAssociated: middleware.GithubLinked(c),
		Slots: view.Slots{
			Content: func() cmp.Node {
				return g.Div(
					g.Class("profile"),
					g.H2(
						view.Gravatar(viewer.GravatarHash, 48),
						cmp.Text(" "+viewer.Username),
					),
					view.StatusList(statuses),
				)
			},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.shell.Render(c.Response(), ctx)
}
