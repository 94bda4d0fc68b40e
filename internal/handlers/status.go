package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/middleware"
	"github.com/freddyb/standup/internal/view"
)

// StatusHandler serves the server-rendered status pages: the index, the
// weekly view, and the per-team/per-project/per-user feeds.
type StatusHandler struct {
	shell    *view.Shell
	teams    domain.TeamRepository
	projects domain.ProjectRepository
	statuses domain.StatusRepository
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(shell *view.Shell, teams domain.TeamRepository, projects domain.ProjectRepository, statuses domain.StatusRepository) *StatusHandler {
	return &StatusHandler{shell: shell, teams: teams, projects: projects, statuses: statuses}
}

const recentStatusLimit = 50

// shellContext assembles the navigation context every page shares.
func (h *StatusHandler) shellContext(c echo.Context, title string) (view.Context, error) {
	teams, err := h.teams.List(c.Request().Context())
	if err != nil {
		return view.Context{}, err
	}
	projects, err := h.projects.List(c.Request().Context())
	if err != nil {
		return view.Context{}, err
	}

	return view.Context{
		Title:             title,
		Teams:             teams,
		Projects:          projects,
		Weeks:             domain.RecentWeeks(time.Now(), 6),
		User:              middleware.Viewer(c),
		Messages:          view.FlashMessages(c),
		BackendAssociated: middleware.GithubLinked(c),
	}, nil
}

func (h *StatusHandler) renderFeed(c echo.Context, ctx view.Context, statuses []domain.Status) error {
	ctx.Slots.Content = func() cmp.Node { return view.StatusList(statuses) }
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.shell.Render(c.Response(), ctx)
}

// IndexGet renders the front page with the most recent statuses.
func (h *StatusHandler) IndexGet(c echo.Context) error {
	ctx, err := h.shellContext(c, "")
	if err != nil {
		return err
	}
	statuses, err := h.statuses.Recent(c.Request().Context(), recentStatusLimit)
	if err != nil {
		return err
	}
	return h.renderFeed(c, ctx, statuses)
}

// WeeklyGet renders the statuses for the week named by the "week" query
// parameter (the week's start date), defaulting to the current week. A
// malformed date surfaces as a FormatError.
func (h *StatusHandler) WeeklyGet(c echo.Context) error {
	week := domain.NewWeek(time.Now())
	if param := c.QueryParam("week"); param != "" {
		start, err := time.Parse("2006-01-02", param)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				(&domain.FormatError{Field: "week", Value: param, Err: err}).Error())
		}
		week = domain.NewWeek(start)
	}

	label, err := week.Label()
	if err != nil {
		return err
	}
	ctx, err := h.shellContext(c, "Week of "+label)
	if err != nil {
		return err
	}

	start, end, err := week.Range()
	if err != nil {
		return err
	}
	statuses, err := h.statuses.ByWeek(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return h.renderFeed(c, ctx, statuses)
}

// TeamGet renders a team's feed: the recent statuses of the team's projects.
func (h *StatusHandler) TeamGet(c echo.Context) error {
	slug := c.Param("slug")
	team, err := h.teams.FindBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such team")
		}
		return err
	}

	ctx, err := h.shellContext(c, team.Name)
	if err != nil {
		return err
	}
	ctx.Selected = view.SelectedTeam(team.Slug)

	var statuses []domain.Status
	for _, project := range ctx.Projects {
		if project.Team != team.Slug {
			continue
		}
		ps, err := h.statuses.ByProject(c.Request().Context(), project.Slug, recentStatusLimit)
		if err != nil {
			return err
		}
		statuses = append(statuses, ps...)
	}
	// Each per-project query is newest-first, but the concatenation isn't.
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})
	return h.renderFeed(c, ctx, statuses)
}

// ProjectGet renders a project's feed.
func (h *StatusHandler) ProjectGet(c echo.Context) error {
	slug := c.Param("slug")
	project, err := h.projects.FindBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such project")
		}
		return err
	}

	ctx, err := h.shellContext(c, project.Name)
	if err != nil {
		return err
	}
	ctx.Selected = view.SelectedProject(project.Slug)

	statuses, err := h.statuses.ByProject(c.Request().Context(), project.Slug, recentStatusLimit)
	if err != nil {
		return err
	}
	return h.renderFeed(c, ctx, statuses)
}

// UserGet renders the feed of one user's updates.
func (h *StatusHandler) UserGet(c echo.Context) error {
	username := c.Param("username")
	ctx, err := h.shellContext(c, username)
	if err != nil {
		return err
	}
	statuses, err := h.statuses.ByUser(c.Request().Context(), username, recentStatusLimit)
	if err != nil {
		return err
	}
	return h.renderFeed(c, ctx, statuses)
}
