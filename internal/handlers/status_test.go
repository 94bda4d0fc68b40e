package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddyb/standup/internal/assets"
	"github.com/freddyb/standup/internal/config"
	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/handlers"
	"github.com/freddyb/standup/internal/identity"
	"github.com/freddyb/standup/internal/middleware"
	"github.com/freddyb/standup/internal/routing"
	"github.com/freddyb/standup/internal/view"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

const testShellManifest = `{
	"assets": {"standup.css": "css/standup.css", "standup.js": "js/standup.js"},
	"css": {"common": ["standup.css"]},
	"js": {"common": ["standup.js"]}
}`

func newTestShell(t *testing.T) *view.Shell {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "manifest.json", []byte(testShellManifest), 0644))
	pipeline, err := assets.New(fs, "manifest.json", "/static")
	require.NoError(t, err)

	cfg := &config.Config{SiteTitle: "standup", HelpFAQURL: "https://example.com/faq"}
	idp := identity.NewScriptProvider("https://widget.example.com/include.js")
	return view.NewShell(cfg, routing.NewResolver(), pipeline, idp)
}

// MockTeamStore provides a mock implementation of the TeamRepository.
type MockTeamStore struct {
	teams []domain.Team
}

func (m *MockTeamStore) List(ctx context.Context) ([]domain.Team, error) {
	return m.teams, nil
}

func (m *MockTeamStore) FindBySlug(ctx context.Context, slug string) (*domain.Team, error) {
	for i := range m.teams {
		if m.teams[i].Slug == slug {
			return &m.teams[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func setupStatusTest(t *testing.T, teams []domain.Team, projects []domain.Project, statuses []domain.Status) *echo.Echo {
	t.Helper()

	e := echo.New()
	store := sessions.NewCookieStore([]byte(testSessionSecret))
	e.Use(session.Middleware(store))
	e.Use(middleware.LoadViewer())

	projectStore := NewMockProjectStore()
	for i := range projects {
		project := projects[i]
		projectStore.projects[project.Slug] = &project
	}
	statusStore := &MockStatusStore{created: statuses}

	handler := handlers.NewStatusHandler(newTestShell(t), &MockTeamStore{teams: teams}, projectStore, statusStore)
	e.GET("/", handler.IndexGet)
	e.GET("/week/", handler.WeeklyGet)
	e.GET("/team/:slug/", handler.TeamGet)
	e.GET("/project/:slug/", handler.ProjectGet)
	e.GET("/user/:username/", handler.UserGet)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIndexGet(t *testing.T) {
	e := setupStatusTest(t,
		[]domain.Team{{Slug: "websites", Name: "Websites"}},
		[]domain.Project{{Slug: "sumodev", Name: "SUMO"}},
		[]domain.Status{{UUID: "u1", Username: "r1cky", ProjectSlug: "sumodev", ContentHTML: "did a thing"}},
	)

	rec := get(e, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>standup</title>")
	assert.Contains(t, body, ">Websites<")
	assert.Contains(t, body, ">SUMO<")
	assert.Contains(t, body, "did a thing")
	assert.Contains(t, body, "Sign in")
}

func TestWeeklyGet(t *testing.T) {
	t.Run("valid week", func(t *testing.T) {
		e := setupStatusTest(t, nil, nil, nil)
		rec := get(e, "/week/?week=2024-01-01")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Week of Jan 01 to Jan 07 2024")
	})

	t.Run("malformed week is a bad request", func(t *testing.T) {
		e := setupStatusTest(t, nil, nil, nil)
		rec := get(e, "/week/?week=not-a-date")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTeamGet(t *testing.T) {
	teams := []domain.Team{{Slug: "websites", Name: "Websites"}}
	projects := []domain.Project{{Slug: "sumodev", Name: "SUMO", Team: "websites"}}

	t.Run("marks the team selected", func(t *testing.T) {
		e := setupStatusTest(t, teams, projects, nil)
		rec := get(e, "/team/websites/")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 1, strings.Count(body, `class="selected"`))
		assert.Contains(t, body, "<title>Websites - standup</title>")
	})

	t.Run("unknown team is a 404", func(t *testing.T) {
		e := setupStatusTest(t, teams, projects, nil)
		rec := get(e, "/team/nope/")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("merges project feeds newest first", func(t *testing.T) {
		teamProjects := []domain.Project{
			{Slug: "sumodev", Name: "SUMO", Team: "websites"},
			{Slug: "kuma", Name: "Kuma", Team: "websites"},
		}
		now := time.Now()
		statuses := []domain.Status{
			{UUID: "s1", Username: "r1cky", ProjectSlug: "sumodev", ContentHTML: "older update", Created: now.Add(-time.Hour)},
			{UUID: "s2", Username: "willkg", ProjectSlug: "kuma", ContentHTML: "newer update", Created: now},
		}
		e := setupStatusTest(t, teams, teamProjects, statuses)

		rec := get(e, "/team/websites/")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		newer := strings.Index(body, "newer update")
		older := strings.Index(body, "older update")
		require.NotEqual(t, -1, newer)
		require.NotEqual(t, -1, older)
		assert.Less(t, newer, older, "newer status should render before the older one")
	})
}

func TestProjectGet(t *testing.T) {
	projects := []domain.Project{{Slug: "sumodev", Name: "SUMO"}}

	t.Run("marks the project selected", func(t *testing.T) {
		e := setupStatusTest(t, nil, projects, nil)
		rec := get(e, "/project/sumodev/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, strings.Count(rec.Body.String(), `class="selected"`))
	})

	t.Run("unknown project is a 404", func(t *testing.T) {
		e := setupStatusTest(t, nil, projects, nil)
		rec := get(e, "/project/nope/")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
