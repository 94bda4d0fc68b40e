package view_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"

	"github.com/freddyb/standup/internal/assets"
	"github.com/freddyb/standup/internal/config"
	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/identity"
	"github.com/freddyb/standup/internal/routing"
	"github.com/freddyb/standup/internal/view"
)

const testManifest = `{
	"assets": {
		"standup.css": "css/standup.abc123.css",
		"standup.js": "js/standup.abc123.js"
	},
	"css": {"common": ["standup.css"]},
	"js": {"common": ["standup.js"]}
}`

func newTestShell(t *testing.T) *view.Shell {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "manifest.json", []byte(testManifest), 0644))
	pipeline, err := assets.New(fs, "manifest.json", "/static")
	require.NoError(t, err)

	cfg := &config.Config{
		SiteTitle:  "standup",
		HelpFAQURL: "https://example.com/faq",
	}
	idp := identity.NewScriptProvider("https://widget.example.com/include.js")
	return view.NewShell(cfg, routing.NewResolver(), pipeline, idp)
}

func render(t *testing.T, shell *view.Shell, ctx view.Context) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, shell.Render(&sb, ctx))
	return sb.String()
}

func TestShellEmptyContext(t *testing.T) {
	shell := newTestShell(t)

	html := render(t, shell, view.Context{})

	assert.NotContains(t, html, "dropdown", "no dropdown menus without nav data")
	assert.Contains(t, html, `<a class="signin" href="/login/">Sign in</a>`)
	assert.NotContains(t, html, "user-nav authenticated")
	assert.NotContains(t, html, "status-composer", "composer only shows for authenticated viewers")
}

func TestShellTitle(t *testing.T) {
	shell := newTestShell(t)

	t.Run("falls back to the site title", func(t *testing.T) {
		html := render(t, shell, view.Context{})
		assert.Contains(t, html, "<title>standup</title>")
	})

	t.Run("prefixes the page title", func(t *testing.T) {
		html := render(t, shell, view.Context{Title: "Weekly"})
		assert.Contains(t, html, "<title>Weekly - standup</title>")
	})
}

func TestShellNavigationOrder(t *testing.T) {
	shell := newTestShell(t)

	teams := []domain.Team{
		{Slug: "zeta", Name: "Zeta"},
		{Slug: "alpha", Name: "Alpha"},
		{Slug: "mid", Name: "Mid"},
	}
	html := render(t, shell, view.Context{Teams: teams})

	// Rendered order must be input order, not alphabetical.
	zeta := strings.Index(html, ">Zeta<")
	alpha := strings.Index(html, ">Alpha<")
	mid := strings.Index(html, ">Mid<")
	require.NotEqual(t, -1, zeta)
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, mid)
	assert.Less(t, zeta, alpha)
	assert.Less(t, alpha, mid)

	assert.Contains(t, html, `href="/team/zeta/"`)
}

func TestShellSelectedMarker(t *testing.T) {
	shell := newTestShell(t)

	ctx := view.Context{
		Teams: []domain.Team{
			{Slug: "websites", Name: "Websites"},
			{Slug: "platform", Name: "Platform"},
		},
		Projects: []domain.Project{
			// Same slug as a team; only the project may be selected.
			{Slug: "platform", Name: "Platform the Project"},
		},
	}

	t.Run("marks exactly the matching project", func(t *testing.T) {
		ctx := ctx
		ctx.Selected = view.SelectedProject("platform")
		html := render(t, shell, ctx)
		assert.Equal(t, 1, strings.Count(html, `class="selected"`))

		selected := strings.Index(html, `class="selected"`)
		project := strings.Index(html, "Platform the Project")
		assert.Less(t, selected, project)
		assert.Greater(t, project-selected, 0)
	})

	t.Run("no marker when nothing matches", func(t *testing.T) {
		ctx := ctx
		ctx.Selected = view.SelectedTeam("nonexistent")
		html := render(t, shell, ctx)
		assert.NotContains(t, html, `class="selected"`)
	})

	t.Run("no marker for the zero value", func(t *testing.T) {
		html := render(t, shell, ctx)
		assert.NotContains(t, html, `class="selected"`)
	})
}

func TestShellWeekLinks(t *testing.T) {
	shell := newTestShell(t)

	html := render(t, shell, view.Context{
		Weeks: []domain.Week{{Start: "2024-01-01", End: "2024-01-07"}},
	})

	assert.Contains(t, html, ">Jan 01 to Jan 07 2024<")
	assert.Contains(t, html, `href="/week/?week=2024-01-01"`)
}

func TestShellWeekFormatError(t *testing.T) {
	shell := newTestShell(t)

	err := shell.Render(&strings.Builder{}, view.Context{
		Weeks: []domain.Week{{Start: "garbage", End: "2024-01-07"}},
	})

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "start_date", formatErr.Field)
}

func TestShellUserMenu(t *testing.T) {
	shell := newTestShell(t)

	t.Run("unauthenticated ignores other fields", func(t *testing.T) {
		html := render(t, shell, view.Context{
			User: view.Viewer{Authenticated: false, Username: "rick", GravatarHash: "deadbeef"},
		})
		assert.Contains(t, html, "Sign in")
		assert.NotContains(t, html, "user-nav authenticated")
		assert.NotContains(t, html, "deadbeef")
	})

	t.Run("authenticated shows menu and avatar", func(t *testing.T) {
		html := render(t, shell, view.Context{
			User: view.Viewer{Authenticated: true, Username: "rick", GravatarHash: "deadbeef"},
			// Linked account, no warning expected.
			BackendAssociated: true,
		})
		assert.NotContains(t, html, `class="signin"`)
		assert.Contains(t, html, "user-nav authenticated")
		assert.Contains(t, html, "https://secure.gravatar.com/avatar/deadbeef?s=24")
		assert.Contains(t, html, `href="/profile/"`)
		assert.Contains(t, html, `id="signout"`)
	})
}

func TestShellNotices(t *testing.T) {
	shell := newTestShell(t)

	t.Run("one notice per message, in order, with tag classes", func(t *testing.T) {
		html := render(t, shell, view.Context{
			Messages: []view.Message{
				{Text: "first", Tags: []string{"error", "api"}},
				{Text: "second", Tags: []string{"success"}},
				{Text: "third"},
			},
		})

		assert.Equal(t, 3, strings.Count(html, `class="notice`))
		assert.Contains(t, html, `<div class="notice error api">first</div>`)
		assert.Contains(t, html, `<div class="notice success">second</div>`)
		assert.Contains(t, html, `<div class="notice">third</div>`)
		assert.Less(t, strings.Index(html, ">first<"), strings.Index(html, ">second<"))
		assert.Less(t, strings.Index(html, ">second<"), strings.Index(html, ">third<"))
	})

	t.Run("no messages renders no notices", func(t *testing.T) {
		html := render(t, shell, view.Context{})
		assert.NotContains(t, html, `class="notice`)
	})
}

func TestShellAssociationWarning(t *testing.T) {
	shell := newTestShell(t)

	t.Run("shown for authenticated unlinked accounts", func(t *testing.T) {
		html := render(t, shell, view.Context{
			User:              view.Viewer{Authenticated: true},
			BackendAssociated: false,
		})
		assert.Equal(t, 1, strings.Count(html, "notice warning association"))
		assert.Contains(t, html, `href="/social/login/github/"`)
	})

	t.Run("hidden when linked", func(t *testing.T) {
		html := render(t, shell, view.Context{
			User:              view.Viewer{Authenticated: true},
			BackendAssociated: true,
		})
		assert.NotContains(t, html, "notice warning association")
	})

	t.Run("hidden for anonymous viewers", func(t *testing.T) {
		html := render(t, shell, view.Context{BackendAssociated: false})
		assert.NotContains(t, html, "notice warning association")
	})
}

func TestShellCompositionOrder(t *testing.T) {
	shell := newTestShell(t)

	html := render(t, shell, view.Context{
		Messages: []view.Message{{Text: "the-notice"}},
		User:     view.Viewer{Authenticated: true, GravatarHash: "deadbeef"},
		// Linked so the only notice is the message.
		BackendAssociated: true,
		Slots: view.Slots{
			Content:      textSlot("the-content"),
			AfterContent: textSlot("the-after"),
		},
	})

	notice := strings.Index(html, "the-notice")
	composer := strings.Index(html, "status-composer")
	content := strings.Index(html, "the-content")
	after := strings.Index(html, "the-after")
	require.NotEqual(t, -1, notice)
	require.NotEqual(t, -1, composer)
	require.NotEqual(t, -1, content)
	require.NotEqual(t, -1, after)
	assert.Less(t, notice, composer)
	assert.Less(t, composer, content)
	assert.Less(t, content, after)
}

func TestShellSlotOverrides(t *testing.T) {
	shell := newTestShell(t)

	t.Run("before_content override replaces the composer", func(t *testing.T) {
		html := render(t, shell, view.Context{
			User:              view.Viewer{Authenticated: true},
			BackendAssociated: true,
			Slots:             view.Slots{BeforeContent: textSlot("custom-before")},
		})
		assert.Contains(t, html, "custom-before")
		assert.NotContains(t, html, "status-composer")
	})

	t.Run("head slots render inside head", func(t *testing.T) {
		html := render(t, shell, view.Context{
			Slots: view.Slots{
				MoreStyles: textSlot("extra-style"),
				AtomFeed:   textSlot("atom-link"),
			},
		})
		head := html[:strings.Index(html, "</head>")]
		assert.Contains(t, head, "extra-style")
		assert.Contains(t, head, "atom-link")
	})
}

func TestShellChrome(t *testing.T) {
	shell := newTestShell(t)

	html := render(t, shell, view.Context{})

	assert.Contains(t, html, `<link rel="stylesheet" href="/static/css/standup.abc123.css">`)
	assert.Contains(t, html, `<script src="/static/js/standup.abc123.js">`)
	assert.Contains(t, html, `https://widget.example.com/include.js`)
	assert.Contains(t, html, `href="https://example.com/faq"`)
}

func textSlot(s string) func() cmp.Node {
	return func() cmp.Node { return cmp.Text(s) }
}
