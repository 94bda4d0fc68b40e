package view

import (
	"io"
	"strings"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/freddyb/standup/internal/assets"
	"github.com/freddyb/standup/internal/config"
	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/identity"
	"github.com/freddyb/standup/internal/routing"
)

// Viewer is the request-scoped view of the signed-in user. Only
// Authenticated gates the user-menu branch; the other fields feed the menu's
// contents once that branch is taken.
type Viewer struct {
	Authenticated bool
	Username      string
	GravatarHash  string
}

// Message is a transient notice shown at the top of the page. Tags become
// class-name suffixes controlling the notice's styling, joined in insertion
// order.
type Message struct {
	Text string
	Tags []string
}

func (m Message) class() string {
	cls := "notice"
	if joined := strings.Join(m.Tags, " "); joined != "" {
		cls += " " + joined
	}
	return cls
}

// SelectedRef names the navigation entry to highlight. The zero value
// selects nothing. Comparison is by kind plus slug, never object identity,
// so it survives serialization boundaries.
type SelectedRef struct {
	Kind string // "team" or "project"
	Slug string
}

// SelectedTeam marks the team with the given slug as the current one.
func SelectedTeam(slug string) SelectedRef { return SelectedRef{Kind: "team", Slug: slug} }

// SelectedProject marks the project with the given slug as the current one.
func SelectedProject(slug string) SelectedRef { return SelectedRef{Kind: "project", Slug: slug} }

// Slots are the caller-overridable regions of the page. A nil slot renders
// nothing, except BeforeContent whose default is the status composer for
// authenticated viewers.
type Slots struct {
	Notices       func() cmp.Node
	BeforeContent func() cmp.Node
	Content       func() cmp.Node
	AfterContent  func() cmp.Node
	MoreStyles    func() cmp.Node
	AtomFeed      func() cmp.Node
}

// Context carries everything one render needs. All fields are read-only,
// request-scoped view data supplied by the handler; the shell neither
// creates, mutates nor persists any of them.
type Context struct {
	Title    string
	Teams    []domain.Team
	Projects []domain.Project
	Weeks    []domain.Week
	Selected SelectedRef
	User     Viewer
	Messages []Message
	// BackendAssociated is false when the signed-in account has not been
	// linked to a GitHub identity yet.
	BackendAssociated bool
	Slots             Slots
}

// Shell composes full HTML documents from the fixed page chrome and a
// caller-supplied content fragment. It holds no per-request state, so one
// Shell serves concurrent renders.
type Shell struct {
	siteTitle string
	faqURL    string
	urls      *routing.Resolver
	assets    *assets.Pipeline
	identity  identity.Provider
}

// NewShell creates the process-wide page shell renderer.
func NewShell(cfg *config.Config, urls *routing.Resolver, pipeline *assets.Pipeline, idp identity.Provider) *Shell {
	return &Shell{
		siteTitle: cfg.SiteTitle,
		faqURL:    cfg.HelpFAQURL,
		urls:      urls,
		assets:    pipeline,
		identity:  idp,
	}
}

// Render writes the complete document for ctx to w.
func (s *Shell) Render(w io.Writer, ctx Context) error {
	page, err := s.Page(ctx)
	if err != nil {
		return err
	}
	return page.Render(w)
}

// Page builds the document node for ctx. Route and asset resolution happens
// here, eagerly, so a ResolutionError aborts the render before any output is
// written.
func (s *Shell) Page(ctx Context) (cmp.Node, error) {
	head, err := s.head(ctx)
	if err != nil {
		return nil, err
	}
	header, err := s.header(ctx)
	if err != nil {
		return nil, err
	}
	notices, err := s.notices(ctx)
	if err != nil {
		return nil, err
	}
	before, err := s.beforeContent(ctx)
	if err != nil {
		return nil, err
	}
	footer, err := s.footer()
	if err != nil {
		return nil, err
	}

	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			head,
			g.Body(
				header,
				g.Div(
					g.Class("container"),
					notices,
					before,
					slot(ctx.Slots.Content),
					slot(ctx.Slots.AfterContent),
				),
				footer,
			),
		),
	), nil
}

func (s *Shell) title(ctx Context) string {
	if ctx.Title != "" {
		return ctx.Title + " - " + s.siteTitle
	}
	return s.siteTitle
}

func (s *Shell) head(ctx Context) (cmp.Node, error) {
	styles, err := s.assets.Stylesheet("common")
	if err != nil {
		return nil, err
	}
	return g.Head(
		g.Meta(g.Charset("utf-8")),
		g.TitleEl(cmp.Text(s.title(ctx))),
		cmp.Map(styles, func(href string) cmp.Node {
			return g.Link(g.Rel("stylesheet"), g.Href(href))
		}),
		slot(ctx.Slots.MoreStyles),
		slot(ctx.Slots.AtomFeed),
		AdaptTemplToGomponent(s.identity.ScriptInclude()),
	), nil
}

// header renders the masthead: site title, the navigation dropdowns for any
// non-empty sequence, and the user menu or sign-in link.
func (s *Shell) header(ctx Context) (cmp.Node, error) {
	indexURL, err := s.urls.Reverse("status.index")
	if err != nil {
		return nil, err
	}

	var nav []cmp.Node
	if len(ctx.Teams) > 0 {
		items, err := s.teamItems(ctx)
		if err != nil {
			return nil, err
		}
		nav = append(nav, dropdown("Teams", items))
	}
	if len(ctx.Projects) > 0 {
		items, err := s.projectItems(ctx)
		if err != nil {
			return nil, err
		}
		nav = append(nav, dropdown("Projects", items))
	}
	if len(ctx.Weeks) > 0 {
		items, err := s.weekItems(ctx)
		if err != nil {
			return nil, err
		}
		nav = append(nav, dropdown("Weeks", items))
	}

	userMenu, err := s.userMenu(ctx)
	if err != nil {
		return nil, err
	}

	return g.Header(
		g.Class("masthead"),
		g.H1(g.A(g.Href(indexURL), cmp.Text(s.siteTitle))),
		g.Nav(g.Ul(g.Class("nav"), cmp.Group(nav))),
		userMenu,
	), nil
}

func (s *Shell) teamItems(ctx Context) ([]cmp.Node, error) {
	items := make([]cmp.Node, 0, len(ctx.Teams))
	for _, team := range ctx.Teams {
		href, err := s.urls.Reverse("status.team", team.Slug)
		if err != nil {
			return nil, err
		}
		items = append(items, navItem(href, team.Name, ctx.Selected == SelectedTeam(team.Slug)))
	}
	return items, nil
}

func (s *Shell) projectItems(ctx Context) ([]cmp.Node, error) {
	items := make([]cmp.Node, 0, len(ctx.Projects))
	for _, project := range ctx.Projects {
		href, err := s.urls.Reverse("status.project", project.Slug)
		if err != nil {
			return nil, err
		}
		items = append(items, navItem(href, project.Name, ctx.Selected == SelectedProject(project.Slug)))
	}
	return items, nil
}

func (s *Shell) weekItems(ctx Context) ([]cmp.Node, error) {
	items := make([]cmp.Node, 0, len(ctx.Weeks))
	for _, week := range ctx.Weeks {
		label, err := week.Label()
		if err != nil {
			return nil, err
		}
		param, err := week.Param()
		if err != nil {
			return nil, err
		}
		href, err := s.urls.ReverseQuery("status.weekly", "week", param)
		if err != nil {
			return nil, err
		}
		items = append(items, navItem(href, label, false))
	}
	return items, nil
}

// userMenu renders the authenticated-user menu or the sign-in link. The
// branch is gated solely on Authenticated.
func (s *Shell) userMenu(ctx Context) (cmp.Node, error) {
	if !ctx.User.Authenticated {
		loginURL, err := s.urls.Reverse("users.login")
		if err != nil {
			return nil, err
		}
		return g.Div(
			g.Class("user-nav"),
			g.A(g.Class("signin"), g.Href(loginURL), cmp.Text("Sign in")),
		), nil
	}

	profileURL, err := s.urls.Reverse("users.profile")
	if err != nil {
		return nil, err
	}
	return g.Div(
		g.Class("user-nav authenticated"),
		Gravatar(ctx.User.GravatarHash, 24),
		g.A(g.Href(profileURL), cmp.Text("Profile")),
		AdaptTemplToGomponent(s.identity.LogoutControl()),
	), nil
}

// notices renders, in order: the account-linking warning, one notice per
// message, then the caller's Notices slot.
func (s *Shell) notices(ctx Context) (cmp.Node, error) {
	var nodes []cmp.Node

	if ctx.User.Authenticated && !ctx.BackendAssociated {
		href, err := s.urls.Reverse("social:begin", "github")
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, g.Div(
			g.Class("notice warning association"),
			cmp.Text("Your account is not linked to GitHub yet. "),
			g.A(g.Href(href), cmp.Text("Link it now")),
			cmp.Text(" to keep your history when signing in."),
		))
	}

	for _, msg := range ctx.Messages {
		nodes = append(nodes, g.Div(g.Class(msg.class()), cmp.Text(msg.Text)))
	}

	nodes = append(nodes, slot(ctx.Slots.Notices))
	return cmp.Group(nodes), nil
}

// beforeContent returns the caller's slot, or the default status composer
// for authenticated viewers.
func (s *Shell) beforeContent(ctx Context) (cmp.Node, error) {
	if ctx.Slots.BeforeContent != nil {
		return ctx.Slots.BeforeContent(), nil
	}
	if !ctx.User.Authenticated {
		return nil, nil
	}
	postURL, err := s.urls.Reverse("status.create")
	if err != nil {
		return nil, err
	}
	return g.FormEl(
		g.Class("status-composer"),
		g.Action(postURL),
		g.Method("post"),
		hx.Post(postURL),
		hx.Target("#statuses"),
		hx.Swap("afterbegin"),
		g.Textarea(g.Name("content"), g.Placeholder("What are you working on?")),
		g.Button(g.Type("submit"), cmp.Text("Post")),
	), nil
}

func (s *Shell) footer() (cmp.Node, error) {
	scripts, err := s.assets.Javascript("common")
	if err != nil {
		return nil, err
	}
	return g.Footer(
		g.Class("footer"),
		g.P(g.A(g.Href(s.faqURL), cmp.Text("FAQ"))),
		cmp.Map(scripts, func(src string) cmp.Node {
			return g.Script(g.Src(src))
		}),
	), nil
}

func dropdown(label string, items []cmp.Node) cmp.Node {
	return g.Li(
		g.Class("dropdown"),
		g.A(g.Href("#"), cmp.Text(label)),
		g.Ul(g.Class("dropdown-menu"), cmp.Group(items)),
	)
}

func navItem(href, label string, selected bool) cmp.Node {
	return g.Li(
		cmp.If(selected, g.Class("selected")),
		g.A(g.Href(href), cmp.Text(label)),
	)
}

func slot(fn func() cmp.Node) cmp.Node {
	if fn == nil {
		return nil
	}
	return fn()
}
