package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/freddyb/standup/internal/domain"
)

// StatusItem renders one standup update. ContentHTML is pre-formatted and
// escaped by the format package, so it is emitted raw.
func StatusItem(status domain.Status) cmp.Node {
	return g.Li(
		g.Class("status"),
		g.ID("status-"+status.UUID),
		g.Div(
			g.Class("status-meta"),
			g.Span(g.Class("status-user"), cmp.Text(status.Username)),
			g.Span(g.Class("status-project"), cmp.Text(status.ProjectSlug)),
			cmp.El("time",
				cmp.Attr("datetime", status.Created.Format("2006-01-02T15:04:05Z07:00")),
				cmp.Text(status.Created.Format("Jan 02 2006 15:04")),
			),
		),
		g.Div(g.Class("status-content"), cmp.Raw(status.ContentHTML)),
	)
}

// StatusList renders updates newest first, with a friendly empty state.
func StatusList(statuses []domain.Status) cmp.Node {
	if len(statuses) == 0 {
		return g.P(g.Class("empty"), cmp.Text("No status updates yet."))
	}
	return g.Ul(
		g.ID("statuses"),
		g.Class("statuses"),
		cmp.Map(statuses, StatusItem),
	)
}
