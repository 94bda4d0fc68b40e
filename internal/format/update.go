package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/freddyb/standup/internal/domain"
)

// Update formatting turns the plain-text content of a status into HTML:
// "#word" becomes a styled tag span, "bug NNN" links to Bugzilla and
// "pull NNN" / "pr NNN" link to the project's pull requests. The input is
// escaped first, so formatted output is safe to emit as raw HTML.

const tagTemplate = `<span class="tag tag-%s">#%s</span>`

var (
	tagRe  = regexp.MustCompile(`(?:^|\s)#([a-zA-Z][a-zA-Z0-9_.-]*)`)
	bugRe  = regexp.MustCompile(`(?i)\b(bug)\s*#?(\d+)\b`)
	pullRe = regexp.MustCompile(`(?i)\b(pull|pr)\s*#?(\d+)\b`)
)

// Formatter renders status content. The Bugzilla base URL is configurable so
// deployments outside Mozilla can point bug references elsewhere.
type Formatter struct {
	BugzillaURL string
}

// NewFormatter returns a Formatter with the default bug tracker.
func NewFormatter() *Formatter {
	return &Formatter{BugzillaURL: "https://bugzilla.mozilla.org/show_bug.cgi?id="}
}

// Update formats status content against its project. The project may be nil,
// in which case pull-request references stay plain text.
func (f *Formatter) Update(content string, project *domain.Project) string {
	formatted := html.EscapeString(content)

	formatted = bugRe.ReplaceAllStringFunc(formatted, func(match string) string {
		sub := bugRe.FindStringSubmatch(match)
		return fmt.Sprintf(`<a href="%s%s">%s %s</a>`, f.BugzillaURL, sub[2], sub[1], sub[2])
	})

	if project != nil && project.RepoURL != "" {
		repo := strings.TrimSuffix(project.RepoURL, "/")
		formatted = pullRe.ReplaceAllStringFunc(formatted, func(match string) string {
			sub := pullRe.FindStringSubmatch(match)
			return fmt.Sprintf(`<a href="%s/pull/%s">%s %s</a>`, repo, sub[2], sub[1], sub[2])
		})
	}

	formatted = tagRe.ReplaceAllStringFunc(formatted, func(match string) string {
		sub := tagRe.FindStringSubmatch(match)
		prefix := strings.TrimSuffix(match, "#"+sub[1])
		return prefix + fmt.Sprintf(tagTemplate, strings.ToLower(sub[1]), sub[1])
	})

	return formatted
}

// Tags extracts the lowercased tag names referenced in content, in order of
// first appearance.
func Tags(content string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, sub := range tagRe.FindAllStringSubmatch(content, -1) {
		tag := strings.ToLower(sub[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
