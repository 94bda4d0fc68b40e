package identity

import (
	"fmt"

	"github.com/a-h/templ"
)

// Provider supplies the third-party sign-in widget. The markup is opaque to
// the page shell: the provider hands back templ components and the shell
// embeds them verbatim.
type Provider interface {
	// ScriptInclude is the widget's script tag, emitted once per page for
	// authenticated and anonymous users alike.
	ScriptInclude() templ.Component
	// LogoutControl is the element the widget watches to trigger sign-out.
	LogoutControl() templ.Component
}

// ScriptProvider is a Provider backed by a hosted widget script.
type ScriptProvider struct {
	ScriptURL string
}

// NewScriptProvider returns a provider for the given hosted widget.
func NewScriptProvider(scriptURL string) *ScriptProvider {
	return &ScriptProvider{ScriptURL: scriptURL}
}

func (p *ScriptProvider) ScriptInclude() templ.Component {
	return templ.Raw(fmt.Sprintf(`<script src="%s" async defer></script>`, p.ScriptURL))
}

func (p *ScriptProvider) LogoutControl() templ.Component {
	return templ.Raw(`<a href="#" id="signout" class="signout">Sign out</a>`)
}
