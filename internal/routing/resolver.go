package routing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/freddyb/standup/internal/domain"
)

// Resolver maps named routes to URL paths. Handlers and the page shell never
// hard-code paths; they ask the resolver by name so a route can move without
// touching every template.
type Resolver struct {
	routes map[string]string
}

// NewResolver builds the application route table. Patterns use ":arg"
// segments filled positionally by Reverse.
func NewResolver() *Resolver {
	return &Resolver{routes: map[string]string{
		"status.index":   "/",
		"status.weekly":  "/week/",
		"status.team":    "/team/:slug/",
		"status.project": "/project/:slug/",
		"status.user":    "/user/:username/",
		"status.create":  "/api/v1/status/",
		"status.stream":  "/ws/statuses",
		"users.login":    "/login/",
		"users.logout":   "/logout/",
		"users.profile":  "/profile/",
		"social:begin":   "/social/login/:backend/",
	}}
}

// Reverse resolves a route name plus positional arguments to a URL path.
// Unknown names fail with a ResolutionError.
func (r *Resolver) Reverse(name string, args ...string) (string, error) {
	pattern, ok := r.routes[name]
	if !ok {
		return "", &domain.ResolutionError{Kind: "route", Name: name}
	}

	segments := strings.Split(pattern, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("route %q: missing argument for %s", name, seg)
		}
		segments[i] = url.PathEscape(args[next])
		next++
	}
	return strings.Join(segments, "/"), nil
}

// ReverseQuery resolves a route and appends a single query parameter.
func (r *Resolver) ReverseQuery(name, key, value string, args ...string) (string, error) {
	path, err := r.Reverse(name, args...)
	if err != nil {
		return "", err
	}
	return path + "?" + key + "=" + url.QueryEscape(value), nil
}
