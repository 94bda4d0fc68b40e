package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/routing"
)

func TestReverse(t *testing.T) {
	r := routing.NewResolver()

	tests := []struct {
		name  string
		route string
		args  []string
		want  string
	}{
		{"index", "status.index", nil, "/"},
		{"weekly", "status.weekly", nil, "/week/"},
		{"team", "status.team", []string{"websites"}, "/team/websites/"},
		{"project", "status.project", []string{"sumodev"}, "/project/sumodev/"},
		{"login", "users.login", nil, "/login/"},
		{"social begin", "social:begin", []string{"github"}, "/social/login/github/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Reverse(tt.route, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReverseUnknownRoute(t *testing.T) {
	r := routing.NewResolver()

	_, err := r.Reverse("status.bogus")

	var resErr *domain.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "route", resErr.Kind)
	assert.Equal(t, "status.bogus", resErr.Name)
}

func TestReverseMissingArgument(t *testing.T) {
	r := routing.NewResolver()

	_, err := r.Reverse("status.team")
	assert.Error(t, err)
}

func TestReverseEscapesArguments(t *testing.T) {
	r := routing.NewResolver()

	got, err := r.Reverse("status.team", "a b")
	require.NoError(t, err)
	assert.Equal(t, "/team/a%20b/", got)
}

func TestReverseQuery(t *testing.T) {
	r := routing.NewResolver()

	got, err := r.ReverseQuery("status.weekly", "week", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "/week/?week=2024-01-01", got)
}
