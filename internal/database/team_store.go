package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/freddyb/standup/internal/domain"
)

// SurrealTeamStore encapsulates database operations for teams using SurrealDB.
type SurrealTeamStore struct {
	db *surrealdb.DB
}

// NewSurrealTeamStore creates a new SurrealTeamStore.
func NewSurrealTeamStore(db *surrealdb.DB) *SurrealTeamStore {
	return &SurrealTeamStore{db: db}
}

// List returns all teams in display order.
func (s *SurrealTeamStore) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := Query[domain.Team](ctx, s.db, "SELECT * FROM team ORDER BY name", nil)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return teams, nil
}

// FindBySlug queries for a single team by its slug.
func (s *SurrealTeamStore) FindBySlug(ctx context.Context, slug string) (*domain.Team, error) {
	team, err := QueryOne[domain.Team](ctx, s.db, "SELECT * FROM team WHERE slug = $slug", map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	return team, nil
}
