package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/freddyb/standup/internal/domain"
)

// SurrealProjectStore encapsulates database operations for projects using SurrealDB.
type SurrealProjectStore struct {
	db *surrealdb.DB
}

// NewSurrealProjectStore creates a new SurrealProjectStore.
func NewSurrealProjectStore(db *surrealdb.DB) *SurrealProjectStore {
	return &SurrealProjectStore{db: db}
}

// List returns all projects in display order.
func (s *SurrealProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := Query[domain.Project](ctx, s.db, "SELECT * FROM project ORDER BY name", nil)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return projects, nil
}

// FindBySlug queries for a single project by its slug.
func (s *SurrealProjectStore) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	project, err := QueryOne[domain.Project](ctx, s.db, "SELECT * FROM project WHERE slug = $slug", map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

// Create persists a new project. The status API auto-creates projects the
// first time a status references them.
func (s *SurrealProjectStore) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	created, err := QueryOne[domain.Project](ctx, s.db,
		"CREATE project SET slug = $slug, name = $name, repoUrl = $repoUrl, team = $team",
		map[string]any{
			"slug":    project.Slug,
			"name":    project.Name,
			"repoUrl": project.RepoURL,
			"team":    project.Team,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}
