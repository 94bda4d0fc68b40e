package database

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/freddyb/standup/internal/domain"
)

// SurrealStatusStore encapsulates database operations for standup updates
// using SurrealDB.
type SurrealStatusStore struct {
	db *surrealdb.DB
}

// NewSurrealStatusStore creates a new SurrealStatusStore.
func NewSurrealStatusStore(db *surrealdb.DB) *SurrealStatusStore {
	return &SurrealStatusStore{db: db}
}

// Create persists a new status.
func (s *SurrealStatusStore) Create(ctx context.Context, status *domain.Status) (*domain.Status, error) {
	created, err := QueryOne[domain.Status](ctx, s.db,
		`CREATE status SET uuid = $uuid, username = $username, projectSlug = $projectSlug,
			content = $content, contentHtml = $contentHtml, created = $created`,
		map[string]any{
			"uuid":        status.UUID,
			"username":    status.Username,
			"projectSlug": status.ProjectSlug,
			"content":     status.Content,
			"contentHtml": status.ContentHTML,
			"created":     status.Created,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return created, nil
}

// FindByUUID queries for a single status by its public id.
func (s *SurrealStatusStore) FindByUUID(ctx context.Context, uuid string) (*domain.Status, error) {
	status, err := QueryOne[domain.Status](ctx, s.db,
		"SELECT * FROM status WHERE uuid = $uuid",
		map[string]any{"uuid": uuid})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if status == nil {
		return nil, domain.ErrNotFound
	}
	return status, nil
}

// Delete removes a status by its public id.
func (s *SurrealStatusStore) Delete(ctx context.Context, uuid string) error {
	return Execute(ctx, s.db,
		"DELETE FROM status WHERE uuid = $uuid",
		map[string]any{"uuid": uuid})
}

// Recent returns the latest statuses, newest first.
func (s *SurrealStatusStore) Recent(ctx context.Context, limit int) ([]domain.Status, error) {
	statuses, err := Query[domain.Status](ctx, s.db,
		"SELECT * FROM status ORDER BY created DESC LIMIT $limit",
		map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return statuses, nil
}

// ByWeek returns the statuses posted in [start, end], newest first.
func (s *SurrealStatusStore) ByWeek(ctx context.Context, start, end time.Time) ([]domain.Status, error) {
	statuses, err := Query[domain.Status](ctx, s.db,
		"SELECT * FROM status WHERE created >= $start AND created < $end ORDER BY created DESC",
		map[string]any{
			"start": start,
			// The week's end date is inclusive; query to the following midnight.
			"end": end.AddDate(0, 0, 1),
		})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return statuses, nil
}

// ByProject returns the latest statuses for a project, newest first.
func (s *SurrealStatusStore) ByProject(ctx context.Context, slug string, limit int) ([]domain.Status, error) {
	statuses, err := Query[domain.Status](ctx, s.db,
		"SELECT * FROM status WHERE projectSlug = $slug ORDER BY created DESC LIMIT $limit",
		map[string]any{"slug": slug, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return statuses, nil
}

// ByUser returns the latest statuses a user posted, newest first.
func (s *SurrealStatusStore) ByUser(ctx context.Context, username string, limit int) ([]domain.Status, error) {
	statuses, err := Query[domain.Status](ctx, s.db,
		"SELECT * FROM status WHERE username = $username ORDER BY created DESC LIMIT $limit",
		map[string]any{"username": username, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return statuses, nil
}
