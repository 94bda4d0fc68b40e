package domain

import (
	"context"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Team is a named group of projects shown in the navigation chrome.
type Team struct {
	ID   *surrealmodels.RecordID `json:"id,omitempty"`
	Slug string                  `json:"slug"`
	Name string                  `json:"name"`
}

// Project is something statuses are posted against. RepoURL is used to turn
// "pull #N" references in status content into links.
type Project struct {
	ID      *surrealmodels.RecordID `json:"id,omitempty"`
	Slug    string                  `json:"slug"`
	Name    string                  `json:"name"`
	RepoURL string                  `json:"repoUrl,omitempty"`
	Team    string                  `json:"team,omitempty"`
}

// Status is a single standup update.
type Status struct {
	ID          *surrealmodels.RecordID `json:"id,omitempty"`
	UUID        string                  `json:"uuid"`
	Username    string                  `json:"username"`
	ProjectSlug string                  `json:"projectSlug"`
	Content     string                  `json:"content"`
	ContentHTML string                  `json:"contentHtml"`
	Created     time.Time               `json:"created"`
}

// TeamRepository provides read access to teams in display order.
type TeamRepository interface {
	List(ctx context.Context) ([]Team, error)
	FindBySlug(ctx context.Context, slug string) (*Team, error)
}

// ProjectRepository provides access to projects in display order.
type ProjectRepository interface {
	List(ctx context.Context) ([]Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	Create(ctx context.Context, project *Project) (*Project, error)
}

// StatusRepository provides access to standup updates.
type StatusRepository interface {
	Create(ctx context.Context, status *Status) (*Status, error)
	FindByUUID(ctx context.Context, uuid string) (*Status, error)
	Delete(ctx context.Context, uuid string) error
	Recent(ctx context.Context, limit int) ([]Status, error)
	ByWeek(ctx context.Context, start, end time.Time) ([]Status, error)
	ByProject(ctx context.Context, slug string, limit int) ([]Status, error)
	ByUser(ctx context.Context, username string, limit int) ([]Status, error)
}
