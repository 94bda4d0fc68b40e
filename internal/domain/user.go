package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// User represents the core user model in the application domain.
type User struct {
	ID           *surrealmodels.RecordID `json:"id,omitempty"`
	Username     string                  `json:"username"`
	Email        string                  `json:"email"`
	Name         *string                 `json:"name,omitempty"`
	GithubHandle string                  `json:"githubHandle,omitempty"`
	GravatarHash string                  `json:"gravatarHash,omitempty"`
	// GithubLinked records whether the account has been associated with a
	// GitHub identity. Unlinked accounts see a warning notice on every page.
	GithubLinked bool `json:"githubLinked"`
	// IsAdmin grants the right to update other users' settings through the
	// API.
	IsAdmin bool `json:"isAdmin"`
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	SetGithubLinked(ctx context.Context, username string, linked bool) error
}
