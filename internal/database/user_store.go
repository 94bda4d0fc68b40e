package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/freddyb/standup/internal/domain"
)

// SurrealUserStore encapsulates database operations for users using SurrealDB.
type SurrealUserStore struct {
	db *surrealdb.DB
}

// NewSurrealUserStore creates a new SurrealUserStore.
func NewSurrealUserStore(db *surrealdb.DB) *SurrealUserStore {
	return &SurrealUserStore{db: db}
}

// FindByUsername queries for a single user by username.
func (s *SurrealUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := QueryOne[domain.User](ctx, s.db,
		"SELECT * FROM user WHERE username = $username",
		map[string]any{"username": username})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// FindByEmail queries for a single user by their email address.
func (s *SurrealUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := QueryOne[domain.User](ctx, s.db,
		"SELECT * FROM user WHERE email = $email",
		map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// Create persists a new user. Usernames are unique; a duplicate surfaces as
// domain.ErrAlreadyExists.
func (s *SurrealUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := QueryOne[domain.User](ctx, s.db,
		`CREATE user SET username = $username, email = $email, name = $name,
			githubHandle = $githubHandle, gravatarHash = $gravatarHash,
			githubLinked = $githubLinked, isAdmin = $isAdmin`,
		map[string]any{
			"username":     user.Username,
			"email":        user.Email,
			"name":         user.Name,
			"githubHandle": user.GithubHandle,
			"gravatarHash": user.GravatarHash,
			"githubLinked": user.GithubLinked,
			"isAdmin":      user.IsAdmin,
		})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Update persists changed user settings, keyed by username.
func (s *SurrealUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	updated, err := QueryOne[domain.User](ctx, s.db,
		`UPDATE user SET email = $email, name = $name, githubHandle = $githubHandle,
			gravatarHash = $gravatarHash, githubLinked = $githubLinked, isAdmin = $isAdmin
			WHERE username = $username`,
		map[string]any{
			"username":     user.Username,
			"email":        user.Email,
			"name":         user.Name,
			"githubHandle": user.GithubHandle,
			"gravatarHash": user.GravatarHash,
			"githubLinked": user.GithubLinked,
			"isAdmin":      user.IsAdmin,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// SetGithubLinked records whether the user's account has been associated
// with a GitHub identity.
func (s *SurrealUserStore) SetGithubLinked(ctx context.Context, username string, linked bool) error {
	return Execute(ctx, s.db,
		"UPDATE user SET githubLinked = $linked WHERE username = $username",
		map[string]any{"username": username, "linked": linked})
}
