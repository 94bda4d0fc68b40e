package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// CreateStatusRequest defines the DTO for the status-posting API. APIKey is
// checked separately so a bad key yields 403, not 400.
type CreateStatusRequest struct {
	APIKey  string `json:"api_key"`
	User    string `json:"user" validate:"required"`
	Project string `json:"project" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// DeleteStatusRequest defines the DTO for deleting a status. User names the
// requester; only the status author may delete it.
type DeleteStatusRequest struct {
	APIKey string `json:"api_key"`
	User   string `json:"user" validate:"required"`
}

// UpdateUserRequest defines the DTO for updating user settings. User names
// the requester, who must be the target user or an admin. Empty optional
// fields leave the stored value unchanged.
type UpdateUserRequest struct {
	APIKey       string `json:"api_key"`
	User         string `json:"user" validate:"required"`
	Email        string `json:"email"`
	GithubHandle string `json:"github_handle"`
	Name         string `json:"name"`
}
