package handlers

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/freddyb/standup/internal/domain"
	"github.com/freddyb/standup/internal/format"
	"github.com/freddyb/standup/internal/pubsub"
	"github.com/freddyb/standup/internal/view"
)

// APIHandler serves the JSON status-posting endpoint used by bots and IRC
// integrations.
type APIHandler struct {
	apiKey    string
	formatter *format.Formatter
	users     domain.UserRepository
	projects  domain.ProjectRepository
	statuses  domain.StatusRepository
	publisher pubsub.Publisher
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(apiKey string, formatter *format.Formatter, users domain.UserRepository, projects domain.ProjectRepository, statuses domain.StatusRepository, publisher pubsub.Publisher) *APIHandler {
	return &APIHandler{
		apiKey:    apiKey,
		formatter: formatter,
		users:     users,
		projects:  projects,
		statuses:  statuses,
		publisher: publisher,
	}
}

// CreateStatus handles POST /api/v1/status/. Unknown users and projects are
// created on first use, matching how the IRC bot behaves: the first status
// someone posts brings their account into existence.
func (h *APIHandler) CreateStatus(c echo.Context) error {
	var req CreateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		return echo.NewHTTPError(http.StatusForbidden, "invalid api key")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if _, err := h.users.FindByUsername(ctx, req.User); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if _, err := h.users.Create(ctx, &domain.User{Username: req.User}); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return err
		}
	}

	project, err := h.projects.FindBySlug(ctx, req.Project)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		project, err = h.projects.Create(ctx, &domain.Project{Slug: req.Project, Name: req.Project})
		if err != nil {
			return err
		}
	}

	status := &domain.Status{
		UUID:        uuid.NewString(),
		Username:    req.User,
		ProjectSlug: req.Project,
		Content:     req.Content,
		ContentHTML: h.formatter.Update(req.Content, project),
		Created:     time.Now().UTC(),
	}
	created, err := h.statuses.Create(ctx, status)
	if err != nil {
		return err
	}
	if created == nil {
		created = status
	}

	h.publishCreated(c, *created)

	return c.JSON(http.StatusOK, map[string]string{
		"id":      created.UUID,
		"user":    created.Username,
		"project": created.ProjectSlug,
		"content": created.ContentHTML,
	})
}

// DeleteStatus handles DELETE /api/v1/status/:id/. Only the user who posted
// the status may delete it.
func (h *APIHandler) DeleteStatus(c echo.Context) error {
	var req DeleteStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		return echo.NewHTTPError(http.StatusForbidden, "invalid api key")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	status, err := h.statuses.FindByUUID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such status")
		}
		return err
	}
	if status.Username != req.User {
		return echo.NewHTTPError(http.StatusForbidden, "not the author of this status")
	}

	if err := h.statuses.Delete(ctx, status.UUID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"id": status.UUID})
}

// UpdateUser handles POST /api/v1/user/:username/. Users may update their own
// settings; admins may update anyone's.
func (h *APIHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		return echo.NewHTTPError(http.StatusForbidden, "invalid api key")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	target := c.Param("username")
	if req.User != target {
		requester, err := h.users.FindByUsername(ctx, req.User)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return echo.NewHTTPError(http.StatusForbidden, "not allowed to update this user")
			}
			return err
		}
		if !requester.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not allowed to update this user")
		}
	}

	user, err := h.users.FindByUsername(ctx, target)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such user")
		}
		return err
	}

	if req.Email != "" {
		user.Email = req.Email
		user.GravatarHash = view.EmailHash(req.Email)
	}
	if req.GithubHandle != "" {
		user.GithubHandle = req.GithubHandle
	}
	if req.Name != "" {
		name := req.Name
		user.Name = &name
	}

	updated, err := h.users.Update(ctx, user)
	if err != nil {
		return err
	}
	if updated == nil {
		updated = user
	}
	return c.JSON(http.StatusOK, map[string]string{
		"username":      updated.Username,
		"email":         updated.Email,
		"github_handle": updated.GithubHandle,
	})
}

// publishCreated pushes the rendered fragment onto the status.created topic
// so connected browsers see the update without reloading. Publish failures
// are logged, not surfaced; the status is already stored.
func (h *APIHandler) publishCreated(c echo.Context, status domain.Status) {
	var buf bytes.Buffer
	if err := view.StatusItem(status).Render(&buf); err != nil {
		slog.Error("Failed to render status fragment", "status", status.UUID, "error", err)
		return
	}
	err := h.publisher.Publish(c.Request().Context(), pubsub.Message{
		Topic:   pubsub.TopicStatusCreated,
		UserID:  status.Username,
		Payload: buf.Bytes(),
	})
	if err != nil {
		slog.Error("Failed to publish status.created", "status", status.UUID, "error", err)
	}
}
