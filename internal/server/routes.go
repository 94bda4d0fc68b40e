package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freddyb/standup/internal/middleware"
)

// RegisterRoutes sets up all the application routes. Paths mirror the
// routing.Resolver table; the resolver is the source of truth for names the
// page shell links to.
func (s *Server) RegisterRoutes() {
	s.E.Use(middleware.LoadViewer())
	rateLimiter := middleware.RateLimiter()

	s.E.GET("/", s.statusHandler.IndexGet)
	s.E.GET("/week/", s.statusHandler.WeeklyGet)
	s.E.GET("/team/:slug/", s.statusHandler.TeamGet)
	s.E.GET("/project/:slug/", s.statusHandler.ProjectGet)
	s.E.GET("/user/:username/", s.statusHandler.UserGet)

	s.E.GET("/login/", s.authHandler.LoginGet)
	s.E.POST("/login/", s.authHandler.LoginPost, rateLimiter)
	s.E.GET("/logout/", s.authHandler.Logout)
	s.E.GET("/social/login/:backend/", s.authHandler.LinkGithub)
	s.E.GET("/profile/", s.profileHandler.ProfileGet, middleware.RequireUser())

	s.E.POST("/api/v1/status/", s.apiHandler.CreateStatus, rateLimiter)
	s.E.DELETE("/api/v1/status/:id/", s.apiHandler.DeleteStatus, rateLimiter)
	s.E.POST("/api/v1/user/:username/", s.apiHandler.UpdateUser, rateLimiter)
	s.E.GET("/ws/statuses", s.streamHandler.Stream)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
