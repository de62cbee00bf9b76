package http

import (
	"net/http"
	"strconv"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListOpenSyncIssues handles GET /api/v1/sync_issues.
func (s *Server) ListOpenSyncIssues(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}
	query, err := queries.NewListOpenSyncIssuesQuery(limit)
	if err != nil {
		return err
	}
	page, err := s.h.ListOpenSyncIssues.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSyncIssuesResponse(page))
}

// ResolveSyncIssue handles POST /api/v1/sync_issues/:id/resolve.
func (s *Server) ResolveSyncIssue(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewResolveSyncIssueCommand(id, s.now())
	if err != nil {
		return err
	}
	if err := s.h.ResolveSyncIssue.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
