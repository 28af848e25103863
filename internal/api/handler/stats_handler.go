package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskly/tracker-api/internal/core/ports"
)

// StatsHandler serves the aggregate completion statistics.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get recomputes and returns the principal's summary counts.
//
// @Summary      Get completion statistics for the current user
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      401  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.ComputeStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
