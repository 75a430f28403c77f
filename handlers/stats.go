package handlers

import (
	"net/http"

	"wayfare/middleware"
	"wayfare/services/stats"

	"github.com/gin-gonic/gin"
)

// StatsHandler exposes the repair path for rolling stats: a full recompute
// that restores derived fields from booking history.
type StatsHandler struct {
	Aggregator stats.Aggregator
}

func NewStatsHandler(aggregator stats.Aggregator) *StatsHandler {
	return &StatsHandler{Aggregator: aggregator}
}

// Recompute rebuilds the caller's own response stats.
func (h *StatsHandler) Recompute(c *gin.Context) {
	recomputed, err := h.Aggregator.Recompute(middleware.ActorID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recomputed)
}
