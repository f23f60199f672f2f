package handlers

import (
	"net/http"
	"strconv"

	"pixel_plaza/internal/domain"

	"github.com/gin-gonic/gin"
)

// ActiveEvents returns the global modifiers currently in effect.
func (h *Handler) ActiveEvents(c *gin.Context) {
	events, err := h.Events.Active(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}
	if events == nil {
		events = []*domain.GameEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// EventHistory lists recent events, newest first.
func (h *Handler) EventHistory(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	events, err := h.Events.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	if events == nil {
		events = []*domain.GameEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
