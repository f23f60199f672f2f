package handlers

import (
	"errors"
	"net/http"

	"pixel_plaza/internal/http/middleware"
	"pixel_plaza/internal/service"

	"github.com/gin-gonic/gin"
)

// MiniGames lists every mini-game with per-user availability.
func (h *Handler) MiniGames(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	games, err := h.Games.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load games"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

// PlayMiniGame scores a round and credits the rewards.
func (h *Handler) PlayMiniGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gameType := c.Param("type")

	var play service.MiniGamePlay
	if err := c.ShouldBindJSON(&play); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	out, err := h.Games.Play(c.Request.Context(), userID, gameType, &play)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownGame):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown mini-game"})
		case errors.Is(err, service.ErrGameOnCooldown):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "play failed"})
		}
		return
	}

	middleware.MiniGamePlays.WithLabelValues(gameType).Inc()
	c.JSON(http.StatusOK, out)
}
