package handlers

import (
	"net/http"
	"strconv"

	"pixel_plaza/internal/repository"

	"github.com/gin-gonic/gin"
)

// Leaderboard returns the top users by token balance.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.Users.TopByBalance(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	if entries == nil {
		entries = []repository.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// MyRank returns the caller's position on the token leaderboard.
func (h *Handler) MyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rank, err := h.Users.RankByBalance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rank": rank})
}
