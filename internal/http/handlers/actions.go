package handlers

import (
	"context"
	"errors"
	"net/http"

	"pixel_plaza/internal/game"
	"pixel_plaza/internal/http/middleware"
	"pixel_plaza/internal/service"

	"github.com/gin-gonic/gin"
)

// runAction executes one economy action and renders its typed result.
// Validation failures (cooldowns, insufficient resources) come back as a
// 200 with success=false; the game state snapshot rides along either way.
func runAction(c *gin.Context, name string, run func(ctx context.Context, userID int64) (*game.Result, error)) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := run(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		middleware.EconomyActions.WithLabelValues(name, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed"})
		return
	}

	outcome := "ok"
	if !res.Success {
		outcome = "rejected"
	}
	middleware.EconomyActions.WithLabelValues(name, outcome).Inc()

	c.JSON(http.StatusOK, res)
}

// Daily claims the daily login reward.
func (h *Handler) Daily(c *gin.Context) {
	runAction(c, "daily", h.Actions.ClaimDaily)
}

// Mine spends energy mining pixels.
func (h *Handler) Mine(c *gin.Context) {
	runAction(c, "mine", h.Actions.Mine)
}

// CreateArt turns pixels and energy into tokens.
func (h *Handler) CreateArt(c *gin.Context) {
	runAction(c, "create_art", h.Actions.CreateArt)
}

type BuildRequest struct {
	BuildingType string `json:"building_type" binding:"required"`
}

// Build purchases a building.
func (h *Handler) Build(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "building_type is required"})
		return
	}

	runAction(c, "build", func(ctx context.Context, userID int64) (*game.Result, error) {
		return h.Actions.Build(ctx, userID, req.BuildingType)
	})
}

// Collect gathers building production.
func (h *Handler) Collect(c *gin.Context) {
	runAction(c, "collect", h.Actions.Collect)
}
