package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the operator endpoints with the shared admin password.
func (h *Handler) AdminAuth(c *gin.Context) {
	password := c.GetHeader("X-Admin-Password")
	if h.Cfg.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(h.Cfg.AdminPassword)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

// AdminStats returns platform-wide counters.
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.Admin.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminAirdropCSV streams the airdrop snapshot as a CSV download.
func (h *Handler) AdminAirdropCSV(c *gin.Context) {
	data, err := h.Admin.AirdropCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="airdrop.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// AdminUser looks a user up by id, tg_id or username.
func (h *Handler) AdminUser(c *gin.Context) {
	info, err := h.Admin.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}

type GrantRequest struct {
	UserID int64   `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Reason string  `json:"reason"`
}

// AdminGrant credits tokens outside the normal economy.
func (h *Handler) AdminGrant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and amount are required"})
		return
	}
	if req.Reason == "" {
		req.Reason = "manual grant"
	}

	newBalance, err := h.Admin.GrantTokens(c.Request.Context(), req.UserID, req.Amount, req.Reason)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "grant failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"new_balance": newBalance})
}

// AdminEndEvent stops a running event early.
func (h *Handler) AdminEndEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.Events.EndEvent(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found or not active"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event ended"})
}
