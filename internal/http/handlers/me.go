package handlers

import (
	"net/http"
	"strings"
	"time"

	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/game"
	"pixel_plaza/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	st, err := h.States.GetByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userJSON(user),
		"state": st,
	})
}

// Profile returns the full game view: state, buildings, cooldowns and the
// events currently in effect.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	st, err := h.States.GetByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state lookup failed"})
		return
	}

	buildings, err := h.Buildings.ListByGameState(ctx, st.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "buildings lookup failed"})
		return
	}

	cooldowns, err := h.Actions.Cooldowns(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cooldowns lookup failed"})
		return
	}

	events, err := h.Events.Active(ctx)
	if err != nil {
		logger.Warn("failed to load active events", "error", err)
		events = nil
	}

	now := time.Now().UTC()
	cds := make([]gin.H, 0, len(cooldowns))
	for _, cd := range cooldowns {
		cds = append(cds, gin.H{
			"category":          cd.Category,
			"next_available_at": cd.NextAvailableAt,
			"remaining":         game.FormatRemaining(cd.Remaining(now)),
			"ready":             cd.Remaining(now) == 0,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      userJSON(user),
		"state":     st,
		"buildings": buildings,
		"cooldowns": cds,
		"events":    events,
	})
}

type SetWalletRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

// SetWallet stores the user's payout address and bumps wallet objectives.
func (h *Handler) SetWallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SetWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet_address is required"})
		return
	}

	addr := strings.TrimSpace(req.WalletAddress)
	if len(addr) < 10 || len(addr) > 128 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Users.SetWalletAddress(ctx, userID, addr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save wallet"})
		return
	}

	if err := h.Tasks.AdvanceWallet(ctx, userID); err != nil {
		logger.Warn("wallet objective not advanced", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "wallet address saved", "wallet_address": addr})
}

// Wallet returns the stored payout address, if any.
func (h *Handler) Wallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	resp := gin.H{"wallet_set": user.WalletAddress != nil}
	if user.WalletAddress != nil {
		resp["wallet_address"] = *user.WalletAddress
	}
	c.JSON(http.StatusOK, resp)
}

// History returns the user's recent balance-affecting transactions.
func (h *Handler) History(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 50
	txs, err := h.Transactions.GetByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history lookup failed"})
		return
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
