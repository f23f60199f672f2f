package handlers

import (
	"errors"
	"net/http"

	"pixel_plaza/internal/service"

	"github.com/gin-gonic/gin"
)

// ReferralCode returns the caller's invite code, creating one if needed.
func (h *Handler) ReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	code, err := h.Referrals.Code(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrLevelTooLow) {
			c.JSON(http.StatusForbidden, gin.H{"error": "reach a higher level to unlock referrals"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referral code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": code})
}

// ReferralLink returns a shareable deep link that opens the web app with the
// caller's code attached.
func (h *Handler) ReferralLink(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	code, err := h.Referrals.Code(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrLevelTooLow) {
			c.JSON(http.StatusForbidden, gin.H{"error": "reach a higher level to unlock referrals"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referral code"})
		return
	}

	link := "https://t.me/" + h.Cfg.BotUsername + "?startapp=ref_" + code

	c.JSON(http.StatusOK, gin.H{
		"code": code,
		"link": link,
	})
}

// ReferralStats returns how many users the caller brought in.
func (h *Handler) ReferralStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.Referrals.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

type ApplyReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyReferralCode links the caller to a referrer and pays both bonuses.
func (h *Handler) ApplyReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ApplyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	err := h.Referrals.Apply(c.Request.Context(), userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral code"})
		case errors.Is(err, service.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot use your own code"})
		case errors.Is(err, service.ErrAlreadyReferred):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already referred"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply referral"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "referral applied successfully"})
}
