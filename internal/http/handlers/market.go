package handlers

import (
	"net/http"
	"strconv"

	"pixel_plaza/internal/domain"

	"github.com/gin-gonic/gin"
)

var marketResources = map[string]bool{
	"pixels":    true,
	"materials": true,
	"gems":      true,
}

// MarketPrices returns the latest price snapshot of every tradable resource.
func (h *Handler) MarketPrices(c *gin.Context) {
	prices, err := h.Market.Prices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch prices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prices": prices})
}

// MarketHistory returns price snapshots for one resource, oldest first.
func (h *Handler) MarketHistory(c *gin.Context) {
	resource := c.Param("resource")
	if !marketResources[resource] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown resource"})
		return
	}

	limit := 48
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	history, err := h.Market.History(c.Request.Context(), resource, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	if history == nil {
		history = []*domain.MarketHistory{}
	}
	c.JSON(http.StatusOK, gin.H{"resource": resource, "history": history})
}

// MarketOrders lists the caller's open orders. Matching is not live yet, so
// the list is informational.
func (h *Handler) MarketOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := h.Market.Orders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []*domain.MarketOrder{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
