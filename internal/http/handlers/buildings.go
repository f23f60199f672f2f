package handlers

import (
	"net/http"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/game"

	"github.com/gin-gonic/gin"
)

// BuildingCatalog lists every building type with the caller's current price
// and unlock status. The price grows with each copy already owned.
func (h *Handler) BuildingCatalog(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	st, err := h.States.GetByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state lookup failed"})
		return
	}

	counts, err := h.Buildings.CountsByType(ctx, st.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "buildings lookup failed"})
		return
	}

	now := time.Now().UTC()
	events, _ := h.Events.Active(ctx)
	feeMult := game.EventMultiplier(events, domain.ActivityMarket, now)

	catalog := make([]gin.H, 0, len(config.BuildingCatalog))
	for i := range config.BuildingCatalog {
		spec := &config.BuildingCatalog[i]
		owned := counts[spec.Type]
		catalog = append(catalog, gin.H{
			"type":            spec.Type,
			"name":            spec.Name,
			"produces":        spec.Produces,
			"production_rate": spec.ProductionRate,
			"unlock_level":    spec.UnlockLevel,
			"unlocked":        st.Level >= spec.UnlockLevel,
			"owned":           owned,
			"next_cost":       game.BuildingCost(spec, owned, st.BuildingSkill, feeMult),
			"affordable":      st.TokenBalance >= game.BuildingCost(spec, owned, st.BuildingSkill, feeMult),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":   st.TokenBalance,
		"buildings": catalog,
	})
}
