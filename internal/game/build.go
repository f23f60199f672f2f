package game

import (
	"fmt"
	"math"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// BuildingCost returns the token cost of the next building of a type:
// exponential in the number already owned, discounted by building skill and
// inflated by an active crisis fee.
func BuildingCost(spec *config.BuildingSpec, ownedOfType int, buildingSkill int, feeMult float64) float64 {
	cost := spec.BaseCost * math.Pow(config.BuildingCostMultiplier, float64(ownedOfType))
	cost /= SkillBonus(buildingSkill)
	if feeMult > 1.0 {
		cost *= feeMult
	}
	return Round2(cost)
}

// Build purchases a building of the requested type. ownedOfType is the count
// of buildings of that type the user already owns.
func (e *Engine) Build(st *domain.GameState, buildingType string, ownedOfType int, env Env) (*Result, *domain.Building) {
	spec := config.BuildingSpecByType(buildingType)
	if spec == nil {
		return Fail(st, "Unknown building type: %s", buildingType), nil
	}
	if st.Level < spec.UnlockLevel {
		return Fail(st, "%s unlocks at level %d (you are level %d)",
			spec.Name, spec.UnlockLevel, st.Level), nil
	}

	feeMult := env.multiplier(domain.ActivityMarket)
	cost := BuildingCost(spec, ownedOfType, st.BuildingSkill, feeMult)
	if st.TokenBalance < cost {
		return Fail(st, "Not enough $PXPT! Current: %.2f, Need: %.2f", st.TokenBalance, cost), nil
	}

	// Efficiency is frozen at purchase time from the events active now.
	efficiency := env.multiplier(domain.ActivityBuilding)

	st.TokenBalance = Round2(st.TokenBalance - cost)
	st.BuildingsOwned++
	st.Experience += config.BuildingXP

	var leveled bool
	st.Experience, st.Level, leveled = LevelUp(st.Experience, st.Level)

	progress := config.SkillProgressMin + e.rng.Intn(config.SkillProgressMax-config.SkillProgressMin+1)
	lvl, prog, skillUp := SkillAdvance(st.BuildingSkill, st.BuildingProgress, progress)
	st.SetSkill(domain.SkillBuilding, lvl, prog)

	b := &domain.Building{
		GameStateID:    st.ID,
		BuildingType:   spec.Type,
		Level:          1,
		ProductionRate: spec.ProductionRate,
		Produces:       spec.Produces,
		Efficiency:     efficiency,
		LastCollection: env.Now,
	}

	res := &Result{
		Success:       true,
		Message:       fmt.Sprintf("%s purchased! Cost: %.2f $PXPT", spec.Name, cost),
		GameState:     st,
		Cost:          cost,
		BuildingType:  spec.Type,
		XPGained:      config.BuildingXP,
		LevelUp:       leveled,
		SkillUp:       skillUp,
		TxType:        domain.TxBuildingBuy,
		TxAmount:      -cost,
		TxDescription: fmt.Sprintf("Building purchase: %s", spec.Name),
	}
	return res, b
}
