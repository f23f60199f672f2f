package game

import (
	"fmt"
	"math"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// Collect gathers production from every owned building since its last
// collection. Accrual is linear up to one full collection period; skipping
// collections never yields more than a full period's output. Banks pay
// interest on the current token balance instead of a flat rate. Buildings'
// LastCollection is advanced to now.
func (e *Engine) Collect(st *domain.GameState, buildings []*domain.Building, env Env) *Result {
	if len(buildings) == 0 {
		return Fail(st, "You don't own any buildings yet!")
	}

	skillBonus := SkillBonus(st.BuildingSkill)
	eventMult := env.multiplier(domain.ActivityBuilding)

	var tokens float64
	var pixels, materials, gems float64

	for _, b := range buildings {
		elapsed := env.Now.Sub(b.LastCollection)
		fraction := elapsed.Seconds() / config.CollectionCooldown.Seconds()
		if fraction > 1.0 {
			fraction = 1.0
		}
		if fraction < 0 {
			fraction = 0
		}

		scale := b.Efficiency * skillBonus * eventMult * fraction

		if b.Produces == "bank" {
			tokens += st.TokenBalance * config.BankInterestRate * float64(b.Level) * scale
		} else {
			amount := b.ProductionRate * float64(b.Level) * scale
			switch b.Produces {
			case "tokens":
				tokens += amount
			case "pixels":
				pixels += amount
			case "materials":
				materials += amount
			case "gems":
				gems += amount
			}
		}

		b.LastCollection = env.Now
	}

	income := Round2(tokens)
	pixelGain := int(math.Round(pixels))
	materialGain := int(math.Round(materials))
	gemGain := int(math.Round(gems))

	st.TokenBalance += income
	st.Pixels += pixelGain
	st.Materials += materialGain
	st.Gems += gemGain

	progress := config.SkillProgressMin + e.rng.Intn(config.SkillProgressMax-config.SkillProgressMin+1)
	lvl, prog, skillUp := SkillAdvance(st.BuildingSkill, st.BuildingProgress, progress)
	st.SetSkill(domain.SkillBuilding, lvl, prog)

	msg := fmt.Sprintf("Income collected! +%.2f $PXPT from %d buildings", income, len(buildings))
	if pixelGain > 0 {
		msg += fmt.Sprintf(", +%d Pixels", pixelGain)
	}
	if materialGain > 0 {
		msg += fmt.Sprintf(", +%d Materials", materialGain)
	}
	if gemGain > 0 {
		msg += fmt.Sprintf(", +%d Gems", gemGain)
	}

	return &Result{
		Success:       true,
		Message:       msg,
		GameState:     st,
		Income:        income,
		PixelsFound:   pixelGain,
		Materials:     materialGain,
		Gems:          gemGain,
		SkillUp:       skillUp,
		TxType:        domain.TxBuildingIncome,
		TxAmount:      income,
		TxDescription: fmt.Sprintf("Income from %d buildings", len(buildings)),
	}
}
