package game

import (
	"fmt"
	"math"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// ArtPixelCost returns the effective pixel cost at an art skill level.
// Skill reduces the cost down to a floor.
func ArtPixelCost(artSkill int) int {
	cost := config.ArtPixelCost - (artSkill-1)*config.ArtPixelDiscount
	if cost < config.ArtPixelCostFloor {
		cost = config.ArtPixelCostFloor
	}
	return cost
}

func qualityLabel(q float64) string {
	switch {
	case q >= 1.4:
		return "Masterpiece"
	case q >= 1.15:
		return "High quality"
	case q >= 0.95:
		return "Standard"
	default:
		return "Basic"
	}
}

// CreateArt converts pixels and energy into tokens, scaled by a drawn
// quality factor that also names the piece.
func (e *Engine) CreateArt(st *domain.GameState, env Env) *Result {
	pixelCost := ArtPixelCost(st.ArtSkill)
	if st.Pixels < pixelCost {
		return Fail(st, "Not enough pixels! Current: %d, Need: %d", st.Pixels, pixelCost)
	}
	if st.Energy < config.ArtEnergyCost {
		return Fail(st, "Not enough energy! Current: %d/%d, Need: %d",
			st.Energy, config.MaxEnergy, config.ArtEnergyCost)
	}

	skillBonus := SkillBonus(st.ArtSkill)
	eventMult := env.multiplier(domain.ActivityArt)
	quality := uniform(e.rng, config.ArtQualityMin, config.ArtQualityMax)
	label := qualityLabel(quality)

	base := uniform(e.rng, config.ArtTokenRewardMin, config.ArtTokenRewardMax) * float64(st.Level)
	reward := Round2(base * quality * skillBonus * eventMult)

	gemsFound := 0
	if e.rng.Float64() < config.ArtGemFindChance {
		gemsFound = 1
	}

	xp := int(math.Round(float64(config.ArtXP) * eventMult))

	st.TokenBalance += reward
	st.Pixels -= pixelCost
	st.Energy = ClampEnergy(st.Energy - config.ArtEnergyCost)
	st.Gems += gemsFound
	st.PixelArtCreated++
	st.Experience += xp

	var leveled bool
	st.Experience, st.Level, leveled = LevelUp(st.Experience, st.Level)

	progress := config.SkillProgressMin + e.rng.Intn(config.SkillProgressMax-config.SkillProgressMin+1)
	lvl, prog, skillUp := SkillAdvance(st.ArtSkill, st.ArtProgress, progress)
	st.SetSkill(domain.SkillArt, lvl, prog)

	msg := fmt.Sprintf("%s artwork created! +%.2f $PXPT", label, reward)
	if gemsFound > 0 {
		msg += fmt.Sprintf(", +%d Gems", gemsFound)
	}

	return &Result{
		Success:       true,
		Message:       msg,
		GameState:     st,
		Reward:        reward,
		PixelsUsed:    pixelCost,
		EnergyUsed:    config.ArtEnergyCost,
		Gems:          gemsFound,
		XPGained:      xp,
		LevelUp:       leveled,
		SkillUp:       skillUp,
		Quality:       label,
		TxType:        domain.TxPixelArt,
		TxAmount:      reward,
		TxDescription: fmt.Sprintf("Pixel art creation reward (%s)", label),
	}
}
