package game

import (
	"fmt"
	"math"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// Mine spends energy for tokens and pixels, with bonus material/gem finds.
func (e *Engine) Mine(st *domain.GameState, env Env) *Result {
	if st.Energy < config.MiningEnergyCost {
		return Fail(st, "Not enough energy! Current: %d/%d, Need: %d",
			st.Energy, config.MaxEnergy, config.MiningEnergyCost)
	}

	skillBonus := SkillBonus(st.MiningSkill)
	eventMult := env.multiplier(domain.ActivityMining)

	base := uniform(e.rng, config.MiningRewardMin, config.MiningRewardMax) * float64(st.Level)
	reward := Round2(base * skillBonus * eventMult)

	pixelsFound := int(math.Round(float64(config.MiningPixelGain) * skillBonus * eventMult))

	materialsFound := 0
	if e.rng.Float64() < config.MaterialFindChance {
		materialsFound = 1 + e.rng.Intn(3)
	}
	gemsFound := 0
	if e.rng.Float64() < config.MiningGemFindChance {
		gemsFound = 1
	}

	xp := int(math.Round(float64(config.MiningXP) * eventMult))

	st.TokenBalance += reward
	st.Energy = ClampEnergy(st.Energy - config.MiningEnergyCost)
	st.Pixels += pixelsFound
	st.Materials += materialsFound
	st.Gems += gemsFound
	st.Experience += xp

	var leveled bool
	st.Experience, st.Level, leveled = LevelUp(st.Experience, st.Level)

	progress := config.SkillProgressMin + e.rng.Intn(config.SkillProgressMax-config.SkillProgressMin+1)
	lvl, prog, skillUp := SkillAdvance(st.MiningSkill, st.MiningProgress, progress)
	st.SetSkill(domain.SkillMining, lvl, prog)

	msg := fmt.Sprintf("Mining successful! +%.2f $PXPT, +%d Pixels", reward, pixelsFound)
	if materialsFound > 0 {
		msg += fmt.Sprintf(", +%d Materials", materialsFound)
	}
	if gemsFound > 0 {
		msg += fmt.Sprintf(", +%d Gems", gemsFound)
	}

	desc := "Mining reward"
	if eventMult != 1.0 {
		desc = fmt.Sprintf("Mining reward (x%.2f event)", eventMult)
	}

	return &Result{
		Success:       true,
		Message:       msg,
		GameState:     st,
		Reward:        reward,
		PixelsFound:   pixelsFound,
		Materials:     materialsFound,
		Gems:          gemsFound,
		EnergyUsed:    config.MiningEnergyCost,
		XPGained:      xp,
		LevelUp:       leveled,
		SkillUp:       skillUp,
		TxType:        domain.TxMining,
		TxAmount:      reward,
		TxDescription: desc,
	}
}
