package game

import (
	"fmt"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// Daily claims the daily reward. The 24h gate is enforced by the caller;
// here only the streak and reward are computed.
func (e *Engine) Daily(st *domain.GameState, env Env) *Result {
	// Streak continues when the previous claim was 24-48h ago.
	if st.LastDailyClaim != nil {
		since := env.Now.Sub(*st.LastDailyClaim)
		if since < 2*config.DailyClaimCooldown {
			st.DailyStreak++
		} else {
			st.DailyStreak = 1
		}
	} else {
		st.DailyStreak = 1
	}

	streakDays := st.DailyStreak
	if streakDays > config.DailyStreakCap {
		streakDays = config.DailyStreakCap
	}
	reward := Round2(config.DailyReward + float64(streakDays-1)*config.DailyStreakBonus)

	st.TokenBalance += reward
	claimedAt := env.Now
	st.LastDailyClaim = &claimedAt
	st.Energy = ClampEnergy(st.Energy + config.DailyEnergyRefill)

	return &Result{
		Success:       true,
		Message:       fmt.Sprintf("Daily reward claimed! +%.2f $PXPT (Streak: %d)", reward, st.DailyStreak),
		GameState:     st,
		Reward:        reward,
		Streak:        st.DailyStreak,
		EnergyAdded:   config.DailyEnergyRefill,
		TxType:        domain.TxDaily,
		TxAmount:      reward,
		TxDescription: fmt.Sprintf("Daily reward (%d day streak)", st.DailyStreak),
	}
}
