package game

import (
	"math/rand"
	"testing"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

func testEngine() *Engine {
	return New(rand.New(rand.NewSource(1)))
}

func testState() *domain.GameState {
	return &domain.GameState{
		ID:            1,
		UserID:        1,
		TokenBalance:  100,
		Energy:        config.MaxEnergy,
		Level:         1,
		MiningSkill:   1,
		ArtSkill:      1,
		BuildingSkill: 1,
		TradingSkill:  1,
	}
}

func TestDailyFirstClaim(t *testing.T) {
	e := testEngine()
	st := testState()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	res := e.Daily(st, Env{Now: now})

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if st.DailyStreak != 1 {
		t.Errorf("streak = %d, want 1", st.DailyStreak)
	}
	if res.Reward != config.DailyReward {
		t.Errorf("reward = %v, want %v", res.Reward, config.DailyReward)
	}
	if st.LastDailyClaim == nil || !st.LastDailyClaim.Equal(now) {
		t.Errorf("LastDailyClaim = %v, want %v", st.LastDailyClaim, now)
	}
}

func TestDailyStreak(t *testing.T) {
	tests := []struct {
		name       string
		sinceLast  time.Duration
		streak     int
		wantStreak int
	}{
		{"continues within 48h", 30 * time.Hour, 3, 4},
		{"continues at 47h", 47 * time.Hour, 1, 2},
		{"resets past 48h", 50 * time.Hour, 6, 1},
		{"resets after a week", 8 * 24 * time.Hour, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine()
			st := testState()
			now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
			last := now.Add(-tt.sinceLast)
			st.LastDailyClaim = &last
			st.DailyStreak = tt.streak

			res := e.Daily(st, Env{Now: now})

			if !res.Success {
				t.Fatalf("expected success, got %q", res.Message)
			}
			if st.DailyStreak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", st.DailyStreak, tt.wantStreak)
			}
		})
	}
}

func TestDailyStreakBonusCapped(t *testing.T) {
	e := testEngine()
	st := testState()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	last := now.Add(-25 * time.Hour)
	st.LastDailyClaim = &last
	st.DailyStreak = 20 // way past the bonus cap

	res := e.Daily(st, Env{Now: now})

	wantReward := Round2(config.DailyReward + float64(config.DailyStreakCap-1)*config.DailyStreakBonus)
	if res.Reward != wantReward {
		t.Errorf("reward = %v, want %v (capped at %d days)", res.Reward, wantReward, config.DailyStreakCap)
	}
	if st.DailyStreak != 21 {
		t.Errorf("streak = %d, want 21 (counter itself is uncapped)", st.DailyStreak)
	}
}

func TestDailyEnergyRefillClamped(t *testing.T) {
	e := testEngine()
	st := testState()
	st.Energy = config.MaxEnergy - 10

	e.Daily(st, Env{Now: time.Now().UTC()})

	if st.Energy != config.MaxEnergy {
		t.Errorf("energy = %d, want clamp at %d", st.Energy, config.MaxEnergy)
	}
}
