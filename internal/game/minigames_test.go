package game

import (
	"testing"

	"pixel_plaza/internal/domain"
)

func TestPixelMatch(t *testing.T) {
	tests := []struct {
		name             string
		found, required  int
		wantScore        float64
	}{
		{"perfect", 8, 8, 100},
		{"half", 4, 8, 50},
		{"none", 0, 8, 0},
		{"overshoot clamped", 12, 8, 100},
		{"negative clamped", -3, 8, 0},
		{"zero required defaults", 8, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := PixelMatch(tt.found, tt.required)
			if out.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", out.Score, tt.wantScore)
			}
			if out.GameType != domain.GamePixelMatch {
				t.Errorf("game type = %q", out.GameType)
			}
		})
	}
}

func TestPixelMatchRewardScalesWithScore(t *testing.T) {
	poor := PixelMatch(1, 8)
	perfect := PixelMatch(8, 8)
	if perfect.Tokens <= poor.Tokens {
		t.Errorf("perfect tokens %v not above poor %v", perfect.Tokens, poor.Tokens)
	}
	if poor.Tokens <= 0 {
		t.Errorf("floor factor should still pay something, got %v", poor.Tokens)
	}
}

func TestTokenPuzzle(t *testing.T) {
	size := 3
	solved := []int{1, 2, 3, 4, 5, 6, 7, 8, 0}

	t.Run("perfect gets bonus", func(t *testing.T) {
		out := TokenPuzzle(solved, size)
		if out.Score != 120 {
			t.Errorf("score = %v, want 120 (100 + perfect bonus)", out.Score)
		}
	})

	t.Run("partial", func(t *testing.T) {
		almost := []int{1, 2, 3, 4, 5, 6, 8, 7, 0}
		out := TokenPuzzle(almost, size)
		// Mirror the runtime float division; a constant 7.0/9.0*100 is
		// folded at higher precision and rounds to a different float64.
		want := float64(7) / float64(size*size) * 100
		if out.Score != want {
			t.Errorf("score = %v, want %v", out.Score, want)
		}
	})

	t.Run("short submission", func(t *testing.T) {
		out := TokenPuzzle([]int{1, 2}, size)
		want := float64(2) / float64(size*size) * 100
		if out.Score != want {
			t.Errorf("score = %v, want %v", out.Score, want)
		}
	})
}

func TestResourceRush(t *testing.T) {
	t.Run("full targets", func(t *testing.T) {
		out := ResourceRush(map[string]int{"pixel": 30, "material": 15, "gem": 5, "token": 10})
		if out.Score != 100 {
			t.Errorf("score = %v, want 100", out.Score)
		}
	})

	t.Run("over-collection capped per resource", func(t *testing.T) {
		out := ResourceRush(map[string]int{"pixel": 300, "material": 0, "gem": 0, "token": 0})
		if out.Score != 25 {
			t.Errorf("score = %v, want 25 (one of four targets)", out.Score)
		}
	})

	t.Run("per-unit bonuses", func(t *testing.T) {
		none := ResourceRush(map[string]int{})
		some := ResourceRush(map[string]int{"gem": 3})
		if some.Gems != none.Gems+3 {
			t.Errorf("gem bonus = %d, want %d", some.Gems, none.Gems+3)
		}
	})

	t.Run("negative counts ignored", func(t *testing.T) {
		out := ResourceRush(map[string]int{"pixel": -10, "token": -5})
		if out.Score != 0 {
			t.Errorf("score = %v, want 0", out.Score)
		}
	})
}

func TestGemHunter(t *testing.T) {
	t.Run("score capped at 100", func(t *testing.T) {
		out := GemHunter(7, 7, 7, 5)
		if out.Score != 100 {
			t.Errorf("score = %v, want 100", out.Score)
		}
	})

	t.Run("found gems added to reward", func(t *testing.T) {
		base := GemHunter(0, 7, 10, 5)
		found := GemHunter(3, 7, 10, 5)
		if found.Gems < base.Gems+3 {
			t.Errorf("gems = %d, want at least %d", found.Gems, base.Gems+3)
		}
	})

	t.Run("bigger grid pays more", func(t *testing.T) {
		small := GemHunter(5, 7, 10, 5)
		large := GemHunter(5, 7, 10, 10)
		if large.Tokens <= small.Tokens {
			t.Errorf("grid-size difficulty missing: %v <= %v", large.Tokens, small.Tokens)
		}
	})

	t.Run("overshoot clamped", func(t *testing.T) {
		out := GemHunter(20, 7, 5, 5)
		if out.Score != 100 {
			t.Errorf("score = %v, want 100", out.Score)
		}
	})
}

func TestPatternPredictor(t *testing.T) {
	correct := PatternPredictor(true, 1.0)
	if correct.Score != 100 {
		t.Errorf("correct score = %v, want 100", correct.Score)
	}

	wrong := PatternPredictor(false, 1.0)
	if wrong.Score != 0 {
		t.Errorf("wrong score = %v, want 0", wrong.Score)
	}
	// Score 0 still floors at the minimum payout factor.
	if wrong.Tokens <= 0 {
		t.Errorf("consolation payout = %v, want > 0", wrong.Tokens)
	}

	harder := PatternPredictor(true, 2.0)
	if harder.Tokens <= correct.Tokens {
		t.Errorf("difficulty scaling missing: %v <= %v", harder.Tokens, correct.Tokens)
	}
}
