package game

import (
	"fmt"
	"math"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

// MiniGameOutcome is the scored result of one mini-game play.
type MiniGameOutcome struct {
	GameType  string  `json:"game_type"`
	Score     float64 `json:"score"`
	Message   string  `json:"message"`
	Tokens    float64 `json:"reward_tokens"`
	Pixels    int     `json:"reward_pixels"`
	Materials int     `json:"reward_materials"`
	Gems      int     `json:"reward_gems"`
	XP        int     `json:"reward_xp"`
}

// MiniGameName returns the display name of a game type.
func MiniGameName(gameType string) string {
	switch gameType {
	case domain.GamePixelMatch:
		return "Pixel Match"
	case domain.GameTokenPuzzle:
		return "Token Puzzle"
	case domain.GameResourceRush:
		return "Resource Rush"
	case domain.GameGemHunter:
		return "Gem Hunter"
	case domain.GamePatternPredictor:
		return "Pattern Predictor"
	}
	return gameType
}

// MiniGameDescription returns the player-facing description of a game type.
func MiniGameDescription(gameType string) string {
	switch gameType {
	case domain.GamePixelMatch:
		return "Match the pixel patterns to earn rewards. Test your memory!"
	case domain.GameTokenPuzzle:
		return "Solve the token puzzle by arranging numbers in the correct order."
	case domain.GameResourceRush:
		return "Collect resources as they appear before time runs out!"
	case domain.GameGemHunter:
		return "Find hidden gems in the pixel mine by selecting the right locations."
	case domain.GamePatternPredictor:
		return "Predict the next symbol in the sequence to earn big rewards!"
	}
	return "A fun mini-game with rewards!"
}

// miniGameRewards scales a game's base reward table by score and difficulty.
// Score factor is clamped to [0.1, 1.0] so even a poor round pays something.
func miniGameRewards(gameType string, score, difficulty float64) MiniGameOutcome {
	base := config.MiniGameRewards[gameType]

	factor := score / 100
	if factor > 1.0 {
		factor = 1.0
	}
	if factor < 0.1 {
		factor = 0.1
	}

	return MiniGameOutcome{
		GameType:  gameType,
		Score:     score,
		Tokens:    Round2(base.Tokens * factor * difficulty),
		Pixels:    int(math.Round(float64(base.Pixels) * factor * difficulty)),
		Materials: int(math.Round(float64(base.Materials) * factor * difficulty)),
		Gems:      int(math.Round(float64(base.Gems) * factor * difficulty)),
		XP:        int(math.Round(float64(base.XP) * factor * difficulty)),
	}
}

// PixelMatch scores a memory game round by pairs matched.
func PixelMatch(matchesFound, matchesRequired int) MiniGameOutcome {
	if matchesRequired <= 0 {
		matchesRequired = 8
	}
	if matchesFound < 0 {
		matchesFound = 0
	}
	if matchesFound > matchesRequired {
		matchesFound = matchesRequired
	}

	score := float64(matchesFound) / float64(matchesRequired) * 100
	out := miniGameRewards(domain.GamePixelMatch, score, 1.0)
	out.Message = fmt.Sprintf("You matched %d out of %d pairs!", matchesFound, matchesRequired)
	return out
}

// TokenPuzzle scores a sliding puzzle by tiles in their final position.
// solution is the submitted arrangement; the target is 1..n-1 followed by 0.
func TokenPuzzle(solution []int, size int) MiniGameOutcome {
	if size <= 0 {
		size = 4
	}
	total := size * size

	correct := 0
	for i, num := range solution {
		if i >= total {
			break
		}
		want := i + 1
		if i == total-1 {
			want = 0
		}
		if num == want {
			correct++
		}
	}

	score := float64(correct) / float64(total) * 100
	perfect := score == 100
	if perfect {
		score += 20 // perfect-solution bonus
	}

	out := miniGameRewards(domain.GameTokenPuzzle, score, 1.2)
	out.Score = score
	out.Message = fmt.Sprintf("You got %d out of %d positions correct!", correct, total)
	return out
}

// ResourceRushTargets are the per-resource collection goals of one round.
var ResourceRushTargets = map[string]int{
	"pixel":    30,
	"material": 15,
	"gem":      5,
	"token":    10,
}

// ResourceRush scores a timed collection round as the average completion
// percentage across resource targets, plus per-unit bonus rewards.
func ResourceRush(collected map[string]int) MiniGameOutcome {
	var sum float64
	for resource, target := range ResourceRushTargets {
		got := collected[resource]
		if got < 0 {
			got = 0
		}
		pct := float64(got) / float64(target) * 100
		if pct > 100 {
			pct = 100
		}
		sum += pct
	}
	score := sum / float64(len(ResourceRushTargets))

	out := miniGameRewards(domain.GameResourceRush, score, 1.3)
	out.Tokens = Round2(out.Tokens + float64(clampNonNeg(collected["token"]))*0.5)
	out.Pixels += clampNonNeg(collected["pixel"]) * 2
	out.Materials += clampNonNeg(collected["material"])
	out.Gems += clampNonNeg(collected["gem"])
	out.Message = fmt.Sprintf("You collected resources with a score of %.1f%%!", score)
	return out
}

// GemHunter scores a grid search by gems found, with an efficiency bonus for
// finding them in fewer attempts.
func GemHunter(gemsFound, totalGems, attempts, gridSize int) MiniGameOutcome {
	if totalGems <= 0 {
		totalGems = 7
	}
	if gridSize < 5 {
		gridSize = 5
	}
	if gemsFound < 0 {
		gemsFound = 0
	}
	if gemsFound > totalGems {
		gemsFound = totalGems
	}

	efficiency := 0.0
	if attempts > 0 {
		efficiency = float64(gemsFound) / float64(attempts)
	}
	score := float64(gemsFound)/float64(totalGems)*100 + efficiency*50
	if score > 100 {
		score = 100
	}

	difficulty := 1.0 + float64(gridSize-5)*0.1
	out := miniGameRewards(domain.GameGemHunter, score, difficulty)
	out.Gems += gemsFound
	out.Message = fmt.Sprintf("You found %d out of %d gems with %d attempts!", gemsFound, totalGems, attempts)
	return out
}

// PatternPredictor scores a sequence prediction: all or nothing.
func PatternPredictor(correct bool, difficulty float64) MiniGameOutcome {
	if difficulty <= 0 {
		difficulty = 1.0
	}
	score := 0.0
	msg := "Incorrect. Better luck next time!"
	if correct {
		score = 100
		msg = "Correct! You predicted the pattern perfectly!"
	}
	out := miniGameRewards(domain.GamePatternPredictor, score, difficulty)
	out.Message = msg
	return out
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
