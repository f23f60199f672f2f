package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/game"
	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUnknownGame    = errors.New("unknown mini-game")
	ErrGameOnCooldown = errors.New("mini-game on cooldown")
)

// MiniGamePlay is the client-reported round outcome. Which fields matter
// depends on the game type; the rest are ignored.
type MiniGamePlay struct {
	MatchesFound    int            `json:"matches_found"`
	MatchesRequired int            `json:"matches_required"`
	Solution        []int          `json:"solution"`
	PuzzleSize      int            `json:"puzzle_size"`
	Collected       map[string]int `json:"collected"`
	GemsFound       int            `json:"gems_found"`
	TotalGems       int            `json:"total_gems"`
	Attempts        int            `json:"attempts"`
	GridSize        int            `json:"grid_size"`
	Correct         bool           `json:"correct"`
	Difficulty      float64        `json:"difficulty"`
}

// MiniGameService scores rounds and pays rewards, one play per game type per
// cooldown period.
type MiniGameService struct {
	db           *pgxpool.Pool
	states       *repository.StateRepository
	results      *repository.MiniGameRepository
	cooldowns    *repository.CooldownRepository
	transactions *repository.TransactionRepository
}

func NewMiniGameService(db *pgxpool.Pool) *MiniGameService {
	return &MiniGameService{
		db:           db,
		states:       repository.NewStateRepository(db),
		results:      repository.NewMiniGameRepository(db),
		cooldowns:    repository.NewCooldownRepository(db),
		transactions: repository.NewTransactionRepository(db),
	}
}

func scoreRound(gameType string, play *MiniGamePlay) (*game.MiniGameOutcome, error) {
	switch gameType {
	case domain.GamePixelMatch:
		out := game.PixelMatch(play.MatchesFound, play.MatchesRequired)
		return &out, nil
	case domain.GameTokenPuzzle:
		out := game.TokenPuzzle(play.Solution, play.PuzzleSize)
		return &out, nil
	case domain.GameResourceRush:
		out := game.ResourceRush(play.Collected)
		return &out, nil
	case domain.GameGemHunter:
		out := game.GemHunter(play.GemsFound, play.TotalGems, play.Attempts, play.GridSize)
		return &out, nil
	case domain.GamePatternPredictor:
		out := game.PatternPredictor(play.Correct, play.Difficulty)
		return &out, nil
	}
	return nil, ErrUnknownGame
}

// Play scores one round and credits the rewards.
func (s *MiniGameService) Play(ctx context.Context, userID int64, gameType string, play *MiniGamePlay) (*game.MiniGameOutcome, error) {
	now := time.Now().UTC()
	category := domain.CooldownMiniGame + gameType

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	st, err := s.states.GetForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	cd, err := s.cooldowns.GetWithTx(ctx, tx, userID, category)
	if err != nil {
		return nil, err
	}
	if remaining := cd.Remaining(now); remaining > 0 {
		return nil, fmt.Errorf("%w: available in %s", ErrGameOnCooldown, game.FormatRemaining(remaining))
	}

	out, err := scoreRound(gameType, play)
	if err != nil {
		return nil, err
	}

	st.TokenBalance = game.Round2(st.TokenBalance + out.Tokens)
	st.Pixels += out.Pixels
	st.Materials += out.Materials
	st.Gems += out.Gems
	var leveled bool
	st.Experience, st.Level, leveled = game.LevelUp(st.Experience+out.XP, st.Level)
	if leveled {
		out.Message += fmt.Sprintf(" Level up! You are now level %d.", st.Level)
	}

	if err := s.states.UpdateWithTx(ctx, tx, st); err != nil {
		return nil, err
	}
	err = s.results.CreateWithTx(ctx, tx, &domain.MiniGameResult{
		UserID:          userID,
		GameType:        gameType,
		Score:           out.Score,
		RewardTokens:    out.Tokens,
		RewardPixels:    out.Pixels,
		RewardMaterials: out.Materials,
		RewardGems:      out.Gems,
		RewardXP:        out.XP,
	})
	if err != nil {
		return nil, err
	}
	if out.Tokens > 0 {
		err = s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TxMiniGame,
			Amount:      out.Tokens,
			Description: fmt.Sprintf("%s reward (score %.1f)", game.MiniGameName(gameType), out.Score),
		})
		if err != nil {
			return nil, err
		}
	}
	if err := s.cooldowns.SetWithTx(ctx, tx, userID, category, now.Add(config.MiniGameCooldown)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("mini-game played",
		"user_id", userID,
		"game", gameType,
		"score", out.Score,
		"tokens", out.Tokens)
	return out, nil
}

// GameInfo describes one mini-game and its availability for a user.
type GameInfo struct {
	GameType    string `json:"game_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	AvailableIn string `json:"available_in,omitempty"`
}

// List returns every mini-game with per-user availability.
func (s *MiniGameService) List(ctx context.Context, userID int64) ([]GameInfo, error) {
	cds, err := s.cooldowns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]*domain.Cooldown, len(cds))
	for _, cd := range cds {
		byCategory[cd.Category] = cd
	}

	now := time.Now().UTC()
	infos := make([]GameInfo, 0, len(domain.MiniGameTypes))
	for _, gt := range domain.MiniGameTypes {
		info := GameInfo{
			GameType:    gt,
			Name:        game.MiniGameName(gt),
			Description: game.MiniGameDescription(gt),
			Available:   true,
		}
		if remaining := byCategory[domain.CooldownMiniGame+gt].Remaining(now); remaining > 0 {
			info.Available = false
			info.AvailableIn = game.FormatRemaining(remaining)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
