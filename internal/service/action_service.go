package service

import (
	"context"
	"errors"
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
	ErrUserNotFound = errors.New("user not found")
)

// ActionService runs the core economy actions. Each action locks the user's
// game state row, so concurrent requests for the same user serialize instead
// of double-spending; failed validations roll back untouched.
type ActionService struct {
	db           *pgxpool.Pool
	states       *repository.StateRepository
	buildings    *repository.BuildingRepository
	transactions *repository.TransactionRepository
	cooldowns    *repository.CooldownRepository
	tasks        *repository.TaskRepository
	eventService *EventService
	engine       *game.Engine
}

func NewActionService(db *pgxpool.Pool, eventService *EventService) *ActionService {
	return &ActionService{
		db:           db,
		states:       repository.NewStateRepository(db),
		buildings:    repository.NewBuildingRepository(db),
		transactions: repository.NewTransactionRepository(db),
		cooldowns:    repository.NewCooldownRepository(db),
		tasks:        repository.NewTaskRepository(db),
		eventService: eventService,
		engine:       game.New(game.NewRand()),
	}
}

// env snapshots the wall clock and active events for one action.
func (s *ActionService) env(ctx context.Context) game.Env {
	now := time.Now().UTC()
	events, err := s.eventService.Active(ctx)
	if err != nil {
		// An unreadable event table degrades to "no events", not a failed action.
		logger.Warn("failed to load active events", "error", err)
		events = nil
	}
	return game.Env{Now: now, Events: events}
}

// afterSuccess runs post-commit side effects shared by all actions.
func (s *ActionService) afterSuccess(ctx context.Context, userID int64, action string, res *game.Result) {
	if _, err := s.eventService.MaybeSpawn(ctx); err != nil {
		logger.Warn("event spawn roll failed", "error", err)
	}
	logger.Info("action completed",
		"user_id", userID,
		"action", action,
		"reward", res.Reward,
		"level_up", res.LevelUp)
}

// ClaimDaily hands out the daily login reward, gated to once per 24 hours.
func (s *ActionService) ClaimDaily(ctx context.Context, userID int64) (*game.Result, error) {
	env := s.env(ctx)

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

	cd, err := s.cooldowns.GetWithTx(ctx, tx, userID, domain.CooldownDaily)
	if err != nil {
		return nil, err
	}
	if remaining := cd.Remaining(env.Now); remaining > 0 {
		return game.Fail(st, "Daily reward already claimed! Come back in %s.", game.FormatRemaining(remaining)), nil
	}

	res := s.engine.Daily(st, env)
	if !res.Success {
		return res, nil
	}

	if err := s.states.UpdateWithTx(ctx, tx, st); err != nil {
		return nil, err
	}
	if err := s.cooldowns.SetWithTx(ctx, tx, userID, domain.CooldownDaily, env.Now.Add(config.DailyClaimCooldown)); err != nil {
		return nil, err
	}
	if err := s.recordTx(ctx, tx, userID, res); err != nil {
		return nil, err
	}
	if _, err := s.tasks.AdvanceObjective(ctx, tx, userID, domain.ObjectiveLogin, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.afterSuccess(ctx, userID, "daily", res)
	return res, nil
}

// Mine spends energy on pixel mining.
func (s *ActionService) Mine(ctx context.Context, userID int64) (*game.Result, error) {
	return s.simpleAction(ctx, userID, "mine", domain.ObjectiveMining,
		func(st *domain.GameState, env game.Env) *game.Result {
			return s.engine.Mine(st, env)
		})
}

// CreateArt spends pixels and energy on an artwork.
func (s *ActionService) CreateArt(ctx context.Context, userID int64) (*game.Result, error) {
	return s.simpleAction(ctx, userID, "create_art", domain.ObjectivePixelArt,
		func(st *domain.GameState, env game.Env) *game.Result {
			return s.engine.CreateArt(st, env)
		})
}

// simpleAction is the shared lock-run-persist cycle for actions without
// cooldown gates or extra rows.
func (s *ActionService) simpleAction(ctx context.Context, userID int64, name, objective string,
	run func(*domain.GameState, game.Env) *game.Result) (*game.Result, error) {

	env := s.env(ctx)

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

	res := run(st, env)
	if !res.Success {
		return res, nil
	}

	if err := s.states.UpdateWithTx(ctx, tx, st); err != nil {
		return nil, err
	}
	if err := s.recordTx(ctx, tx, userID, res); err != nil {
		return nil, err
	}
	if _, err := s.tasks.AdvanceObjective(ctx, tx, userID, objective, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.afterSuccess(ctx, userID, name, res)
	return res, nil
}

// Build purchases a building of the given type.
func (s *ActionService) Build(ctx context.Context, userID int64, buildingType string) (*game.Result, error) {
	env := s.env(ctx)

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

	owned, err := s.buildings.CountByTypeWithTx(ctx, tx, st.ID, buildingType)
	if err != nil {
		return nil, err
	}

	res, building := s.engine.Build(st, buildingType, owned, env)
	if !res.Success {
		return res, nil
	}

	building.GameStateID = st.ID
	if err := s.buildings.CreateWithTx(ctx, tx, building); err != nil {
		return nil, err
	}
	if err := s.states.UpdateWithTx(ctx, tx, st); err != nil {
		return nil, err
	}
	if err := s.recordTx(ctx, tx, userID, res); err != nil {
		return nil, err
	}
	if _, err := s.tasks.AdvanceObjective(ctx, tx, userID, domain.ObjectiveBuilding, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.afterSuccess(ctx, userID, "build", res)
	return res, nil
}

// Collect gathers accrued production from every owned building, gated to one
// collection per period.
func (s *ActionService) Collect(ctx context.Context, userID int64) (*game.Result, error) {
	env := s.env(ctx)

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

	cd, err := s.cooldowns.GetWithTx(ctx, tx, userID, domain.CooldownCollect)
	if err != nil {
		return nil, err
	}
	if remaining := cd.Remaining(env.Now); remaining > 0 {
		return game.Fail(st, "Buildings are still producing! Collect again in %s.", game.FormatRemaining(remaining)), nil
	}

	buildings, err := s.buildings.ListForUpdate(ctx, tx, st.ID)
	if err != nil {
		return nil, err
	}

	res := s.engine.Collect(st, buildings, env)
	if !res.Success {
		return res, nil
	}

	for _, b := range buildings {
		if err := s.buildings.TouchCollectionWithTx(ctx, tx, b.ID); err != nil {
			return nil, err
		}
	}
	if err := s.states.UpdateWithTx(ctx, tx, st); err != nil {
		return nil, err
	}
	if err := s.cooldowns.SetWithTx(ctx, tx, userID, domain.CooldownCollect, env.Now.Add(config.CollectionCooldown)); err != nil {
		return nil, err
	}
	if err := s.recordTx(ctx, tx, userID, res); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.afterSuccess(ctx, userID, "collect", res)
	return res, nil
}

// Cooldowns returns every explicit gate set for the user.
func (s *ActionService) Cooldowns(ctx context.Context, userID int64) ([]*domain.Cooldown, error) {
	return s.cooldowns.ListByUser(ctx, userID)
}

func (s *ActionService) recordTx(ctx context.Context, tx pgx.Tx, userID int64, res *game.Result) error {
	if res.TxType == "" {
		return nil
	}
	return s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
		UserID:      userID,
		Type:        res.TxType,
		Amount:      res.TxAmount,
		Description: res.TxDescription,
	})
}
