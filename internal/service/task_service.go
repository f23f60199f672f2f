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
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNotCompleted = errors.New("task not completed")
	ErrRewardClaimed    = errors.New("reward already claimed")
)

// TaskService tracks task progress and hands out task rewards. Daily tasks
// reset at midnight UTC, weekly tasks on Monday 00:00 UTC; resets apply at
// read time as well, so a stale row never pays out across a boundary.
type TaskService struct {
	db           *pgxpool.Pool
	tasks        *repository.TaskRepository
	states       *repository.StateRepository
	transactions *repository.TransactionRepository

	// When set, a claimed one-time task stays claimed forever. When unset,
	// claiming rewinds the task so it can be done again.
	lockOneTime bool
}

func NewTaskService(db *pgxpool.Pool, lockOneTime bool) *TaskService {
	return &TaskService{
		db:           db,
		tasks:        repository.NewTaskRepository(db),
		states:       repository.NewStateRepository(db),
		transactions: repository.NewTransactionRepository(db),
		lockOneTime:  lockOneTime,
	}
}

// Seed loads the default task catalog. Safe to call on every start.
func (s *TaskService) Seed(ctx context.Context) error {
	return s.tasks.Seed(ctx, config.DefaultTasks)
}

// EnsureUserTasks creates missing progress rows for every active task.
func (s *TaskService) EnsureUserTasks(ctx context.Context, userID int64) error {
	return s.tasks.EnsureUserTasks(ctx, userID)
}

// TaskView is one task with the user's progress, shaped for API responses.
type TaskView struct {
	TaskID          int64           `json:"task_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	TaskType        domain.TaskType `json:"task_type"`
	ObjectiveType   string          `json:"objective_type"`
	ObjectiveValue  int             `json:"objective_value"`
	CurrentProgress int             `json:"current_progress"`
	ProgressPercent int             `json:"progress_percent"`
	Completed       bool            `json:"completed"`
	RewardClaimed   bool            `json:"reward_claimed"`
	TokenReward     float64         `json:"token_reward"`
	PixelReward     int             `json:"pixel_reward"`
	XPReward        int             `json:"xp_reward"`
}

// List returns the user's tasks, lazily resetting rows that crossed their
// boundary since the last sweep.
func (s *TaskService) List(ctx context.Context, userID int64) ([]TaskView, error) {
	if err := s.tasks.EnsureUserTasks(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]TaskView, 0, len(rows))
	for _, d := range rows {
		if d.UserTask.ShouldReset(&d.Task, now) {
			if err := s.tasks.ResetUserTask(ctx, d.UserTask.ID); err != nil {
				return nil, err
			}
			d.UserTask.CurrentProgress = 0
			d.UserTask.Completed = false
			d.UserTask.RewardClaimed = false
		}

		views = append(views, TaskView{
			TaskID:          d.Task.ID,
			Name:            d.Task.Name,
			Description:     d.Task.Description,
			TaskType:        d.Task.TaskType,
			ObjectiveType:   d.Task.ObjectiveType,
			ObjectiveValue:  d.Task.ObjectiveValue,
			CurrentProgress: d.UserTask.CurrentProgress,
			ProgressPercent: d.UserTask.Progress(d.Task.ObjectiveValue),
			Completed:       d.UserTask.Completed,
			RewardClaimed:   d.UserTask.RewardClaimed,
			TokenReward:     d.Task.TokenReward,
			PixelReward:     d.Task.PixelReward,
			XPReward:        d.Task.ExperienceReward,
		})
	}
	return views, nil
}

// ClaimResult is what a successful claim paid out.
type ClaimResult struct {
	TaskName string  `json:"task_name"`
	Tokens   float64 `json:"tokens"`
	Pixels   int     `json:"pixels"`
	XP       int     `json:"xp"`
	LevelUp  bool    `json:"level_up,omitempty"`
	Message  string  `json:"message"`
}

// Claim pays out a completed task's reward.
func (s *TaskService) Claim(ctx context.Context, userID, taskID int64) (*ClaimResult, error) {
	now := time.Now().UTC()

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

	d, err := s.tasks.GetUserTaskForUpdate(ctx, tx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if d.UserTask.ShouldReset(&d.Task, now) {
		if err := s.tasks.ResetUserTaskWithTx(ctx, tx, d.UserTask.ID); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, ErrTaskNotCompleted
	}

	if !d.UserTask.CanClaim() {
		if d.UserTask.RewardClaimed {
			return nil, ErrRewardClaimed
		}
		return nil, ErrTaskNotCompleted
	}

	st.TokenBalance += d.Task.TokenReward
	st.Pixels += d.Task.PixelReward
	st.TasksCompleted++
	var leveled bool
	st.Experience, st.Level, leveled = game.LevelUp(
		st.Experience+d.Task.ExperienceReward, st.Level)

	if s.lockOneTime || d.Task.TaskType != domain.TaskTypeOneTime {
		d.UserTask.RewardClaimed = true
		if err := s.tasks.UpdateProgressWithTx(ctx, tx, &d.UserTask); err != nil {
			return nil, err
		}
	} else {
		// Reclaimable mode: a one-time task rewinds after payout.
		if err := s.tasks.ResetUserTaskWithTx(ctx, tx, d.UserTask.ID); err != nil {
			return nil, err
		}
	}

	if err := s.states.UpdateWithTx(ctx, tx, st); err != nil {
		return nil, err
	}
	err = s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxTaskReward,
		Amount:      d.Task.TokenReward,
		Description: fmt.Sprintf("Reward for task: %s", d.Task.Name),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("task reward claimed",
		"user_id", userID,
		"task_id", taskID,
		"task", d.Task.Name,
		"tokens", d.Task.TokenReward)

	return &ClaimResult{
		TaskName: d.Task.Name,
		Tokens:   d.Task.TokenReward,
		Pixels:   d.Task.PixelReward,
		XP:       d.Task.ExperienceReward,
		LevelUp:  leveled,
		Message:  fmt.Sprintf("Task completed: %s!", d.Task.Name),
	}, nil
}

// AdvanceWallet bumps wallet objectives after the user sets an address.
func (s *TaskService) AdvanceWallet(ctx context.Context, userID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.tasks.AdvanceObjective(ctx, tx, userID, domain.ObjectiveWallet, 1); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ResetDaily rewinds every daily task. Runs from the midnight UTC job.
func (s *TaskService) ResetDaily(ctx context.Context) error {
	n, err := s.tasks.ResetByType(ctx, domain.TaskTypeDaily)
	if err != nil {
		return err
	}
	logger.Info("daily tasks reset", "rows", n)
	return nil
}

// ResetWeekly rewinds every weekly task. Runs from the Monday 00:00 UTC job.
func (s *TaskService) ResetWeekly(ctx context.Context) error {
	n, err := s.tasks.ResetByType(ctx, domain.TaskTypeWeekly)
	if err != nil {
		return err
	}
	logger.Info("weekly tasks reset", "rows", n)
	return nil
}
