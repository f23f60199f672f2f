package repository

import (
	"context"
	"errors"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Seed inserts the task catalog, skipping rows that already exist.
// Task names are the natural key.
func (r *TaskRepository) Seed(ctx context.Context, specs []config.TaskSpec) error {
	for _, s := range specs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO tasks (name, description, task_type, objective_type, objective_value,
			                    token_reward, pixel_reward, experience_reward, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
			 ON CONFLICT (name) DO NOTHING`,
			s.Name, s.Description, s.TaskType, s.ObjectiveType, s.ObjectiveValue,
			s.TokenReward, s.PixelReward, s.ExperienceReward)
		if err != nil {
			return err
		}
	}
	return nil
}

// EnsureUserTasks creates missing user_task rows for every active task.
func (r *TaskRepository) EnsureUserTasks(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_tasks (user_id, task_id, last_reset)
		SELECT $1, t.id, NOW()
		FROM tasks t
		WHERE t.is_active
		ON CONFLICT (user_id, task_id) DO NOTHING`, userID)
	return err
}

const userTaskJoinColumns = `
	ut.id, ut.user_id, ut.task_id, ut.current_progress, ut.completed,
	ut.reward_claimed, ut.completed_at, ut.last_reset,
	t.id, t.name, t.description, t.task_type,
	t.objective_type, t.objective_value,
	t.token_reward, t.pixel_reward, t.experience_reward, t.is_active`

func scanUserTask(row pgx.Row) (*domain.UserTaskWithDetails, error) {
	var d domain.UserTaskWithDetails
	err := row.Scan(
		&d.UserTask.ID, &d.UserTask.UserID, &d.UserTask.TaskID,
		&d.UserTask.CurrentProgress, &d.UserTask.Completed,
		&d.UserTask.RewardClaimed, &d.UserTask.CompletedAt, &d.UserTask.LastReset,
		&d.Task.ID, &d.Task.Name, &d.Task.Description, &d.Task.TaskType,
		&d.Task.ObjectiveType, &d.Task.ObjectiveValue,
		&d.Task.TokenReward, &d.Task.PixelReward, &d.Task.ExperienceReward, &d.Task.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetUserTasks returns every active task joined with the user's progress.
func (r *TaskRepository) GetUserTasks(ctx context.Context, userID int64) ([]*domain.UserTaskWithDetails, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userTaskJoinColumns+`
		FROM user_tasks ut
		JOIN tasks t ON t.id = ut.task_id
		WHERE ut.user_id = $1 AND t.is_active
		ORDER BY t.task_type, t.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.UserTaskWithDetails
	for rows.Next() {
		d, err := scanUserTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

// GetUserTaskForUpdate locks one user task row with its task details.
func (r *TaskRepository) GetUserTaskForUpdate(ctx context.Context, tx pgx.Tx, userID, taskID int64) (*domain.UserTaskWithDetails, error) {
	d, err := scanUserTask(tx.QueryRow(ctx, `
		SELECT `+userTaskJoinColumns+`
		FROM user_tasks ut
		JOIN tasks t ON t.id = ut.task_id
		WHERE ut.user_id = $1 AND ut.task_id = $2
		FOR UPDATE OF ut`, userID, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// UpdateProgressWithTx writes progress and completion flags back.
func (r *TaskRepository) UpdateProgressWithTx(ctx context.Context, tx pgx.Tx, ut *domain.UserTask) error {
	_, err := tx.Exec(ctx, `
		UPDATE user_tasks
		SET current_progress = $2, completed = $3, reward_claimed = $4,
		    completed_at = $5, last_reset = $6
		WHERE id = $1`,
		ut.ID, ut.CurrentProgress, ut.Completed, ut.RewardClaimed, ut.CompletedAt, ut.LastReset)
	return err
}

// resetStaleUserTasks rewinds the user's daily and weekly rows whose
// last_reset predates the current period. Same boundaries as
// UserTask.ShouldReset: midnight UTC for daily, Monday 00:00 UTC for weekly.
func (r *TaskRepository) resetStaleUserTasks(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE user_tasks ut
		SET current_progress = 0, completed = FALSE, reward_claimed = FALSE,
		    completed_at = NULL, last_reset = NOW()
		FROM tasks t
		WHERE t.id = ut.task_id
		  AND ut.user_id = $1
		  AND t.is_active
		  AND ((t.task_type = 'daily' AND
		        (ut.last_reset AT TIME ZONE 'UTC')::date < (NOW() AT TIME ZONE 'UTC')::date)
		    OR (t.task_type = 'weekly' AND
		        date_trunc('week', ut.last_reset AT TIME ZONE 'UTC') <
		        date_trunc('week', NOW() AT TIME ZONE 'UTC')))`, userID)
	return err
}

// AdvanceObjective bumps progress on every open task matching an objective
// type and marks those that reached their target complete. Returns the names
// of tasks completed by this bump. Stale daily/weekly rows are rewound first,
// so progress from before a boundary never counts toward the new period.
func (r *TaskRepository) AdvanceObjective(ctx context.Context, tx pgx.Tx, userID int64, objective string, delta int) ([]string, error) {
	if err := r.resetStaleUserTasks(ctx, tx, userID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		UPDATE user_tasks ut
		SET current_progress = LEAST(ut.current_progress + $3, t.objective_value),
		    completed = (ut.current_progress + $3) >= t.objective_value,
		    completed_at = CASE
		        WHEN (ut.current_progress + $3) >= t.objective_value AND ut.completed_at IS NULL
		        THEN NOW() ELSE ut.completed_at END
		FROM tasks t
		WHERE t.id = ut.task_id
		  AND ut.user_id = $1
		  AND t.objective_type = $2
		  AND t.is_active
		  AND NOT ut.completed
		RETURNING t.name, ut.completed`, userID, objective, delta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completed []string
	for rows.Next() {
		var name string
		var done bool
		if err := rows.Scan(&name, &done); err != nil {
			return nil, err
		}
		if done {
			completed = append(completed, name)
		}
	}
	return completed, rows.Err()
}

// ResetByType rewinds daily or weekly tasks for everyone. One-time tasks are
// never passed here.
func (r *TaskRepository) ResetByType(ctx context.Context, taskType domain.TaskType) (int64, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE user_tasks ut
		SET current_progress = 0, completed = FALSE, reward_claimed = FALSE,
		    completed_at = NULL, last_reset = NOW()
		FROM tasks t
		WHERE t.id = ut.task_id AND t.task_type = $1`, taskType)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

const resetUserTaskSQL = `
	UPDATE user_tasks
	SET current_progress = 0, completed = FALSE, reward_claimed = FALSE,
	    completed_at = NULL, last_reset = NOW()
	WHERE id = $1`

// ResetUserTask rewinds a single stale row in place. Used for read-time
// resets when a request arrives after a boundary but before the sweep.
func (r *TaskRepository) ResetUserTask(ctx context.Context, userTaskID int64) error {
	_, err := r.db.Exec(ctx, resetUserTaskSQL, userTaskID)
	return err
}

// ResetUserTaskWithTx is ResetUserTask inside an existing transaction.
func (r *TaskRepository) ResetUserTaskWithTx(ctx context.Context, tx pgx.Tx, userTaskID int64) error {
	_, err := tx.Exec(ctx, resetUserTaskSQL, userTaskID)
	return err
}
