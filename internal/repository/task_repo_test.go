package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Needs a migrated database; set TEST_DATABASE_URL to run.
func TestAdvanceObjectiveRewindsStaleDaily(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	suffix := time.Now().UnixNano()

	var userID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (tg_id, username, first_name)
		VALUES ($1, $2, 'Pia') RETURNING id`,
		suffix, fmt.Sprintf("rewind_tester_%d", suffix)).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)

	var taskID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO tasks (name, description, task_type, objective_type, objective_value,
		                   token_reward, pixel_reward, experience_reward, is_active)
		VALUES ($1, 'Mine five times today', 'daily', $2, 5, 10, 0, 20, TRUE)
		RETURNING id`,
		fmt.Sprintf("Daily Miner %d", suffix), domain.ObjectiveMining).Scan(&taskID)
	if err != nil {
		t.Fatalf("insert task: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)

	// A row completed two days ago that no sweep or read ever rewound.
	var userTaskID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO user_tasks (user_id, task_id, current_progress, completed,
		                        reward_claimed, last_reset)
		VALUES ($1, $2, 5, TRUE, FALSE, NOW() - INTERVAL '2 days')
		RETURNING id`, userID, taskID).Scan(&userTaskID)
	if err != nil {
		t.Fatalf("insert user task: %v", err)
	}

	repo := NewTaskRepository(pool)
	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	completed, err := repo.AdvanceObjective(ctx, tx, userID, domain.ObjectiveMining, 1)
	if err != nil {
		t.Fatalf("AdvanceObjective: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if len(completed) != 0 {
		t.Errorf("pre-boundary progress completed today's task: %v", completed)
	}

	var progress int
	var done bool
	var lastReset time.Time
	err = pool.QueryRow(ctx, `
		SELECT current_progress, completed, last_reset
		FROM user_tasks WHERE id = $1`, userTaskID).Scan(&progress, &done, &lastReset)
	if err != nil {
		t.Fatalf("reload user task: %v", err)
	}

	if progress != 1 {
		t.Errorf("progress = %d, want 1 (stale row must rewind before the bump)", progress)
	}
	if done {
		t.Error("task still marked completed after crossing the daily boundary")
	}
	if time.Since(lastReset) > time.Minute {
		t.Errorf("last_reset not advanced: %v", lastReset)
	}
}
