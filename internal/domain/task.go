package domain

import "time"

// TaskType - cadence of a task.
type TaskType string

const (
	TaskTypeOneTime TaskType = "one_time"
	TaskTypeDaily   TaskType = "daily"
	TaskTypeWeekly  TaskType = "weekly"
)

// Objective types tracked by the task system.
const (
	ObjectiveLogin    = "login"
	ObjectiveMining   = "mining"
	ObjectivePixelArt = "pixel_art"
	ObjectiveBuilding = "building"
	ObjectiveWallet   = "wallet"
	ObjectiveReferral = "referral"
)

// Task is a catalog entry.
type Task struct {
	ID               int64    `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	Description      string   `db:"description" json:"description"`
	TaskType         TaskType `db:"task_type" json:"task_type"`
	ObjectiveType    string   `db:"objective_type" json:"objective_type"`
	ObjectiveValue   int      `db:"objective_value" json:"objective_value"`
	TokenReward      float64  `db:"token_reward" json:"token_reward"`
	PixelReward      int      `db:"pixel_reward" json:"pixel_reward"`
	ExperienceReward int      `db:"experience_reward" json:"experience_reward"`
	IsActive         bool     `db:"is_active" json:"is_active"`
}

// UserTask is the per-user progress row for one task.
type UserTask struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	TaskID          int64      `db:"task_id" json:"task_id"`
	CurrentProgress int        `db:"current_progress" json:"current_progress"`
	Completed       bool       `db:"completed" json:"completed"`
	RewardClaimed   bool       `db:"reward_claimed" json:"reward_claimed"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	LastReset       time.Time  `db:"last_reset" json:"last_reset"`
}

// UserTaskWithDetails joins progress with its catalog entry for API responses.
type UserTaskWithDetails struct {
	UserTask
	Task Task `json:"task"`
}

// ShouldReset reports whether a daily/weekly task crossed its reset boundary.
// Daily tasks reset at midnight UTC, weekly tasks on Monday 00:00 UTC.
func (ut *UserTask) ShouldReset(task *Task, now time.Time) bool {
	now = now.UTC()
	last := ut.LastReset.UTC()

	switch task.TaskType {
	case TaskTypeDaily:
		y1, m1, d1 := last.Date()
		y2, m2, d2 := now.Date()
		return y1 != y2 || m1 != m2 || d1 != d2
	case TaskTypeWeekly:
		return last.Before(startOfWeek(now))
	}
	return false
}

// CanClaim reports whether the reward is claimable.
func (ut *UserTask) CanClaim() bool {
	return ut.Completed && !ut.RewardClaimed
}

// Progress returns completion percentage capped at 100.
func (ut *UserTask) Progress(objectiveValue int) int {
	if objectiveValue <= 0 {
		return 100
	}
	p := (ut.CurrentProgress * 100) / objectiveValue
	if p > 100 {
		p = 100
	}
	return p
}

func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -daysSinceMonday).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
