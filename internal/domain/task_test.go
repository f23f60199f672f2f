package domain

import (
	"testing"
	"time"
)

func TestShouldReset(t *testing.T) {
	// Wednesday, 2026-04-15.
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		taskType  TaskType
		lastReset time.Time
		want      bool
	}{
		{"daily same day", TaskTypeDaily, time.Date(2026, 4, 15, 0, 30, 0, 0, time.UTC), false},
		{"daily previous day", TaskTypeDaily, time.Date(2026, 4, 14, 23, 59, 0, 0, time.UTC), true},
		{"daily last month", TaskTypeDaily, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), true},
		{"daily non-UTC zone same UTC day", TaskTypeDaily,
			time.Date(2026, 4, 15, 2, 0, 0, 0, time.FixedZone("X", 3600)), false},
		{"weekly same week", TaskTypeWeekly, time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC), false}, // Monday
		{"weekly sunday before", TaskTypeWeekly, time.Date(2026, 4, 12, 23, 0, 0, 0, time.UTC), true},
		{"weekly long ago", TaskTypeWeekly, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"one-time never resets", TaskTypeOneTime, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ut := &UserTask{LastReset: tt.lastReset}
			task := &Task{TaskType: tt.taskType}
			if got := ut.ShouldReset(task, now); got != tt.want {
				t.Errorf("ShouldReset(%s, last=%v) = %v, want %v",
					tt.taskType, tt.lastReset, got, tt.want)
			}
		})
	}
}

func TestCanClaim(t *testing.T) {
	tests := []struct {
		name                     string
		completed, rewardClaimed bool
		want                     bool
	}{
		{"completed unclaimed", true, false, true},
		{"completed claimed", true, true, false},
		{"incomplete", false, false, false},
	}
	for _, tt := range tests {
		ut := &UserTask{Completed: tt.completed, RewardClaimed: tt.rewardClaimed}
		if got := ut.CanClaim(); got != tt.want {
			t.Errorf("%s: CanClaim() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTaskProgress(t *testing.T) {
	tests := []struct {
		progress, objective, want int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{15, 10, 100},
		{1, 0, 100},
	}
	for _, tt := range tests {
		ut := &UserTask{CurrentProgress: tt.progress}
		if got := ut.Progress(tt.objective); got != tt.want {
			t.Errorf("Progress(%d/%d) = %d, want %d", tt.progress, tt.objective, got, tt.want)
		}
	}
}
