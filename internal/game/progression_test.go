package game

import (
	"testing"
	"time"

	"pixel_plaza/internal/config"
)

func TestLevelUp(t *testing.T) {
	tests := []struct {
		name       string
		xp, level  int
		wantXP     int
		wantLevel  int
		wantLevels bool
	}{
		{"no level up", 50, 1, 50, 1, false},
		{"exact threshold", 100, 1, 0, 2, true},
		{"single level with carry", 130, 1, 30, 2, true},
		{"multi level jump", 100 + 200 + 40, 1, 40, 3, true},
		{"higher level needs more", 150, 2, 150, 2, false},
		{"higher level crosses", 200, 2, 0, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, level, leveled := LevelUp(tt.xp, tt.level)
			if xp != tt.wantXP || level != tt.wantLevel || leveled != tt.wantLevels {
				t.Errorf("LevelUp(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.xp, tt.level, xp, level, leveled,
					tt.wantXP, tt.wantLevel, tt.wantLevels)
			}
		})
	}
}

func TestSkillAdvance(t *testing.T) {
	tests := []struct {
		name                    string
		level, progress, delta  int
		wantLevel, wantProgress int
		wantUp                  bool
	}{
		{"accumulates", 1, 10, 20, 1, 30, false},
		{"crosses threshold", 1, 45, 10, 2, 5, true},
		{"exact threshold", 1, 40, 10, 2, 0, true},
		{"higher level needs more", 2, 90, 5, 2, 95, false},
		{"higher level crosses", 2, 95, 10, 3, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, progress, up := SkillAdvance(tt.level, tt.progress, tt.delta)
			if level != tt.wantLevel || progress != tt.wantProgress || up != tt.wantUp {
				t.Errorf("SkillAdvance(%d, %d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.level, tt.progress, tt.delta, level, progress, up,
					tt.wantLevel, tt.wantProgress, tt.wantUp)
			}
		})
	}
}

func TestSkillBonus(t *testing.T) {
	if got := SkillBonus(1); got != 1.0+config.SkillLevelBonus {
		t.Errorf("SkillBonus(1) = %v", got)
	}
	if got := SkillBonus(10); got != 1.0+10*config.SkillLevelBonus {
		t.Errorf("SkillBonus(10) = %v", got)
	}
}

func TestClampEnergy(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{55, 55},
		{config.MaxEnergy, config.MaxEnergy},
		{config.MaxEnergy + 30, config.MaxEnergy},
	}
	for _, tt := range tests {
		if got := ClampEnergy(tt.in); got != tt.want {
			t.Errorf("ClampEnergy(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.0}, // float repr of 1.005 is just below
		{1.015, 1.01},
		{2.499, 2.5},
		{0, 0},
		{-1.234, -1.23},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3*time.Hour + 41*time.Minute, "3h 41m"},
		{59 * time.Minute, "0h 59m"},
		{-time.Minute, "0h 0m"},
		{25 * time.Hour, "25h 0m"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
