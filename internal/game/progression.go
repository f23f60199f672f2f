package game

import "pixel_plaza/internal/config"

// LevelUp carries excess experience over as many level thresholds as it
// covers and reports whether at least one level was gained.
func LevelUp(xp, level int) (newXP, newLevel int, leveled bool) {
	for xp >= level*config.XPPerLevel {
		xp -= level * config.XPPerLevel
		level++
		leveled = true
	}
	return xp, level, leveled
}

// XPForLevel is the experience needed to advance past the given level.
func XPForLevel(level int) int {
	return level * config.XPPerLevel
}

// SkillAdvance adds progress toward the next skill level. Progress
// accumulates across actions; excess carries over on level-up.
func SkillAdvance(level, progress, delta int) (newLevel, newProgress int, leveled bool) {
	progress += delta
	for progress >= config.SkillUpThreshold*level {
		progress -= config.SkillUpThreshold * level
		level++
		leveled = true
	}
	return level, progress, leveled
}

// SkillBonus is the linear, uncapped reward multiplier of a skill level.
func SkillBonus(skillLevel int) float64 {
	return 1.0 + float64(skillLevel)*config.SkillLevelBonus
}

// ClampEnergy keeps energy within [0, MaxEnergy].
func ClampEnergy(energy int) int {
	if energy < 0 {
		return 0
	}
	if energy > config.MaxEnergy {
		return config.MaxEnergy
	}
	return energy
}
