package config

import "math"

// DifficultyManager derives enemy aggression from stage progress or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(progress int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var p float64
	switch d.cfg.Progression.Type {
	case "progress":
		p = float64(progress) / maxAt
	case "time":
		p = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	p = clampF(p, 0.0, 1.0)
	return d.initialLevel + p*(1.0-d.initialLevel)
}

// ShotSpeed scales an enemy bullet speed by the current level.
func (d *DifficultyManager) ShotSpeed(base float64, progress int, ticks int) float64 {
	return base * (1.0 + d.Level(progress, ticks)*d.cfg.Scaling.ShotSpeedMultiplier)
}

// FireInterval shortens an enemy firing interval as the level rises.
func (d *DifficultyManager) FireInterval(base float64, progress int, ticks int) float64 {
	return base / (1.0 + d.Level(progress, ticks)*d.cfg.Scaling.FireRateMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
