// Package config provides YAML-based game configuration loading and
// difficulty management for the shooter.
package config

// ShmupConfig contains all tunable parameters of the shooter.
// Distances are world pixels, speeds are pixels per second and times are seconds.
type ShmupConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Options    OptionConfig     `yaml:"options"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Pools      PoolConfig       `yaml:"pools"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the visible play field.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	Speed          float64 `yaml:"speed"`
	HitWidth       float64 `yaml:"hit_width"`
	HitHeight      float64 `yaml:"hit_height"`
	GrazeWidth     float64 `yaml:"graze_width"`
	GrazeHeight    float64 `yaml:"graze_height"`
	Lives          int     `yaml:"lives"`
	InvincibleTime float64 `yaml:"invincible_time"`
	ShotInterval   float64 `yaml:"shot_interval"`
	ShotSpeed      float64 `yaml:"shot_speed"`
	ShotPower      int     `yaml:"shot_power"`
}

// OptionConfig defines the chicken gauge, the trailing options and the shield.
type OptionConfig struct {
	GaugeMax       float64 `yaml:"gauge_max"`
	GaugePerOption float64 `yaml:"gauge_per_option"`
	MaxOptions     int     `yaml:"max_options"`
	TrailFrames    int     `yaml:"trail_frames"` // History frames between consecutive options
	ShieldDrain    float64 `yaml:"shield_drain"` // Gauge units per second
	ReflectPower   int     `yaml:"reflect_power"`
}

// EnemyConfig holds values shared by every enemy species.
type EnemyConfig struct {
	ShotSpeed  float64 `yaml:"shot_speed"`
	ShotHit    float64 `yaml:"shot_hit"` // Hit box edge of an enemy bullet
	GrazePoint float64 `yaml:"graze_point"`
}

// PoolConfig sets the fixed capacity of every object pool.
type PoolConfig struct {
	PlayerShots    int `yaml:"player_shots"`
	ReflectedShots int `yaml:"reflected_shots"`
	Enemies        int `yaml:"enemies"`
	EnemyShots     int `yaml:"enemy_shots"`
	Effects        int `yaml:"effects"`
	Blocks         int `yaml:"blocks"`
	Backs          int `yaml:"backs"`
}

// TimingConfig defines the pauses between session phases.
type TimingConfig struct {
	ClearWait   float64 `yaml:"clear_wait"`
	RebirthWait float64 `yaml:"rebirth_wait"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty upward.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "progress", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Stage progress or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ShotSpeedMultiplier float64 `yaml:"shot_speed_multiplier"` // Added to enemy shot speed at max difficulty
	FireRateMultiplier  float64 `yaml:"fire_rate_multiplier"`  // Added to enemy fire rate at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
