package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataDirName is the per-user directory holding configs, stages and scores.
const DataDirName = ".shmup"

// DefaultDBPath is where scores and run history are kept unless --db says otherwise.
const DefaultDBPath = "~/" + DataDirName + "/scores.db"

// LoadShmup loads the shooter configuration.
// Search order: customPath -> ~/.shmup/configs/shmup.yaml -> ./configs/shmup.yaml -> embedded default
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadShmup(customPath string) (ShmupConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShmupConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := ParseShmup(data)
		if err != nil {
			return ShmupConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("shmup.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseShmup(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "shmup.yaml")); err == nil {
		if cfg, err := ParseShmup(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseShmup(defaultShmupYAML)
	if err != nil {
		return DefaultShmupConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseShmup decodes a YAML document over the hard-coded defaults and checks
// the result.
func ParseShmup(data []byte) (ShmupConfig, error) {
	cfg := DefaultShmupConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c ShmupConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height)
	}
	pools := map[string]int{
		"player_shots":    c.Pools.PlayerShots,
		"reflected_shots": c.Pools.ReflectedShots,
		"enemies":         c.Pools.Enemies,
		"enemy_shots":     c.Pools.EnemyShots,
		"effects":         c.Pools.Effects,
		"blocks":          c.Pools.Blocks,
		"backs":           c.Pools.Backs,
	}
	for name, n := range pools {
		if n <= 0 {
			return fmt.Errorf("pool %s must have positive capacity, got %d", name, n)
		}
	}
	if c.Player.Lives <= 0 {
		return fmt.Errorf("player lives must be positive, got %d", c.Player.Lives)
	}
	if c.Player.ShotInterval <= 0 {
		return fmt.Errorf("player shot_interval must be positive, got %g", c.Player.ShotInterval)
	}
	if c.Options.GaugePerOption <= 0 {
		return fmt.Errorf("options gauge_per_option must be positive, got %g", c.Options.GaugePerOption)
	}
	return nil
}

// DataDir returns ~/.shmup, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DataDirName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyShmupPreset modifies the config based on a difficulty preset.
func ApplyShmupPreset(cfg *ShmupConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Lives and shot speed shift with the preset
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Enemies.ShotSpeed *= 0.8
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Enemies.ShotSpeed *= 1.25
	}
}
