package config

import (
	_ "embed"
)

//go:embed defaults/shmup.yaml
var defaultShmupYAML []byte

// DefaultShmupConfig returns the hard-coded configuration used when neither a
// file nor the embedded default can be parsed.
func DefaultShmupConfig() ShmupConfig {
	return ShmupConfig{
		Field: FieldConfig{Width: 480, Height: 320},
		Player: PlayerConfig{
			StartX:         64,
			StartY:         160,
			Speed:          150,
			HitWidth:       6,
			HitHeight:      6,
			GrazeWidth:     32,
			GrazeHeight:    32,
			Lives:          3,
			InvincibleTime: 2.0,
			ShotInterval:   0.1,
			ShotSpeed:      480,
			ShotPower:      1,
		},
		Options: OptionConfig{
			GaugeMax:       100,
			GaugePerOption: 25,
			MaxOptions:     3,
			TrailFrames:    12,
			ShieldDrain:    20,
			ReflectPower:   5,
		},
		Enemies: EnemyConfig{
			ShotSpeed:  90,
			ShotHit:    6,
			GrazePoint: 1,
		},
		Pools: PoolConfig{
			PlayerShots:    64,
			ReflectedShots: 64,
			Enemies:        64,
			EnemyShots:     256,
			Effects:        64,
			Blocks:         192,
			Backs:          128,
		},
		Timing: TimingConfig{
			ClearWait:   5.0,
			RebirthWait: 1.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "progress",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				ShotSpeedMultiplier: 0.6,
				FireRateMultiplier:  0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultShmupYAML
}
