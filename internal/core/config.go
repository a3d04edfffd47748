package core

// RuntimeConfig contains the settings the platform hands to the game at reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 lets the platform pick one
	Stage    int   // Zero-based stage index to start from
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) FrameSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the summary the game reports back to the platform each tick.
type GameState struct {
	Score    int  // Current score
	HiScore  int  // Best score known to the session
	Stage    int  // One-based stage number
	Lives    int  // Remaining lives
	GameOver bool // Lives exhausted or every stage cleared
	Cleared  bool // Every stage cleared
	Paused   bool // Simulation halted
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
