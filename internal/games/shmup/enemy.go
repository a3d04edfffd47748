package shmup

// WorkRegisters is the number of scratch registers an enemy carries for its
// species behavior.
const WorkRegisters = 5

// BehaviorFunc runs one frame of a species state machine.
type BehaviorFunc func(e *Enemy, w World, dt float64)

// DestroyFunc runs when an enemy's hit points reach zero.
type DestroyFunc func(e *Enemy, w World)

// Species describes one kind of enemy.
type Species struct {
	ID           int
	Name         string
	Sprite       SpriteID
	AnimPattern  int
	AnimInterval float64
	HitWidth     float64
	HitHeight    float64
	OffsetX      float64
	OffsetY      float64
	HitPoint     int
	Score        int
	Progress     int // Stage progress granted when the spawn event names none
	Boss         bool
	BlockHit     BlockHitPolicy
	ScrollFactor float64
	Behavior     BehaviorFunc
	Destroy      DestroyFunc
}

// Enemy is an enemy instance driven by its species.
type Enemy struct {
	Character

	Species  *Species
	State    int
	Time     float64 // Seconds since spawn
	Frame    int     // Frames since spawn
	Work     [WorkRegisters]float64
	Score    int
	Progress int
}

// Chara exposes the shared entity state.
func (e *Enemy) Chara() *Character { return &e.Character }

// Reset zeroes the enemy.
func (e *Enemy) Reset() { *e = Enemy{} }

// init applies a species to a freshly acquired enemy.
func (e *Enemy) init(sp *Species, progress int, x, y float64) {
	e.Species = sp
	e.X, e.Y = x, y
	e.PrevX, e.PrevY = x, y
	e.Width, e.Height = sp.HitWidth, sp.HitHeight
	e.OffsetX, e.OffsetY = sp.OffsetX, sp.OffsetY
	e.HitPoint = sp.HitPoint
	e.Power = 1
	e.Sprite = sp.Sprite
	e.Z = 5
	e.AnimPattern, e.AnimInterval = sp.AnimPattern, sp.AnimInterval
	e.ScrollFactor = sp.ScrollFactor
	e.BlockHit = sp.BlockHit
	e.Score = sp.Score
	e.Progress = progress
	if progress <= 0 {
		e.Progress = sp.Progress
	}
}

// Action advances the clocks and runs the species behavior.
func (e *Enemy) Action(w World, dt float64) {
	e.Animate(dt)
	e.Species.Behavior(e, w, dt)
	e.Time += dt
	e.Frame++
}

// Hit takes damage from other and runs the species destroy routine when
// hit points run out.
func (e *Enemy) Hit(other *Character, w World) {
	if !e.Staged {
		return
	}
	e.HitPoint -= other.Power
	if e.HitPoint <= 0 {
		e.Species.Destroy(e, w)
	}
}

// setState switches state and clears the state timer register.
func (e *Enemy) setState(s int) {
	e.State = s
	e.Work[regTimer] = 0
}

// destroyNormal is the destroy routine of ordinary enemies.
func destroyNormal(e *Enemy, w World) {
	w.SpawnEffect(EffectExplosion, e.X, e.Y)
	w.AddScore(e.Score)
	w.AddProgress(e.Progress)
	e.Staged = false
}

// destroyBoss also ends the stage.
func destroyBoss(e *Enemy, w World) {
	w.SpawnEffect(EffectBigExplosion, e.X, e.Y)
	w.AddScore(e.Score)
	w.AddProgress(e.Progress)
	e.Staged = false
	w.BossDefeated()
}
