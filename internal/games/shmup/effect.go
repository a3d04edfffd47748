package shmup

// EffectKind selects a visual effect.
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectBigExplosion
	EffectMiss
)

type effectDef struct {
	sprite   SpriteID
	pattern  int
	interval float64
	repeat   int
	life     float64 // Seconds; 0 lets the animation decide
}

var effectDefs = map[EffectKind]effectDef{
	EffectExplosion:    {sprite: SpriteExplosion, pattern: 3, interval: 0.1, repeat: 1},
	EffectBigExplosion: {sprite: SpriteBigExplosion, pattern: 4, interval: 0.15, repeat: 3},
	EffectMiss:         {sprite: SpriteBigExplosion, pattern: 4, interval: 0.1, repeat: 2, life: 1.0},
}

// Effect is a short-lived animation with no collision.
type Effect struct {
	Character
	life float64
}

// Chara exposes the shared entity state.
func (e *Effect) Chara() *Character { return &e.Character }

// Reset zeroes the effect.
func (e *Effect) Reset() { *e = Effect{} }

// Action ends the effect when its lifetime or animation runs out.
func (e *Effect) Action(_ World, dt float64) {
	e.Animate(dt)
	if e.life > 0 {
		e.life -= dt
		if e.life <= 0 {
			e.Staged = false
			return
		}
	}
	if e.AnimDone() {
		e.Staged = false
	}
}

// Hit does nothing.
func (e *Effect) Hit(*Character, World) {}
