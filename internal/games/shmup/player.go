package shmup

import (
	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
)

// trailCap bounds the recorded player path that options follow.
const trailCap = 256

type trailPoint struct{ x, y float64 }

// Player is the player ship.
type Player struct {
	Character

	invincible float64 // Seconds of invulnerability left
	shootTimer float64
	fired      bool // Fired during the current frame; options fire with it
	gauge      float64
	shield     bool
	pendX      float64 // Displacement requested by input, applied on the next move
	pendY      float64

	trail     [trailCap]trailPoint
	trailHead int
	trailLen  int
}

// Chara exposes the shared entity state.
func (p *Player) Chara() *Character { return &p.Character }

// Reset zeroes the player.
func (p *Player) Reset() { *p = Player{} }

// spawn places a fresh ship at the start position. The gauge survives.
func (p *Player) spawn(cfg *config.ShmupConfig, invincible float64) {
	gauge := p.gauge
	p.Reset()
	p.gauge = gauge
	p.X, p.Y = cfg.Player.StartX, cfg.Player.StartY
	p.PrevX, p.PrevY = p.X, p.Y
	p.Width, p.Height = cfg.Player.HitWidth, cfg.Player.HitHeight
	p.HitPoint = 1
	p.Power = 1
	p.Sprite = SpritePlayer
	p.Z = 10
	p.AnimPattern, p.AnimInterval = 2, 0.2
	p.BlockHit = BlockHitPlayer
	p.Staged = true
	p.invincible = invincible
}

// Invincible reports whether hits are currently ignored.
func (p *Player) Invincible() bool { return p.invincible > 0 }

// Visible reports whether the ship is drawn this frame; it blinks while invincible.
func (p *Player) Visible() bool {
	return p.Staged && (p.invincible <= 0 || int(p.invincible*10)%2 == 0)
}

// Gauge returns the chicken gauge level.
func (p *Player) Gauge() float64 { return p.gauge }

// Shield reports whether the shield is up.
func (p *Player) Shield() bool { return p.shield }

// OptionCount returns how many options the gauge supports.
func (p *Player) OptionCount(cfg *config.ShmupConfig) int {
	if !p.Staged {
		return 0
	}
	return min(cfg.Options.MaxOptions, int(p.gauge/cfg.Options.GaugePerOption))
}

// request queues an input displacement for the next move.
func (p *Player) request(dx, dy float64) {
	p.pendX += dx
	p.pendY += dy
}

// moveWithin moves the ship by the queued displacement, kept inside the field.
func (p *Player) moveWithin(dt, fieldW, fieldH float64) {
	p.Move(dt, 0, 0)
	p.X += p.pendX
	p.Y += p.pendY
	p.pendX, p.pendY = 0, 0

	hw, hh := p.Width/2, p.Height/2
	p.X = core.ClampF(p.X, hw, fieldW-hw)
	p.Y = core.ClampF(p.Y, hh, fieldH-hh)
}

// Action fires, drains the shield and records the trail.
func (p *Player) Action(w World, dt float64) {
	cfg := w.Config()
	p.Animate(dt)
	p.invincible = max(p.invincible-dt, 0)

	if p.shield {
		p.gauge -= cfg.Options.ShieldDrain * dt
		if p.gauge <= 0 {
			p.gauge = 0
			p.shield = false
		}
	}

	// No shots while the shield is up
	p.fired = false
	p.shootTimer -= dt
	if p.shootTimer <= 0 {
		p.shootTimer = cfg.Player.ShotInterval
		if !p.shield {
			w.FirePlayerShot(p.X+p.Width, p.Y)
			p.fired = true
		}
	}

	p.trail[p.trailHead] = trailPoint{p.X, p.Y}
	p.trailHead = (p.trailHead + 1) % trailCap
	p.trailLen = min(p.trailLen+1, trailCap)
}

// Hit costs a life unless the ship is invincible.
func (p *Player) Hit(_ *Character, w World) {
	if !p.Staged || p.invincible > 0 {
		return
	}
	w.Miss()
}

// graze feeds the gauge.
func (p *Player) graze(points, gaugeMax float64) {
	p.gauge = min(p.gauge+points, gaugeMax)
}

// setShield raises the shield when the gauge has something to spend.
func (p *Player) setShield(on bool) {
	p.shield = on && p.Staged && p.gauge > 0
}

// Trail returns where the ship was the given number of frames ago.
func (p *Player) Trail(framesAgo int) (x, y float64) {
	if p.trailLen == 0 {
		return p.X, p.Y
	}
	framesAgo = min(max(framesAgo, 1), p.trailLen)
	i := (p.trailHead - framesAgo + trailCap) % trailCap
	return p.trail[i].x, p.trail[i].y
}

// Option is a helper ship trailing the player along its recent path.
type Option struct {
	Character
}

// Chara exposes the shared entity state.
func (o *Option) Chara() *Character { return &o.Character }

// Reset zeroes the option.
func (o *Option) Reset() { *o = Option{} }

// follow moves the option to a point on the player's trail.
func (o *Option) follow(x, y float64) {
	o.PrevX, o.PrevY = o.X, o.Y
	o.X, o.Y = x, y
}

// Action fires alongside the player.
func (o *Option) Action(w World, dt float64) {
	o.Animate(dt)
	if w.Player().fired {
		w.FirePlayerShot(o.X+o.Width, o.Y)
	}
}

// Hit does nothing; options only matter to the shield.
func (o *Option) Hit(*Character, World) {}
