package shmup

import (
	"math"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup/nway"
)

// Shot is a player-side bullet: fired by the ship and its options, or an
// enemy bullet turned around by the shield.
type Shot struct {
	Character
	Reflected bool
}

// Chara exposes the shared entity state.
func (s *Shot) Chara() *Character { return &s.Character }

// Reset zeroes the shot.
func (s *Shot) Reset() { *s = Shot{} }

// Action animates the shot; it flies straight.
func (s *Shot) Action(_ World, dt float64) { s.Animate(dt) }

// Hit removes the shot.
func (s *Shot) Hit(*Character, World) { s.Staged = false }

// Burst turns an enemy bullet into a spread after a delay.
type Burst struct {
	Delay   float64 // Seconds after firing
	Count   int
	Spacing float64 // Radians between bullets; 0 spreads a full ring
	Speed   float64
	Aimed   bool // Center the spread on the player instead of the heading
}

// EnemyShot is an enemy bullet.
type EnemyShot struct {
	Character
	GrazePoint float64

	angle    float64
	speed    float64
	time     float64
	grazed   bool
	burst    Burst
	bursting bool
}

// Chara exposes the shared entity state.
func (s *EnemyShot) Chara() *Character { return &s.Character }

// Reset zeroes the shot.
func (s *EnemyShot) Reset() { *s = EnemyShot{} }

// aim sets the heading and speed.
func (s *EnemyShot) aim(angle, speed float64) {
	s.angle, s.speed = angle, speed
	s.SpeedX = math.Cos(angle) * speed
	s.SpeedY = math.Sin(angle) * speed
}

// Action counts down a pending burst and splits the shot when it fires.
func (s *EnemyShot) Action(w World, dt float64) {
	s.Animate(dt)
	s.time += dt
	if !s.bursting || s.time < s.burst.Delay {
		return
	}

	center := s.angle
	if s.burst.Aimed {
		pl := w.Player()
		center = nway.DestAngle(s.X, s.Y, pl.X, pl.Y)
	}
	if s.burst.Spacing == 0 {
		w.FireRadial(s.X, s.Y, center, s.burst.Count, s.burst.Speed)
	} else {
		w.FireNWay(s.X, s.Y, center, s.burst.Count, s.burst.Spacing, s.burst.Speed)
	}
	s.bursting = false
	s.Staged = false
}

// Hit removes the shot.
func (s *EnemyShot) Hit(*Character, World) { s.Staged = false }
