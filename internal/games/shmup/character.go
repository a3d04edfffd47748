// Package shmup implements the simulation of a side-scrolling shooter: the
// entities, their pools, collision resolution, enemy behavior and the play
// session that ties them to a scripted stage.
package shmup

import (
	"math"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// blockEps is the overlap below which touching boxes count as apart.
const blockEps = 1e-6

// BlockHitPolicy says what happens when an entity overlaps a block.
type BlockHitPolicy int

const (
	BlockHitNone      BlockHitPolicy = iota // Pass through
	BlockHitMove                            // Pushed out of the block
	BlockHitDisappear                       // Removed from play
	BlockHitPlayer                          // Pushed, and crushed against the screen edge
)

// HitSide is a bit set of the sides of an entity that struck a block.
type HitSide uint8

const (
	HitLeft HitSide = 1 << iota
	HitRight
	HitTop
	HitBottom
)

// Character is the state shared by every entity in play.
//
// Position is the center of the hit box in world pixels with y up. Width and
// Height are the full hit box size. Only Move changes the position, except
// for the push out of a block during collision resolution.
type Character struct {
	X, Y           float64
	PrevX, PrevY   float64
	SpeedX, SpeedY float64
	Width, Height  float64
	OffsetX        float64 // Sprite offset from the hit box center
	OffsetY        float64
	HitPoint       int
	Power          int
	Staged         bool

	Sprite SpriteID
	Z      int

	AnimPattern  int     // Frames in the animation, 0 or 1 for a still image
	AnimInterval float64 // Seconds per frame
	AnimElapsed  float64
	AnimRepeat   int // Loops before the animation ends; 0 loops forever

	ScrollFactor float64 // 0 fixed to the screen, 1 scrolls with the map
	BlockHit     BlockHitPolicy
	BlockHitSide HitSide
}

// Box returns the hit box.
func (c *Character) Box() core.Box {
	return core.BoxAt(c.X, c.Y, c.Width, c.Height)
}

// Move records the previous position and advances by the entity's speed
// minus the share of the scroll it follows.
func (c *Character) Move(dt, scrollX, scrollY float64) {
	c.PrevX, c.PrevY = c.X, c.Y
	c.X += (c.SpeedX - scrollX*c.ScrollFactor) * dt
	c.Y += (c.SpeedY - scrollY*c.ScrollFactor) * dt
}

// IsOutOfStage reports whether the hit box lies entirely outside the field
// grown by one hit box on every side.
func (c *Character) IsOutOfStage(fieldW, fieldH float64) bool {
	b := c.Box()
	return b.Right() < -c.Width || b.Left() > fieldW+c.Width ||
		b.Top() < -c.Height || b.Bottom() > fieldH+c.Height
}

// Animate advances the animation clock.
func (c *Character) Animate(dt float64) {
	if c.AnimPattern > 1 {
		c.AnimElapsed += dt
	}
}

// Frame returns the animation frame to draw.
func (c *Character) Frame() int {
	if c.AnimPattern <= 1 || c.AnimInterval <= 0 {
		return 0
	}
	f := int(c.AnimElapsed / c.AnimInterval)
	if c.AnimRepeat > 0 && f >= c.AnimRepeat*c.AnimPattern {
		return c.AnimPattern - 1
	}
	return f % c.AnimPattern
}

// AnimDone reports whether a finite animation has played all its loops.
func (c *Character) AnimDone() bool {
	if c.AnimRepeat <= 0 || c.AnimPattern <= 0 || c.AnimInterval <= 0 {
		return false
	}
	return c.AnimElapsed >= c.AnimInterval*float64(c.AnimPattern*c.AnimRepeat)
}

// MoveOfBlockHit pushes the entity out of block and records the struck side.
//
// The positions before this frame's move pick the axis: an entity that was
// clear of the block vertically lands on it or bumps it from below, one that
// was clear horizontally hits its side. Only when both spans already
// overlapped does the axis of least penetration decide. An entity resting on
// a floor of adjacent blocks therefore never strikes the seams between them.
// Corner arrivals resolve vertically, so the entity stands on the block.
func (c *Character) MoveOfBlockHit(block *Character) {
	me, bb := c.Box(), block.Box()
	if !me.Overlaps(bb) {
		return
	}

	// Measured against the block's previous position, so a shared scroll cancels out
	relX, relY := c.PrevX-block.PrevX, c.PrevY-block.PrevY
	clearX := math.Abs(relX) >= me.HW+bb.HW-blockEps
	clearY := math.Abs(relY) >= me.HH+bb.HH-blockEps

	vertical := clearY
	if !clearX && !clearY {
		dx, dy := me.Penetration(bb)
		vertical = dy <= dx
	}

	if !vertical {
		if relX < 0 {
			c.X = bb.Left() - me.HW
			c.BlockHitSide |= HitRight
		} else {
			c.X = bb.Right() + me.HW
			c.BlockHitSide |= HitLeft
		}
		return
	}
	if relY < 0 {
		c.Y = bb.Bottom() - me.HH
		c.BlockHitSide |= HitTop
	} else {
		c.Y = bb.Top() + me.HH
		c.BlockHitSide |= HitBottom
	}
}

// DisappearOfBlockHit removes the entity from play.
func (c *Character) DisappearOfBlockHit() {
	c.Staged = false
}
