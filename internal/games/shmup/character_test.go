package shmup

import "testing"

func TestMoveRecordsPrevious(t *testing.T) {
	c := Character{X: 10, Y: 20, SpeedX: 30, SpeedY: -10, ScrollFactor: 1}
	c.Move(0.5, 20, 0)

	if c.PrevX != 10 || c.PrevY != 20 {
		t.Errorf("previous = (%v, %v), expected (10, 20)", c.PrevX, c.PrevY)
	}
	if c.X != 15 || c.Y != 15 {
		t.Errorf("position = (%v, %v), expected (15, 15)", c.X, c.Y)
	}
}

func TestMoveIgnoresScrollWhenFixed(t *testing.T) {
	c := Character{X: 10, SpeedX: 10}
	c.Move(1, 100, 100)
	if c.X != 20 || c.Y != 0 {
		t.Errorf("position = (%v, %v), expected (20, 0)", c.X, c.Y)
	}
}

func TestMoveOfBlockHit(t *testing.T) {
	block := Character{X: 100, Y: 100, PrevX: 100, PrevY: 100, Width: 16, Height: 16}

	tests := []struct {
		name         string
		x, y         float64
		prevX, prevY float64
		wantX, wantY float64
		wantSide     HitSide
	}{
		{"from left", 88, 100, 80, 100, 87, 100, HitRight},
		{"from right", 112, 100, 120, 100, 113, 100, HitLeft},
		{"from above", 100, 112, 100, 120, 100, 113, HitBottom},
		{"from below", 100, 88, 100, 80, 100, 87, HitTop},
		{"corner tie goes vertical", 88, 112, 80, 120, 88, 113, HitBottom},
		{"sinking at a seam lands", 87.5, 110, 86, 113, 87.5, 113, HitBottom},
		{"already inside uses least penetration", 100, 107, 100, 107, 100, 113, HitBottom},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Character{X: tc.x, Y: tc.y, PrevX: tc.prevX, PrevY: tc.prevY, Width: 10, Height: 10}
			c.MoveOfBlockHit(&block)
			if c.X != tc.wantX || c.Y != tc.wantY {
				t.Errorf("position = (%v, %v), expected (%v, %v)", c.X, c.Y, tc.wantX, tc.wantY)
			}
			if c.BlockHitSide != tc.wantSide {
				t.Errorf("side = %v, expected %v", c.BlockHitSide, tc.wantSide)
			}
			if c.Box().Overlaps(block.Box()) {
				t.Error("entity still overlaps the block")
			}
		})
	}
}

func TestMoveOfBlockHitFollowsScrollingBlock(t *testing.T) {
	// Both scrolled 4px left this frame; the entity only sank onto the block
	block := Character{X: 96, Y: 100, PrevX: 100, PrevY: 100, Width: 16, Height: 16}
	c := Character{X: 83.5, Y: 111, PrevX: 87.5, PrevY: 113, Width: 10, Height: 10}

	c.MoveOfBlockHit(&block)

	if c.BlockHitSide != HitBottom || c.Y != 113 || c.X != 83.5 {
		t.Errorf("got (%v, %v) side %v, expected (83.5, 113) standing on the block", c.X, c.Y, c.BlockHitSide)
	}
}

func TestMoveOfBlockHitNoOverlap(t *testing.T) {
	block := Character{X: 100, Y: 100, Width: 16, Height: 16}
	c := Character{X: 50, Y: 50, Width: 10, Height: 10}
	c.MoveOfBlockHit(&block)
	if c.X != 50 || c.Y != 50 || c.BlockHitSide != 0 {
		t.Errorf("untouched entity moved to (%v, %v) side %v", c.X, c.Y, c.BlockHitSide)
	}
}

func TestIsOutOfStage(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 100, 100, false},
		{"just past the left edge", -5, 100, false},
		{"far left", -30, 100, true},
		{"far right", 520, 100, true},
		{"far below", 100, -30, true},
		{"far above", 100, 360, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Character{X: tc.x, Y: tc.y, Width: 10, Height: 10}
			if got := c.IsOutOfStage(480, 320); got != tc.expected {
				t.Errorf("IsOutOfStage() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAnimation(t *testing.T) {
	c := Character{AnimPattern: 3, AnimInterval: 0.1, AnimRepeat: 1}

	c.Animate(0.15)
	if c.Frame() != 1 {
		t.Errorf("Frame() = %d, expected 1", c.Frame())
	}
	if c.AnimDone() {
		t.Error("animation should not be done yet")
	}

	c.Animate(0.2)
	if !c.AnimDone() {
		t.Error("animation should be done after one loop")
	}
	if c.Frame() != 2 {
		t.Errorf("finished animation should hold the last frame, got %d", c.Frame())
	}
}

func TestAnimationLoopsForever(t *testing.T) {
	c := Character{AnimPattern: 2, AnimInterval: 0.1}
	c.Animate(1.05)
	if c.AnimDone() {
		t.Error("looping animation should never finish")
	}
	if c.Frame() != 0 {
		t.Errorf("Frame() = %d, expected 0", c.Frame())
	}
}
