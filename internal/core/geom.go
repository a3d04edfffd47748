// Package core provides fundamental types shared by the simulation and the
// platform layer. It has no dependency on Bubble Tea so game logic stays pure
// and testable.
package core

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Box is an axis-aligned bounding box in world units, stored as a center
// and half extents. World space has y pointing up.
type Box struct {
	CX, CY float64
	HW, HH float64
}

// BoxAt builds a box centered on (x, y) with full width w and height h.
func BoxAt(x, y, w, h float64) Box {
	return Box{CX: x, CY: y, HW: w / 2, HH: h / 2}
}

// Left returns the minimum x.
func (b Box) Left() float64 { return b.CX - b.HW }

// Right returns the maximum x.
func (b Box) Right() float64 { return b.CX + b.HW }

// Bottom returns the minimum y.
func (b Box) Bottom() float64 { return b.CY - b.HH }

// Top returns the maximum y.
func (b Box) Top() float64 { return b.CY + b.HH }

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.HW <= 0 || b.HH <= 0 }

// Overlaps reports whether two boxes share interior area.
// Touching edges do not count, and empty boxes never overlap.
func (b Box) Overlaps(o Box) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	if b.Right() <= o.Left() || o.Right() <= b.Left() {
		return false
	}
	if b.Top() <= o.Bottom() || o.Top() <= b.Bottom() {
		return false
	}
	return true
}

// Penetration returns how deep b reaches into o along each axis.
// Values are only meaningful when the boxes overlap.
func (b Box) Penetration(o Box) (dx, dy float64) {
	dx = b.HW + o.HW - absF(b.CX-o.CX)
	dy = b.HH + o.HH - absF(b.CY-o.CY)
	return dx, dy
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
