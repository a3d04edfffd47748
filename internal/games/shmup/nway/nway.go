// Package nway generates bullet-pattern angles.
//
// Angles are radians. Zero points along +x, the direction the stage scrolls
// toward, and positive angles turn counter-clockwise with y pointing up.
// Degrees only appear at the data-file boundary through Radians and Degrees.
package nway

import "math"

// FromCenter returns count angles spread around center, spacing radians apart.
// Odd counts put one bullet exactly on center; even counts straddle it.
// A count below one yields nil.
func FromCenter(center float64, count int, spacing float64) []float64 {
	if count < 1 {
		return nil
	}
	return AppendFromCenter(make([]float64, 0, count), center, count, spacing)
}

// AppendFromCenter is FromCenter writing into dst, for callers that reuse a
// scratch slice every frame.
func AppendFromCenter(dst []float64, center float64, count int, spacing float64) []float64 {
	if count < 1 {
		return dst
	}
	first := center - spacing*float64(count-1)/2
	for i := range count {
		dst = append(dst, first+spacing*float64(i))
	}
	return dst
}

// DestAngle returns the angle from (sx, sy) to (dx, dy).
func DestAngle(sx, sy, dx, dy float64) float64 {
	return math.Atan2(dy-sy, dx-sx)
}

// TowardTarget spreads count bullets around the direction from the source to
// the target.
func TowardTarget(sx, sy, dx, dy float64, count int, spacing float64) []float64 {
	return FromCenter(DestAngle(sx, sy, dx, dy), count, spacing)
}

// Radial returns count angles evenly dividing a full turn, beginning at start.
func Radial(start float64, count int) []float64 {
	if count < 1 {
		return nil
	}
	return AppendRadial(make([]float64, 0, count), start, count)
}

// AppendRadial is Radial writing into dst.
func AppendRadial(dst []float64, start float64, count int) []float64 {
	if count < 1 {
		return dst
	}
	step := 2 * math.Pi / float64(count)
	return AppendFromCenter(dst, start+math.Pi-step/2, count, step)
}

// GroupOffsets returns the positions of a tight cluster of count bullets that
// all travel along angle. The cluster is laid out perpendicular to the
// direction of travel with spacing pixels between neighbours.
func GroupOffsets(angle float64, count int, spacing float64) (xs, ys []float64) {
	if count < 1 {
		return nil, nil
	}
	px, py := -math.Sin(angle), math.Cos(angle)
	xs = make([]float64, count)
	ys = make([]float64, count)
	for i := range count {
		d := spacing * (float64(i) - float64(count-1)/2)
		xs[i] = px * d
		ys[i] = py * d
	}
	return xs, ys
}

// RotDirection tells which way to turn from angle to face the target:
// 1 counter-clockwise, -1 clockwise, 0 already on course.
func RotDirection(angle, sx, sy, dx, dy float64) int {
	diff := Normalize(DestAngle(sx, sy, dx, dy) - angle)
	const eps = 1e-9
	switch {
	case diff <= eps || 2*math.Pi-diff <= eps:
		return 0
	case diff < math.Pi:
		return 1
	default:
		return -1
	}
}

// Normalize maps an angle into [0, 2π).
func Normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Reverse returns the opposite direction.
func Reverse(a float64) float64 {
	return Normalize(a + math.Pi)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
