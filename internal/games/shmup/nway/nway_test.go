package nway

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestFromCenter(t *testing.T) {
	tests := []struct {
		name     string
		center   float64
		count    int
		spacing  float64
		expected []float64
	}{
		{"single", 1.0, 1, 0.5, []float64{1.0}},
		{"three", 1.0, 3, 0.25, []float64{0.75, 1.0, 1.25}},
		{"two", 0, 2, 0.5, []float64{-0.25, 0.25}},
		{"four", 0, 4, 1, []float64{-1.5, -0.5, 0.5, 1.5}},
		{"none", 0, 0, 1, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromCenter(tc.center, tc.count, tc.spacing)
			if len(got) != len(tc.expected) {
				t.Fatalf("len = %d, expected %d", len(got), len(tc.expected))
			}
			for i := range got {
				if !near(got[i], tc.expected[i]) {
					t.Errorf("angle[%d] = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestAppendFromCenterReusesBuffer(t *testing.T) {
	buf := make([]float64, 0, 8)
	out := AppendFromCenter(buf[:0], 0, 5, 0.1)
	if len(out) != 5 || &out[0] != &buf[:1][0] {
		t.Error("AppendFromCenter should write into the supplied buffer")
	}
}

func TestDestAngle(t *testing.T) {
	tests := []struct {
		name           string
		sx, sy, dx, dy float64
		expected       float64
	}{
		{"right", 0, 0, 10, 0, 0},
		{"up", 0, 0, 0, 10, math.Pi / 2},
		{"left", 5, 5, -5, 5, math.Pi},
		{"down", 0, 0, 0, -3, -math.Pi / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DestAngle(tc.sx, tc.sy, tc.dx, tc.dy); !near(got, tc.expected) {
				t.Errorf("DestAngle() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestTowardTargetCentersOnTarget(t *testing.T) {
	got := TowardTarget(0, 0, 0, 10, 3, 0.2)
	if !near(got[1], math.Pi/2) {
		t.Errorf("middle bullet = %v, expected π/2", got[1])
	}
}

func TestRadial(t *testing.T) {
	got := Radial(0, 4)
	expected := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	for i := range expected {
		if !near(Normalize(got[i]), expected[i]) {
			t.Errorf("Radial[%d] = %v, expected %v", i, Normalize(got[i]), expected[i])
		}
	}
}

func TestGroupOffsetsPerpendicular(t *testing.T) {
	xs, ys := GroupOffsets(0, 3, 4)
	for i := range xs {
		if !near(xs[i], 0) {
			t.Errorf("x offset[%d] = %v, expected 0 for a bullet travelling along +x", i, xs[i])
		}
	}
	if !near(ys[0], -4) || !near(ys[1], 0) || !near(ys[2], 4) {
		t.Errorf("y offsets = %v, expected [-4 0 4]", ys)
	}
}

func TestRotDirection(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected int
	}{
		{"target above while facing right", 0, 1},
		{"target above while facing left", math.Pi, -1},
		{"facing target", math.Pi / 2, 0},
		{"just past target wraps to on course", math.Pi/2 + 1e-12, 0},
		{"just short of target", math.Pi/2 - 1e-12, 0},
		{"target slightly clockwise", math.Pi/2 + 0.1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RotDirection(tc.angle, 0, 0, 0, 10); got != tc.expected {
				t.Errorf("RotDirection() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestNormalizeReverseUnits(t *testing.T) {
	if !near(Normalize(-math.Pi/2), 3*math.Pi/2) {
		t.Error("Normalize should wrap negative angles")
	}
	if !near(Reverse(0), math.Pi) {
		t.Error("Reverse(0) should be π")
	}
	if !near(Radians(180), math.Pi) || !near(Degrees(math.Pi/2), 90) {
		t.Error("unit conversion mismatch")
	}
}
