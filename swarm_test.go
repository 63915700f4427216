package swarm

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expect {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tc.name, tc.x, tc.y, got, tc.expect)
		}
	}
}

func TestRectEmpty(t *testing.T) {
	if (Rect{0, 0, 10, 10}).Empty() {
		t.Error("positive-area rect should not be empty")
	}
	if !(Rect{5, 5, 0, 10}).Empty() {
		t.Error("zero-width rect should be empty")
	}
	if !(Rect{5, 5, 10, -1}).Empty() {
		t.Error("negative-height rect should be empty")
	}
}

func TestRangeRandom(t *testing.T) {
	r := Range{10, 20}
	for i := 0; i < 100; i++ {
		v := r.Random()
		if v < 10 || v > 20 {
			t.Fatalf("Random() = %f, outside [10, 20]", v)
		}
	}

	r2 := Range{5, 5}
	for i := 0; i < 10; i++ {
		if r2.Random() != 5 {
			t.Fatal("Random() with Min==Max should return Min")
		}
	}
}

func TestLerpAndClamp(t *testing.T) {
	assertNear(t, "lerp(0,10,0.5)", lerp(0, 10, 0.5), 5)
	assertNear(t, "clamp below", clamp(-1, 0, 3), 0)
	assertNear(t, "clamp inside", clamp(2, 0, 3), 2)
	assertNear(t, "clamp above", clamp(9, 0, 3), 3)
}

func TestSlotStatusString(t *testing.T) {
	tests := []struct {
		status SlotStatus
		want   string
	}{
		{StatusHidden, "hidden"},
		{StatusAssembling, "assembling"},
		{StatusAssembled, "assembled"},
		{StatusDisassembling, "disassembling"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("SlotStatus(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestEdgeString(t *testing.T) {
	if EdgeTop.String() != "top" || EdgeBottom.String() != "bottom" ||
		EdgeLeft.String() != "left" || EdgeRight.String() != "right" {
		t.Error("edge names should be lowercase directions")
	}
}
