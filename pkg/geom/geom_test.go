package geom

import "testing"

func TestHalfFloor(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{7, 3},
		{100, 50},
		{-1, -1},
		{-2, -1},
		{-3, -2},
	}

	for _, tt := range tests {
		if got := HalfFloor(tt.in); got != tt.want {
			t.Errorf("HalfFloor(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 5, 20, 8)

	if got := r.Right(); got != 25 {
		t.Errorf("Right() = %d, want 25", got)
	}
	if got := r.Bottom(); got != 18 {
		t.Errorf("Bottom() = %d, want 18", got)
	}
	if got := r.CenterX(); got != 15 {
		t.Errorf("CenterX() = %d, want 15", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 4, 2)

	tests := []struct {
		name      string
		top, left int
		want      bool
	}{
		{"origin", 0, 0, true},
		{"inside", 1, 3, true},
		{"right edge", 0, 4, false},
		{"bottom edge", 2, 0, false},
		{"above", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.top, tt.left); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.top, tt.left, got, tt.want)
			}
		})
	}
}

func TestOffsetArithmetic(t *testing.T) {
	a := Offset{Top: 10, Left: 20}
	b := Offset{Top: 3, Left: -4}

	if got := a.Add(b); got != (Offset{Top: 13, Left: 16}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (Offset{Top: 7, Left: 24}) {
		t.Errorf("Sub() = %v", got)
	}
}
