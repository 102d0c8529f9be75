package core

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{-0.4, true},
		{math.MaxFloat64, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.v); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestDBConversions(t *testing.T) {
	tests := []struct {
		db     float64
		linear float64
	}{
		{0, 1},
		{-20, 0.1},
		{20, 10},
		{-6.020599913279624, 0.5},
	}
	for _, tt := range tests {
		if got := DBToLinear(tt.db); math.Abs(got-tt.linear) > 1e-12 {
			t.Errorf("DBToLinear(%v) = %v, want %v", tt.db, got, tt.linear)
		}
		if got := LinearToDB(tt.linear); math.Abs(got-tt.db) > 1e-9 {
			t.Errorf("LinearToDB(%v) = %v, want %v", tt.linear, got, tt.db)
		}
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative gain")
	}
}
