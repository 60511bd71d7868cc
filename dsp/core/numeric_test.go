package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("IsFinite classification wrong")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-40); got != 0 {
		t.Fatalf("FlushDenormals(1e-40) = %v, want 0", got)
	}
	if got := FlushDenormals(1e-3); got != 1e-3 {
		t.Fatalf("FlushDenormals(1e-3) = %v, want 1e-3", got)
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(0.1); math.Abs(got+20) > 1e-12 {
		t.Fatalf("LinearToDB(0.1) = %v, want -20", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("LinearToDB(0) should be -Inf")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("LinearToDB(-1) should be NaN")
	}
}

func TestLogInterp(t *testing.T) {
	if got := LogInterp(0, 20, 20000); math.Abs(got-20) > 1e-9 {
		t.Fatalf("LogInterp(0) = %v, want 20", got)
	}
	if got := LogInterp(1, 20, 20000); math.Abs(got-20000) > 1e-6 {
		t.Fatalf("LogInterp(1) = %v, want 20000", got)
	}
	// Geometric mean of the range sits at the midpoint.
	if got := LogInterp(0.5, 20, 20000); math.Abs(got-math.Sqrt(20*20000)) > 1e-9 {
		t.Fatalf("LogInterp(0.5) = %v, want %v", got, math.Sqrt(20*20000))
	}
}
