package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireDecaying fails t unless the peak magnitude of the last quarter of
// data is below limit.
func RequireDecaying(t *testing.T, data []float64, limit float64) {
	t.Helper()
	tail := data[len(data)*3/4:]
	peak := 0.0
	for _, v := range tail {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak >= limit {
		t.Fatalf("tail peak %v, want < %v", peak, limit)
	}
}

// ArgMax returns the index of the largest value in data[from:], or -1 when
// that range is empty.
func ArgMax(data []float64, from int) int {
	best := -1
	for i := max(from, 0); i < len(data); i++ {
		if best < 0 || data[i] > data[best] {
			best = i
		}
	}
	return best
}
