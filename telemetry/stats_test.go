package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p50, p90 := ComputeDistStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if math.Abs(p50-5.0) > 0.001 {
		t.Errorf("p50 = %v, want 5.0", p50)
	}
	if math.Abs(p90-9.0) > 0.001 {
		t.Errorf("p90 = %v, want 9.0", p90)
	}
}

func TestComputeDistStatsEmpty(t *testing.T) {
	mean, std, p50, p90 := ComputeDistStats([]float64{})

	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeDistStatsSingle(t *testing.T) {
	mean, std, p50, _ := ComputeDistStats([]float64{7})

	if mean != 7 {
		t.Errorf("mean = %v, want 7", mean)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0 for single sample", std)
	}
	if p50 != 7 {
		t.Errorf("p50 = %v, want 7", p50)
	}
}

func TestMaxOf(t *testing.T) {
	if got := MaxOf([]float64{1, 3, 2}); got != 3 {
		t.Errorf("MaxOf = %v, want 3", got)
	}
	if got := MaxOf(nil); got != 0 {
		t.Errorf("MaxOf(nil) = %v, want 0", got)
	}
}
