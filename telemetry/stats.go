package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated chain statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Collection pipeline
	Collections int     `csv:"collections"`
	Rejected    int     `csv:"rejected"`
	AcceptRate  float64 `csv:"accept_rate"`
	Attaches    int     `csv:"attaches"`
	Evictions   int     `csv:"evictions"`

	// Cascades
	ReactionsStarted  int `csv:"reactions_started"`
	ReactionsEnded    int `csv:"reactions_ended"`
	SegmentsDestroyed int `csv:"segments_destroyed"`
	PointsLost        int `csv:"points_lost"`

	// Merges
	Merges        int `csv:"merges"`
	MaxMergeLevel int `csv:"max_merge_level"`

	// Chain length distribution (sampled at window end)
	ChainLenMean float64 `csv:"chain_len_mean"`
	ChainLenStd  float64 `csv:"chain_len_std"`
	ChainLenP50  float64 `csv:"chain_len_p50"`
	ChainLenP90  float64 `csv:"chain_len_p90"`

	// Segment level distribution (sampled at window end)
	SegLevelMean float64 `csv:"seg_level_mean"`
	SegLevelP50  float64 `csv:"seg_level_p50"`
	SegLevelMax  float64 `csv:"seg_level_max"`
}

// ComputeDistStats calculates mean, std, and percentiles from samples.
func ComputeDistStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	// Quantile requires sorted input
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// MaxOf returns the maximum of the samples, or 0 if empty.
func MaxOf(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// Log logs the window stats using slog.
func (s WindowStats) Log() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"collections", s.Collections,
		"rejected", s.Rejected,
		"accept_rate", s.AcceptRate,
		"attaches", s.Attaches,
		"evictions", s.Evictions,
		"reactions_started", s.ReactionsStarted,
		"reactions_ended", s.ReactionsEnded,
		"segments_destroyed", s.SegmentsDestroyed,
		"points_lost", s.PointsLost,
		"merges", s.Merges,
		"max_merge_level", s.MaxMergeLevel,
		"chain_len_mean", s.ChainLenMean,
		"chain_len_std", s.ChainLenStd,
		"chain_len_p50", s.ChainLenP50,
		"chain_len_p90", s.ChainLenP90,
		"seg_level_mean", s.SegLevelMean,
		"seg_level_p50", s.SegLevelP50,
		"seg_level_max", s.SegLevelMax,
	)
}
