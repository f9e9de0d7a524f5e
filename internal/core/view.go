package core

import "github.com/samber/lo"

// LatestByMetric indexes readings by metric name, last write wins in input
// order. Recomputed on every call; the collections are small and caching
// would just add a second source of staleness.
func LatestByMetric(readings []LatestReading) map[string]LatestReading {
	out := make(map[string]LatestReading, len(readings))
	for _, r := range readings {
		out[r.Metric] = r
	}
	return out
}

// TotalUsage sums usage over the daily report. Rows whose usage failed to
// decode contribute zero (see KWh).
func TotalUsage(rows []DailyUsage) float64 {
	return lo.SumBy(rows, func(d DailyUsage) float64 {
		return float64(d.UsageKWh)
	})
}
