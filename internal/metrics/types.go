// internal/metrics/types.go
// Package metrics derives normalized durations, throughput, score, and a
// performance tier from the raw counters an inference endpoint reports.
package metrics

// Throughput holds the derived rate metrics for a single inference call.
type Throughput struct {
	// TokenRate is tokens produced per second of evaluation time.
	TokenRate float64 `json:"tokenrate"`
	// Score is TokenRate divided by evaluation seconds. It is a ranking
	// composite, not a standard benchmark unit.
	Score float64 `json:"score"`
	// Recovered reports that the arithmetic failed and both values were
	// replaced with zero.
	Recovered bool `json:"-"`
}
