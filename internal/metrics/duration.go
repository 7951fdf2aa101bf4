package metrics

import "strconv"

const (
	passThroughLimit = 10_000
	nanosPerSecond   = 1e9
	microsPerSecond  = 1e6
	millisPerSecond  = 1e3
	minPlausibleSecs = 0.01
	maxPlausibleSecs = 10_000
)

// DurationNormalizer converts a raw duration reported by an inference
// endpoint into seconds.
type DurationNormalizer interface {
	Normalize(raw float64) float64
}

// HeuristicNormalizer guesses the unit of a raw duration from its magnitude.
// Ollama documents nanoseconds, but proxies and older builds have been seen
// reporting microseconds or values that were already scaled once.
//
// The zero value is ready to use.
type HeuristicNormalizer struct{}

// Normalize returns raw in seconds rounded to two decimals. Values below
// 10,000 pass through unchanged. Larger values are treated as nanoseconds
// unless that yields less than 0.01s (microseconds assumed) or more than
// 10,000s (milliseconds assumed). Negative input is not rejected.
func (HeuristicNormalizer) Normalize(raw float64) float64 {
	if raw < passThroughLimit {
		return Round2(raw)
	}
	s := raw / nanosPerSecond
	if s < minPlausibleSecs {
		s = raw / microsPerSecond
	} else if s > maxPlausibleSecs {
		s = raw / millisPerSecond
	}
	return Round2(s)
}

// Round2 rounds v to two decimal places using the exact decimal expansion of
// v, ties to even. 0.025 is stored slightly above the tie and becomes 0.03.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
