package metrics

import "math"

// Compute derives the token rate and score for tokens generated over
// evalSeconds. A zero duration or any non-finite intermediate result yields
// a zero Throughput with Recovered set; callers never see an error.
func Compute(tokens int, evalSeconds float64) Throughput {
	if evalSeconds == 0 {
		return Throughput{Recovered: true}
	}
	rate := float64(tokens) / evalSeconds
	if !isFinite(rate) {
		return Throughput{Recovered: true}
	}
	rate = Round2(rate)

	score := rate / evalSeconds
	if !isFinite(score) {
		return Throughput{Recovered: true}
	}

	return Throughput{
		TokenRate: rate,
		Score:     Round2(score),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
