package metrics

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNormalizePassThrough(t *testing.T) {
	n := HeuristicNormalizer{}
	cases := map[float64]float64{
		0:       0,
		1.234:   1.23,
		5_000:   5_000,
		9_999.5: 9_999.5,
		-3.456:  -3.46,
		0.025:   0.03,
		0.125:   0.12,
	}
	for input, want := range cases {
		if got := n.Normalize(input); got != want {
			t.Fatalf("Normalize(%v) = %v, want %v", input, got, want)
		}
	}
}

func TestNormalizeNanoseconds(t *testing.T) {
	n := HeuristicNormalizer{}
	if got := n.Normalize(5_000_000_000); got != 5 {
		t.Fatalf("Normalize(5e9) = %v, want 5", got)
	}
	if got := n.Normalize(1_234_567_890); got != 1.23 {
		t.Fatalf("Normalize(1234567890) = %v, want 1.23", got)
	}
}

func TestNormalizeBoundaryTakesNanosecondBranch(t *testing.T) {
	n := HeuristicNormalizer{}
	// 10_000ns is 1e-5s, below the plausibility floor, so microseconds are assumed.
	if got := n.Normalize(10_000); got != 0.01 {
		t.Fatalf("Normalize(10000) = %v, want 0.01", got)
	}
}

func TestNormalizeMicroseconds(t *testing.T) {
	n := HeuristicNormalizer{}
	// 2.5s reported in microseconds.
	if got := n.Normalize(2_500_000); got != 2.5 {
		t.Fatalf("Normalize(2500000) = %v, want 2.5", got)
	}
}

func TestNormalizeMilliseconds(t *testing.T) {
	n := HeuristicNormalizer{}
	// 2e13 / 1e9 = 20000s which is implausible, so the raw value is read as milliseconds.
	if got := n.Normalize(2e13); got != 2e10 {
		t.Fatalf("Normalize(2e13) = %v, want 2e10", got)
	}
}

func TestNormalizerInterface(t *testing.T) {
	var n DurationNormalizer = HeuristicNormalizer{}
	if got := n.Normalize(3_000_000_000); got != 3 {
		t.Fatalf("Normalize via interface = %v, want 3", got)
	}
}

func TestCompute(t *testing.T) {
	got := Compute(100, 5)
	if got.TokenRate != 20 || got.Score != 4 {
		t.Fatalf("Compute(100, 5) = %+v, want rate 20 score 4", got)
	}
	if got.Recovered {
		t.Fatalf("Compute(100, 5) unexpectedly recovered")
	}

	got = Compute(250, 3)
	if got.TokenRate != 83.33 || got.Score != 27.78 {
		t.Fatalf("Compute(250, 3) = %+v", got)
	}
}

func TestComputeZeroDurationRecovers(t *testing.T) {
	got := Compute(100, 0)
	if got.TokenRate != 0 || got.Score != 0 {
		t.Fatalf("Compute(100, 0) = %+v, want zeros", got)
	}
	if !got.Recovered {
		t.Fatalf("expected Recovered for zero duration")
	}

	got = Compute(0, 0)
	if got.TokenRate != 0 || got.Score != 0 || !got.Recovered {
		t.Fatalf("Compute(0, 0) = %+v", got)
	}
}

func TestComputeNonFiniteRecovers(t *testing.T) {
	got := Compute(10, math.NaN())
	if got.TokenRate != 0 || got.Score != 0 || !got.Recovered {
		t.Fatalf("Compute with NaN duration = %+v", got)
	}
	got = Compute(10, 1e-320)
	if got.TokenRate != 0 || got.Score != 0 || !got.Recovered {
		t.Fatalf("Compute with subnormal duration = %+v", got)
	}
}

func TestComputeNegativeDurationPropagates(t *testing.T) {
	got := Compute(100, -5)
	if got.TokenRate != -20 || got.Score != 4 || got.Recovered {
		t.Fatalf("Compute(100, -5) = %+v", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		rate float64
		want Tier
	}{
		{40, TierGood},
		{120.5, TierGood},
		{39.99, TierFair},
		{20, TierFair},
		{19.99, TierPoor},
		{0, TierPoor},
		{-1, TierPoor},
		{math.NaN(), TierUnknown},
		{math.Inf(1), TierUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.rate); got != tc.want {
			t.Fatalf("Classify(%v) = %v, want %v", tc.rate, got, tc.want)
		}
	}
}

func TestTierText(t *testing.T) {
	data, err := json.Marshal(map[string]Tier{"tier": TierFair})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"tier":"fair"}` {
		t.Fatalf("unexpected json: %s", data)
	}

	var decoded map[string]Tier
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["tier"] != TierFair {
		t.Fatalf("round trip = %v", decoded["tier"])
	}

	var tier Tier
	if err := tier.UnmarshalText([]byte("excellent")); err == nil {
		t.Fatalf("expected error for unknown tier name")
	}
	if Tier(42).String() != "unknown" {
		t.Fatalf("out of range tier should read as unknown")
	}
}
