package metrics

import (
	"fmt"
	"strings"
)

// Tier is the display classification of a model's token rate.
type Tier int

const (
	TierUnknown Tier = iota
	TierPoor
	TierFair
	TierGood
)

const (
	goodTokenRate = 40
	fairTokenRate = 20
)

var tierNames = map[Tier]string{
	TierUnknown: "unknown",
	TierPoor:    "poor",
	TierFair:    "fair",
	TierGood:    "good",
}

// Classify maps a token rate to a Tier. NaN and infinities are Unknown.
func Classify(tokenRate float64) Tier {
	if !isFinite(tokenRate) {
		return TierUnknown
	}
	switch {
	case tokenRate >= goodTokenRate:
		return TierGood
	case tokenRate >= fairTokenRate:
		return TierFair
	default:
		return TierPoor
	}
}

// String returns the lowercase tier name.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return tierNames[TierUnknown]
}

// MarshalText encodes the tier by name so JSON reports stay readable.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name produced by MarshalText.
func (t *Tier) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for tier, n := range tierNames {
		if n == name {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(text))
}
