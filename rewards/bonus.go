package rewards

import (
	"fmt"
	"math/rand"
)

// BonusRange is the uniform-range definition for the daily bonus surface.
// Unlike case and roulette it is not weighted.
type BonusRange struct {
	Min int64
	Max int64
}

// NewBonusRange validates the bonus bounds
func NewBonusRange(min, max int64) (BonusRange, error) {
	if min < 1 {
		return BonusRange{}, &ConfigError{
			Surface: "bonus",
			Reason:  fmt.Sprintf("minimum must be at least 1, got %d", min),
		}
	}
	if max < min {
		return BonusRange{}, &ConfigError{
			Surface: "bonus",
			Reason:  fmt.Sprintf("maximum %d is below minimum %d", max, min),
		}
	}
	return BonusRange{Min: min, Max: max}, nil
}

// Draw returns a uniform integer in [Min, Max] inclusive
func (b BonusRange) Draw(rng *rand.Rand) int64 {
	return b.Min + rng.Int63n(b.Max-b.Min+1)
}
