package rewards

import (
	"fmt"
	"math"
	"math/rand"
)

// chanceTolerance is how far the sum of configured chances may drift from 100
// before the table is considered misconfigured.
const chanceTolerance = 0.01

// Reward is a single weighted entry in a draw table
type Reward struct {
	Type   string
	Name   string
	Emoji  string
	Price  int64
	Chance float64
}

// ConfigError indicates a reward surface whose configuration cannot be
// served. It is fatal at startup.
type ConfigError struct {
	Surface string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid reward configuration for %s: %s", e.Surface, e.Reason)
}

// Table is an immutable, validated weighted reward table for one draw surface
type Table struct {
	surface string
	rewards []Reward
}

// NewTable validates the reward definitions for a surface and returns an
// immutable table. Chances must be non-negative and sum to 100 within
// tolerance; a failing table must not serve traffic.
func NewTable(surface string, rewards []Reward) (*Table, error) {
	if len(rewards) == 0 {
		return nil, &ConfigError{Surface: surface, Reason: "no rewards configured"}
	}

	var sum float64
	for _, r := range rewards {
		if r.Chance < 0 {
			return nil, &ConfigError{
				Surface: surface,
				Reason:  fmt.Sprintf("reward %q has negative chance %v", r.Type, r.Chance),
			}
		}
		sum += r.Chance
	}

	if math.Abs(sum-100) > chanceTolerance {
		return nil, &ConfigError{
			Surface: surface,
			Reason:  fmt.Sprintf("chances sum to %v, expected 100", sum),
		}
	}

	table := &Table{
		surface: surface,
		rewards: make([]Reward, len(rewards)),
	}
	copy(table.rewards, rewards)
	return table, nil
}

// Surface returns the name of the draw surface this table configures
func (t *Table) Surface() string {
	return t.surface
}

// Rewards returns a copy of the configured reward entries
func (t *Table) Rewards() []Reward {
	out := make([]Reward, len(t.rewards))
	copy(out, t.rewards)
	return out
}

// Draw performs one weighted random draw. It samples r in [0, 100) and walks
// the table accumulating chances; the entry whose half-open interval contains
// r wins. If floating-point rounding leaves r past the last cumulative
// boundary, the last entry wins, so a draw always yields exactly one reward.
func (t *Table) Draw(rng *rand.Rand) Reward {
	r := rng.Float64() * 100

	var cumulative float64
	for _, reward := range t.rewards {
		cumulative += reward.Chance
		if r < cumulative {
			return reward
		}
	}
	return t.rewards[len(t.rewards)-1]
}
