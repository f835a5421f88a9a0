package service

import (
	"math"
	"time"
)

// BonusCooldown is the fixed interval that must elapse between successive
// bonus claims by the same user
const BonusCooldown = 24 * time.Hour

// HoursUntilNextBonus returns the whole-hour count remaining in the cooldown
// window, rounding any partial hour up. Returns 0 once the window has elapsed.
func HoursUntilNextBonus(lastClaim, now time.Time) int64 {
	remaining := BonusCooldown - now.Sub(lastClaim)
	if remaining <= 0 {
		return 0
	}
	return int64(math.Ceil(remaining.Hours()))
}
