package domain

import "math"

// SurvivalPercent is 100 minus cumulative mortality as a percentage of the
// stocked count, floored at 0. It reports false when the stock is unknown.
func SurvivalPercent(initialStocked, cumulativeDead int) (float64, bool) {
	if initialStocked <= 0 {
		return 0, false
	}
	if cumulativeDead < 0 {
		cumulativeDead = 0
	}
	mortality := float64(cumulativeDead) / float64(initialStocked) * 100
	return math.Max(0, 100-mortality), true
}
