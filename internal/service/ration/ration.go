package ration

import (
	"math"
)

// RecommendedRatePercent maps average body weight in grams to the daily feeding
// rate as percent of biomass. Bands are closed on the lower end.
func RecommendedRatePercent(abw float64) (float64, bool) {
	if math.IsNaN(abw) || math.IsInf(abw, 0) || abw <= 0 {
		return 0, false
	}

	switch {
	case abw < 2:
		return 20, true
	case abw < 15:
		return 10, true
	case abw < 100:
		return 5, true
	default:
		return 2.75, true
	}
}

// EstimatedAlive applies the survival percentage to the stocked count.
func EstimatedAlive(survivalPercent float64, initialStocked int) (int, bool) {
	if math.IsNaN(survivalPercent) || initialStocked <= 0 {
		return 0, false
	}
	survivalPercent = math.Max(0, math.Min(100, survivalPercent))
	return int(math.Round(survivalPercent / 100 * float64(initialStocked))), true
}

func DailyFeedKg(abw float64, alive int, ratePercent float64) (float64, bool) {
	if math.IsNaN(abw) || abw <= 0 || alive < 0 || ratePercent <= 0 {
		return 0, false
	}
	return (abw * float64(alive) / 1000) * (ratePercent / 100), true
}

// PerFeedingGrams splits the daily ration over the feedings of one day.
func PerFeedingGrams(dailyKg float64, frequency int) (float64, bool) {
	if frequency <= 0 || math.IsNaN(dailyKg) || dailyKg < 0 {
		return 0, false
	}
	return math.Round(dailyKg / float64(frequency) * 1000), true
}
