package ration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// Suggestion is the ration breakdown for one pond. PerFeedingGrams is only
// meaningful when Available is true.
type Suggestion struct {
	PondID          string   `json:"pond_id"`
	ABW             *float64 `json:"abw_grams,omitempty"`
	SurvivalPercent *float64 `json:"survival_percent,omitempty"`
	RatePercent     float64  `json:"rate_percent,omitempty"`
	EstimatedAlive  int      `json:"estimated_alive,omitempty"`
	DailyFeedKg     float64  `json:"daily_feed_kg,omitempty"`
	FeedingsPerDay  int      `json:"feedings_per_day"`
	PerFeedingGrams float64  `json:"per_feeding_grams,omitempty"`
	Available       bool     `json:"available"`
}

type Estimator struct {
	growth domain.GrowthRepository
}

func NewEstimator(growth domain.GrowthRepository) *Estimator {
	return &Estimator{
		growth: growth,
	}
}

// Suggest gathers the growth inputs for the pond and runs the ration chain.
// Missing inputs yield an unavailable suggestion; only store failures are returned.
func (e *Estimator) Suggest(ctx context.Context, pond *domain.Pond) (Suggestion, error) {
	s := Suggestion{
		PondID:         pond.ID,
		FeedingsPerDay: pond.FeedingFrequency,
	}

	abw, err := e.growth.CurrentABW(ctx, pond.ID)
	if err != nil && !errors.Is(err, domain.ErrGrowthNotFound) {
		return s, fmt.Errorf("read current abw for pond %s: %w", pond.ID, err)
	}
	s.ABW = abw

	survival, err := e.growth.SurvivalPercent(ctx, pond.ID)
	if err != nil && !errors.Is(err, domain.ErrGrowthNotFound) {
		return s, fmt.Errorf("read survival for pond %s: %w", pond.ID, err)
	}
	s.SurvivalPercent = survival

	if abw == nil || survival == nil {
		slog.DebugContext(ctx, "ration inputs missing",
			slog.String("pond_id", pond.ID),
			slog.Bool("has_abw", abw != nil),
			slog.Bool("has_survival", survival != nil),
		)
		return s, nil
	}

	grams, ok := Compute(&s, *abw, *survival, pond.InitialStockedCount, pond.FeedingFrequency)
	if !ok {
		return s, nil
	}
	s.PerFeedingGrams = grams
	s.Available = grams > 0

	return s, nil
}

// Compute fills the intermediate fields of s and returns the per-feeding grams.
func Compute(s *Suggestion, abw, survival float64, stocked, frequency int) (float64, bool) {
	rate, ok := RecommendedRatePercent(abw)
	if !ok {
		return 0, false
	}
	s.RatePercent = rate

	alive, ok := EstimatedAlive(survival, stocked)
	if !ok {
		return 0, false
	}
	s.EstimatedAlive = alive

	daily, ok := DailyFeedKg(abw, alive, rate)
	if !ok {
		return 0, false
	}
	s.DailyFeedKg = daily

	return PerFeedingGrams(daily, frequency)
}
