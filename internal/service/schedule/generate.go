package schedule

import (
	"math"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

var (
	firstSlot = domain.NewTimeOfDay(7, 0)
	lastSlot  = domain.NewTimeOfDay(17, 0)
)

// GenerateTimes spreads n feedings from 07:00 to 17:00. The last entry is
// always 17:00 no matter how the spacing rounds.
func GenerateTimes(n int) []string {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{lastSlot.String()}
	}

	step := float64(lastSlot-firstSlot) / float64(n-1)
	times := make([]string, n)
	for i := 0; i < n-1; i++ {
		minutes := int(math.Round(float64(firstSlot) + float64(i)*step))
		times[i] = domain.TimeOfDay(minutes).String()
	}
	times[n-1] = lastSlot.String()

	return times
}
