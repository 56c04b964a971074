package services

import (
	"fmt"

	"itinerary/internal/models/trip_models"
)

// AnalyzeOpeningHours inspects weekly opening periods for patterns that hint
// at quieter visiting windows. Signals are checked in priority order: limited
// days, early openings, late closings, midday closures.
func AnalyzeOpeningHours(periods []trip_models.OpeningPeriod) (string, bool) {
	if len(periods) == 0 {
		return "", false
	}

	if !(len(periods) == 1 && periods[0].RoundTheClock()) {
		days := make(map[int]struct{}, 7)
		for _, p := range periods {
			if p.Open.Set {
				days[int(p.Open.Day)] = struct{}{}
			}
		}
		if len(days) < 7 {
			return "This location has limited opening days, which may be busier than typical attractions", true
		}
	}

	var early, late []int
	for _, p := range periods {
		if !p.Open.Set || !p.Close.Set {
			continue
		}
		if h := p.Open.Hour(); h >= 0 && h < 9 {
			early = append(early, h)
		}
		if h := p.Close.Hour(); h > 18 {
			late = append(late, h)
		}
	}

	if avg, ok := meanInt(early); ok && avg <= 7 {
		return fmt.Sprintf("Opens early at %d:00 - early morning visits likely less crowded", int(avg)), true
	}
	if avg, ok := meanInt(late); ok && avg >= 20 {
		return fmt.Sprintf("Open until %d:00 - evening visits often less crowded", int(avg)), true
	}

	for _, p := range periods {
		if !p.Open.Set || !p.Close.Set {
			continue
		}
		if h := p.Close.Hour(); h >= 11 && h <= 15 {
			return "Location may close during midday - check specific hours and plan around these breaks", true
		}
	}
	return "", false
}

func meanInt(xs []int) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs)), true
}
