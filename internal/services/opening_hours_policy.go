package services

import (
	"fmt"
	"time"

	"itinerary/internal/models/trip_models"
)

// OpeningHoursPolicy decides whether a POI can be visited on a calendar day.
type OpeningHoursPolicy interface {
	IsOpen(poi trip_models.POI, day time.Time) bool
}

// AlwaysOpenPolicy treats every POI as open every day.
type AlwaysOpenPolicy struct{}

func (AlwaysOpenPolicy) IsOpen(trip_models.POI, time.Time) bool { return true }

// WeekdayOpeningHoursPolicy admits a POI when one of its weekly periods opens
// on the day's weekday, or when it has a round-the-clock period. POIs without
// opening data are treated as open.
type WeekdayOpeningHoursPolicy struct{}

func (WeekdayOpeningHoursPolicy) IsOpen(poi trip_models.POI, day time.Time) bool {
	if len(poi.OpeningPeriods) == 0 {
		return true
	}
	wd := day.Weekday()
	for _, p := range poi.OpeningPeriods {
		if p.RoundTheClock() {
			return true
		}
		if p.Open.Set && p.Open.Day == wd {
			return true
		}
	}
	return false
}

// NewOpeningHoursPolicy maps the OPENING_HOURS_POLICY setting to a policy.
func NewOpeningHoursPolicy(name string) (OpeningHoursPolicy, error) {
	switch name {
	case "", "always":
		return AlwaysOpenPolicy{}, nil
	case "weekday":
		return WeekdayOpeningHoursPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown opening hours policy %q", name)
	}
}
