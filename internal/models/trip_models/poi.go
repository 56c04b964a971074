package trip_models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const coordEpsilon = 1e-9

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l LatLng) Equal(o LatLng) bool {
	return math.Abs(l.Lat-o.Lat) < coordEpsilon && math.Abs(l.Lng-o.Lng) < coordEpsilon
}

// String renders "lat,lng", the form the Maps web services accept for origins/destinations.
func (l LatLng) String() string {
	return fmt.Sprintf("%f,%f", l.Lat, l.Lng)
}

func (l LatLng) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180 &&
		!math.IsNaN(l.Lat) && !math.IsNaN(l.Lng)
}

// DayTime is one end of an opening period. Time is "HHMM" in local time.
type DayTime struct {
	Day  time.Weekday `json:"day"`
	Time string       `json:"time"`
	Set  bool         `json:"set"`
}

// Hour returns the hour part of Time, or -1 when Time is malformed.
func (d DayTime) Hour() int {
	if len(d.Time) < 2 {
		return -1
	}
	h := 0
	for _, r := range d.Time[:2] {
		if r < '0' || r > '9' {
			return -1
		}
		h = h*10 + int(r-'0')
	}
	if h > 24 {
		return -1
	}
	return h
}

// OpeningPeriod mirrors a Places API weekly period. A period without a
// Close is open around the clock starting at Open.
type OpeningPeriod struct {
	Open  DayTime `json:"open"`
	Close DayTime `json:"close"`
}

func (p OpeningPeriod) RoundTheClock() bool {
	return !p.Close.Set && p.Open.Time == "0000"
}

// POI is a candidate point of interest. It is never mutated once it enters a trip pool.
type POI struct {
	ID             string          `json:"place_id"`
	Name           string          `json:"name"`
	Vicinity       string          `json:"vicinity,omitempty"`
	Types          []string        `json:"types,omitempty"`
	Location       LatLng          `json:"location"`
	Rating         *float64        `json:"rating,omitempty"`
	RatingCount    int             `json:"user_ratings_total"`
	Reviews        []string        `json:"reviews,omitempty"`
	OpeningPeriods []OpeningPeriod `json:"opening_periods,omitempty"`
}

func (p POI) HasType(t string) bool {
	for _, have := range p.Types {
		if strings.EqualFold(have, t) {
			return true
		}
	}
	return false
}

// RatingValue returns the aggregate rating, 0 when absent.
func (p POI) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// VisitProfile is the derived, cached enrichment for one POI identity.
type VisitProfile struct {
	DurationHours float64 `json:"recommended_duration"`
	OptimalTime   string  `json:"optimal_time"`
}

const AnytimeNote = "Anytime during opening hours"

// Dwell converts DurationHours to a time.Duration.
func (v VisitProfile) Dwell() time.Duration {
	return HoursToDuration(v.DurationHours)
}

func HoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func MinutesToDuration(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
