package trip_models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeWindow is the daily (start, end) pair shared by every day of a trip,
// expressed as offsets from local midnight.
type TimeWindow struct {
	Start time.Duration
	End   time.Duration
}

func DefaultTimeWindow() TimeWindow {
	return TimeWindow{Start: 9 * time.Hour, End: 21 * time.Hour}
}

// ParseTimeWindow accepts "H:MM" or "HH:MM" for both ends.
func ParseTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("start time: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("end time: %w", err)
	}
	w := TimeWindow{Start: s, End: e}
	return w, w.Validate()
}

func (w TimeWindow) Validate() error {
	if w.Start < 0 || w.End > 24*time.Hour {
		return errors.New("time window must lie within one day")
	}
	if w.End <= w.Start {
		return errors.New("time window end must be after start")
	}
	return nil
}

// Bounds anchors the window on the calendar date of day. Both ends are wall
// clock times, so a DST change on that date does not move them.
func (w TimeWindow) Bounds(day time.Time) (time.Time, time.Time) {
	return atClock(day, w.Start), atClock(day, w.End)
}

func atClock(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

// ParseClock parses a time of day such as "9:00" or "21:30".
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	if d > 24*time.Hour {
		return 0, fmt.Errorf("clock %q past midnight", s)
	}
	return d, nil
}

// Activity is one scheduled visit.
type Activity struct {
	POI           POI       `json:"attraction"`
	Start         time.Time `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
	OptimalTime   string    `json:"optimal_time"`
	TravelMinutes float64   `json:"travel_minutes"`
}

func (a Activity) End() time.Time {
	return a.Start.Add(HoursToDuration(a.DurationHours))
}

// ReturnLeg is the trip back to the accommodation at the end of a day.
type ReturnLeg struct {
	Departure     time.Time `json:"departure_time"`
	TravelMinutes float64   `json:"travel_minutes"`
	Arrival       time.Time `json:"arrival_time"`
}

const NoActivitiesNote = "No attractions available for this day based on opening hours"

// DayPlan is one calendar day of the itinerary. It is not mutated after the
// day's scheduling pass returns it.
type DayPlan struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
	Return     *ReturnLeg `json:"return_to_accommodation,omitempty"`
	Note       string     `json:"note,omitempty"`
}

func (d DayPlan) Weekday() string {
	return d.Date.Weekday().String()
}

func (d DayPlan) Empty() bool {
	return len(d.Activities) == 0
}

// TripRequest is the validated input of one scheduling run.
type TripRequest struct {
	POIs              []POI
	StartDate         time.Time
	EndDate           time.Time
	Accommodation     *LatLng
	AccommodationName string
	Window            TimeWindow
	// SkipReturn drops the closing leg back to the accommodation. The zero
	// value keeps it.
	SkipReturn bool
}

// DayCount is the inclusive number of calendar days in the request.
func (r TripRequest) DayCount() int {
	s := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// TripSchedule is the result of a successful scheduling run.
type TripSchedule struct {
	Days          []DayPlan `json:"days"`
	Accommodation LatLng    `json:"accommodation"`
	Unscheduled   []POI     `json:"unscheduled,omitempty"`
}

// ActivityCount returns the number of activities across all days.
func (t TripSchedule) ActivityCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Activities)
	}
	return n
}
