package request_models

import (
	"time"

	"itinerary/internal/models/trip_models"
	"itinerary/pkg/utils"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OpeningDayTime struct {
	Day  int    `json:"day" binding:"min=0,max=6"`
	Time string `json:"time" binding:"omitempty,len=4,numeric"`
}

type OpeningPeriod struct {
	Open  OpeningDayTime  `json:"open"`
	Close *OpeningDayTime `json:"close"`
}

type POIRequest struct {
	PlaceID        string          `json:"place_id" binding:"required"`
	Name           string          `json:"name"`
	Vicinity       string          `json:"vicinity"`
	Types          []string        `json:"types"`
	Location       LatLng          `json:"location"`
	Rating         *float64        `json:"rating" binding:"omitempty,min=0,max=5"`
	RatingCount    int             `json:"user_ratings_total" binding:"min=0"`
	Reviews        []string        `json:"reviews"`
	OpeningPeriods []OpeningPeriod `json:"opening_periods" binding:"omitempty,dive"`
}

// ScheduleItineraryRequest is the body of POST /itineraries and the CLI trip
// file. Either POIs or POIIDs (stored POIs) must be given.
type ScheduleItineraryRequest struct {
	Title                 string       `json:"title"`
	POIs                  []POIRequest `json:"pois" binding:"omitempty,dive"`
	POIIDs                []string     `json:"poi_ids"`
	StartDate             string       `json:"start_date" binding:"required"`
	EndDate               string       `json:"end_date"`
	DurationDays          int          `json:"duration_days" binding:"min=0"`
	Accommodation         *LatLng      `json:"accommodation"`
	AccommodationName     string       `json:"accommodation_name"`
	StartTime             string       `json:"start_time"`
	EndTime               string       `json:"end_time"`
	ReturnToAccommodation *bool        `json:"return_to_accommodation"`
	Save                  bool         `json:"save"`
}

type UpsertPOIsRequest struct {
	POIs []POIRequest `json:"pois" binding:"required,min=1,dive"`
}

func (p POIRequest) ToTripPOI() trip_models.POI {
	out := trip_models.POI{
		ID:          p.PlaceID,
		Name:        p.Name,
		Vicinity:    p.Vicinity,
		Types:       p.Types,
		Location:    trip_models.LatLng{Lat: p.Location.Lat, Lng: p.Location.Lng},
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
		Reviews:     p.Reviews,
	}
	for _, op := range p.OpeningPeriods {
		period := trip_models.OpeningPeriod{
			Open: trip_models.DayTime{Day: time.Weekday(op.Open.Day), Time: op.Open.Time, Set: true},
		}
		if op.Close != nil {
			period.Close = trip_models.DayTime{Day: time.Weekday(op.Close.Day), Time: op.Close.Time, Set: true}
		}
		out.OpeningPeriods = append(out.OpeningPeriods, period)
	}
	return out
}

func ToTripPOIs(in []POIRequest) []trip_models.POI {
	out := make([]trip_models.POI, 0, len(in))
	for _, p := range in {
		out = append(out, p.ToTripPOI())
	}
	return out
}

// TripRequest converts the wire request into a scheduling request anchored in
// loc. Bad dates or times come back as *utils.ScheduleError.
func (r ScheduleItineraryRequest) TripRequest(loc *time.Location) (trip_models.TripRequest, error) {
	start, err := utils.ParseDate(r.StartDate, loc)
	if err != nil {
		return trip_models.TripRequest{}, utils.NewScheduleError(utils.ErrInvalidDateRange, "start_date must be YYYY-MM-DD")
	}

	var end time.Time
	switch {
	case r.EndDate != "":
		end, err = utils.ParseDate(r.EndDate, loc)
		if err != nil {
			return trip_models.TripRequest{}, utils.NewScheduleError(utils.ErrInvalidDateRange, "end_date must be YYYY-MM-DD")
		}
	case r.DurationDays > 0:
		end = start.AddDate(0, 0, r.DurationDays-1)
	default:
		return trip_models.TripRequest{}, utils.NewScheduleError(utils.ErrInvalidDateRange, "end_date or duration_days is required")
	}

	window := trip_models.DefaultTimeWindow()
	if r.StartTime != "" || r.EndTime != "" {
		startTime, endTime := r.StartTime, r.EndTime
		if startTime == "" {
			startTime = "9:00"
		}
		if endTime == "" {
			endTime = "21:00"
		}
		window, err = trip_models.ParseTimeWindow(startTime, endTime)
		if err != nil {
			return trip_models.TripRequest{}, utils.NewScheduleError(utils.ErrInvalidTimeWindow, "%s", err.Error())
		}
	}

	req := trip_models.TripRequest{
		POIs:              ToTripPOIs(r.POIs),
		StartDate:         start,
		EndDate:           end,
		AccommodationName: r.AccommodationName,
		Window:            window,
	}
	if r.Accommodation != nil {
		req.Accommodation = &trip_models.LatLng{Lat: r.Accommodation.Lat, Lng: r.Accommodation.Lng}
	}
	if r.ReturnToAccommodation != nil {
		req.SkipReturn = !*r.ReturnToAccommodation
	}
	return req, nil
}
