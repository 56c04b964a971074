package response_models

import (
	"itinerary/internal/models/trip_models"
	"itinerary/pkg/utils"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ItineraryResponse struct {
	ID            string            `json:"id,omitempty"`
	Accommodation LatLng            `json:"accommodation"`
	Days          []DayPlanResponse `json:"days"`
	Unscheduled   []string          `json:"unscheduled,omitempty"`
	Summary       string            `json:"summary,omitempty"`
}

type DayPlanResponse struct {
	Date                  string             `json:"date"`
	Day                   string             `json:"day"`
	Activities            []ActivityResponse `json:"activities"`
	ReturnToAccommodation *ReturnLegResponse `json:"return_to_accommodation,omitempty"`
	Note                  string             `json:"note,omitempty"`
}

type ActivityResponse struct {
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	PlaceID       string  `json:"place_id"`
	Name          string  `json:"name"`
	Location      LatLng  `json:"location"`
	DurationHours float64 `json:"duration_hours"`
	OptimalTime   string  `json:"optimal_time"`
	TravelMinutes float64 `json:"travel_minutes"`
}

type ReturnLegResponse struct {
	DepartureTime string  `json:"departure_time"`
	TravelMinutes float64 `json:"travel_minutes"`
	ArrivalTime   string  `json:"arrival_time"`
}

func NewItineraryResponse(id string, s *trip_models.TripSchedule, summary string) ItineraryResponse {
	out := ItineraryResponse{
		ID:            id,
		Accommodation: LatLng{Lat: s.Accommodation.Lat, Lng: s.Accommodation.Lng},
		Days:          make([]DayPlanResponse, 0, len(s.Days)),
		Summary:       summary,
	}
	for _, p := range s.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, p.ID)
	}

	for _, d := range s.Days {
		day := DayPlanResponse{
			Date:       utils.FormatDate(d.Date),
			Day:        d.Weekday(),
			Activities: make([]ActivityResponse, 0, len(d.Activities)),
			Note:       d.Note,
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, ActivityResponse{
				StartTime:     utils.FormatClock(a.Start),
				EndTime:       utils.FormatClock(a.End()),
				PlaceID:       a.POI.ID,
				Name:          a.POI.Name,
				Location:      LatLng{Lat: a.POI.Location.Lat, Lng: a.POI.Location.Lng},
				DurationHours: a.DurationHours,
				OptimalTime:   a.OptimalTime,
				TravelMinutes: a.TravelMinutes,
			})
		}
		if d.Return != nil {
			day.ReturnToAccommodation = &ReturnLegResponse{
				DepartureTime: utils.FormatClock(d.Return.Departure),
				TravelMinutes: d.Return.TravelMinutes,
				ArrivalTime:   utils.FormatClock(d.Return.Arrival),
			}
		}
		out.Days = append(out.Days, day)
	}
	return out
}
