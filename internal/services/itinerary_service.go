package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"itinerary/internal/models/trip_models"
	"itinerary/pkg/utils"
)

// maxTripDays guards against runaway date ranges.
const maxTripDays = 60

type ItineraryServiceInterface interface {
	ScheduleTrip(ctx context.Context, req trip_models.TripRequest) (*trip_models.TripSchedule, error)
	// ScheduleStoredTrip loads the pool from stored POIs before scheduling.
	ScheduleStoredTrip(ctx context.Context, placeIDs []string, req trip_models.TripRequest) (*trip_models.TripSchedule, error)
	SaveSchedule(ctx context.Context, title string, req trip_models.TripRequest, s *trip_models.TripSchedule) (string, error)
	GetSchedule(ctx context.Context, id string) (*trip_models.TripSchedule, error)
	Summarize(s *trip_models.TripSchedule) string
	ResetCache()
}

type ItineraryService struct {
	sc       *SchedulerContext
	enrich   EnrichmentServiceInterface
	days     DaySchedulerInterface
	pois     POIServiceInterface
	journeys JourneyServiceInterface
	log      *zap.Logger
}

// NewItineraryService wires the trip scheduler. pois and journeys may be nil
// when persistence is not configured.
func NewItineraryService(
	sc *SchedulerContext,
	enrich EnrichmentServiceInterface,
	days DaySchedulerInterface,
	pois POIServiceInterface,
	journeys JourneyServiceInterface,
) ItineraryServiceInterface {
	return &ItineraryService{
		sc:       sc,
		enrich:   enrich,
		days:     days,
		pois:     pois,
		journeys: journeys,
		log:      sc.Log.Named("itinerary"),
	}
}

func (s *ItineraryService) ScheduleTrip(ctx context.Context, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, utils.NewScheduleError(utils.ErrInvalidDateRange, "start and end dates are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, utils.NewScheduleError(utils.ErrInvalidDateRange, "end date %s is before start date %s",
			utils.FormatDate(req.EndDate), utils.FormatDate(req.StartDate))
	}
	dayCount := req.DayCount()
	if dayCount > maxTripDays {
		return nil, utils.NewScheduleError(utils.ErrInvalidDateRange, "trip spans %d days, at most %d are supported", dayCount, maxTripDays)
	}
	if req.Window == (trip_models.TimeWindow{}) {
		req.Window = trip_models.DefaultTimeWindow()
	}
	if err := req.Window.Validate(); err != nil {
		return nil, utils.NewScheduleError(utils.ErrInvalidTimeWindow, "%s", err.Error())
	}

	if len(req.POIs) == 0 {
		return nil, utils.NewScheduleError(utils.ErrEmptyPOIPool, "no points of interest to schedule")
	}
	pool, dropped, err := trip_models.ValidatePool(req.POIs)
	if err != nil {
		return nil, utils.NewScheduleError(utils.ErrInvalidInput, "%s", err.Error())
	}
	if len(dropped) > 0 {
		s.log.Warn("dropped duplicate pois", zap.Strings("place_ids", dropped))
	}

	base, err := s.accommodation(ctx, req, pool)
	if err != nil {
		return nil, err
	}

	if err := s.enrich.Prefetch(ctx, pool); err != nil {
		return nil, fmt.Errorf("schedule trip: prefetch: %w", err)
	}

	remaining := pool
	out := &trip_models.TripSchedule{
		Accommodation: base,
		Days:          make([]trip_models.DayPlan, 0, dayCount),
	}
	for i := 0; i < dayCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("schedule trip: %w", err)
		}
		date := req.StartDate.AddDate(0, 0, i)

		if len(remaining) == 0 {
			out.Days = append(out.Days, trip_models.DayPlan{
				Date:       date,
				Activities: []trip_models.Activity{},
				Note:       trip_models.NoActivitiesNote,
			})
			break
		}

		plan, consumed := s.days.ScheduleDay(ctx, remaining, date, base, req.Window, !req.SkipReturn)
		out.Days = append(out.Days, plan)
		remaining = withoutIDs(remaining, consumed)
	}
	out.Unscheduled = remaining

	s.log.Info("trip scheduled",
		zap.String("start", utils.FormatDate(req.StartDate)),
		zap.Int("days", len(out.Days)),
		zap.Int("activities", out.ActivityCount()),
		zap.Int("unscheduled", len(out.Unscheduled)))
	return out, nil
}

// accommodation resolves the day start location: an explicit coordinate, then
// a geocoded name, then the first POI of the pool.
func (s *ItineraryService) accommodation(ctx context.Context, req trip_models.TripRequest, pool []trip_models.POI) (trip_models.LatLng, error) {
	if req.Accommodation != nil {
		if !req.Accommodation.Valid() {
			return trip_models.LatLng{}, utils.NewScheduleError(utils.ErrNoAccommodation,
				"accommodation %s is not a valid coordinate", *req.Accommodation)
		}
		return *req.Accommodation, nil
	}

	if name := strings.TrimSpace(req.AccommodationName); name != "" && s.sc.Geocoder != nil {
		loc, found, err := s.sc.Geocoder.Geocode(ctx, name)
		switch {
		case err != nil:
			s.log.Warn("accommodation geocode failed", zap.String("name", name), zap.Error(err))
		case !found:
			s.log.Warn("accommodation not found", zap.String("name", name))
		case loc.Valid():
			return loc, nil
		}
	}

	if len(pool) == 0 {
		return trip_models.LatLng{}, utils.NewScheduleError(utils.ErrNoAccommodation, "no accommodation could be resolved")
	}
	return pool[0].Location, nil
}

func withoutIDs(pool []trip_models.POI, ids []string) []trip_models.POI {
	if len(ids) == 0 {
		return pool
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]trip_models.POI, 0, len(pool))
	for _, p := range pool {
		if _, ok := drop[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *ItineraryService) ScheduleStoredTrip(ctx context.Context, placeIDs []string, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
	if len(placeIDs) == 0 {
		return nil, utils.NewScheduleError(utils.ErrEmptyPOIPool, "no points of interest to schedule")
	}
	if s.pois == nil {
		return nil, utils.ErrPersistenceOff
	}

	pool, err := s.pois.LoadPool(ctx, placeIDs)
	if err != nil {
		if errors.Is(err, utils.ErrPOINotFound) {
			return nil, utils.NewScheduleError(utils.ErrPOINotFound, "%s", err.Error())
		}
		return nil, err
	}
	req.POIs = pool
	return s.ScheduleTrip(ctx, req)
}

func (s *ItineraryService) SaveSchedule(ctx context.Context, title string, req trip_models.TripRequest, sched *trip_models.TripSchedule) (string, error) {
	if s.journeys == nil {
		return "", utils.ErrPersistenceOff
	}
	return s.journeys.SaveItinerary(ctx, title, req, sched)
}

func (s *ItineraryService) GetSchedule(ctx context.Context, id string) (*trip_models.TripSchedule, error) {
	if s.journeys == nil {
		return nil, utils.ErrPersistenceOff
	}
	return s.journeys.GetItinerary(ctx, id)
}

// ResetCache drops every cached visit profile. Call it between unrelated trips.
func (s *ItineraryService) ResetCache() {
	s.enrich.Reset()
	s.log.Info("visit profile cache cleared")
}

// Summarize renders a short plain-text overview of the schedule.
func (s *ItineraryService) Summarize(sched *trip_models.TripSchedule) string {
	return SummarizeSchedule(sched)
}

func SummarizeSchedule(sched *trip_models.TripSchedule) string {
	if sched == nil || len(sched.Days) == 0 {
		return "No schedule was created."
	}

	var sb strings.Builder
	sb.WriteString("Here's a quick overview of your itinerary:\n\n")
	for _, d := range sched.Days {
		fmt.Fprintf(&sb, "**%s (%s)**\n", utils.FormatDate(d.Date), d.Weekday())
		if d.Empty() {
			note := d.Note
			if note == "" {
				note = "No activities scheduled"
			}
			fmt.Fprintf(&sb, "- %s\n", note)
		}
		for _, a := range d.Activities {
			fmt.Fprintf(&sb, "- %s: %s (%.1f hours)\n", utils.FormatClock(a.Start), displayName(a.POI), a.DurationHours)
		}
		if d.Return != nil {
			fmt.Fprintf(&sb, "- %s: Return to accommodation (arrive %s)\n",
				utils.FormatClock(d.Return.Departure), utils.FormatClock(d.Return.Arrival))
		}
		sb.WriteString("\n")
	}
	if len(sched.Unscheduled) > 0 {
		names := make([]string, 0, len(sched.Unscheduled))
		for _, p := range sched.Unscheduled {
			names = append(names, displayName(p))
		}
		fmt.Fprintf(&sb, "Not scheduled: %s\n", strings.Join(names, ", "))
	}
	return sb.String()
}

func displayName(p trip_models.POI) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
