package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"itinerary/internal/models/db_models"
	"itinerary/internal/models/trip_models"
	"itinerary/internal/repositories"
	"itinerary/pkg/utils"
)

type JourneyServiceInterface interface {
	SaveItinerary(ctx context.Context, title string, req trip_models.TripRequest, s *trip_models.TripSchedule) (string, error)
	GetItinerary(ctx context.Context, id string) (*trip_models.TripSchedule, error)
}

type JourneyService struct {
	journeyRepo repositories.JourneyRepository
	loc         *time.Location
	log         *zap.Logger
}

// NewJourneyService accepts a nil repository; every call then reports
// utils.ErrPersistenceOff. Stored times are read back in loc.
func NewJourneyService(journeyRepo repositories.JourneyRepository, loc *time.Location, log *zap.Logger) JourneyServiceInterface {
	if loc == nil {
		loc = time.UTC
	}
	return &JourneyService{
		journeyRepo: journeyRepo,
		loc:         loc,
		log:         log.Named("journey"),
	}
}

func (j *JourneyService) SaveItinerary(ctx context.Context, title string, req trip_models.TripRequest, s *trip_models.TripSchedule) (string, error) {
	if j.journeyRepo == nil {
		return "", utils.ErrPersistenceOff
	}
	if title == "" {
		title = "Trip " + utils.FormatDate(req.StartDate)
	}

	row := &db_models.Journey{
		Title:                 title,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		AccommodationLat:      s.Accommodation.Lat,
		AccommodationLng:      s.Accommodation.Lng,
		ReturnToAccommodation: !req.SkipReturn,
	}
	for _, p := range s.Unscheduled {
		row.Unscheduled = append(row.Unscheduled, p.ID)
	}

	for i, d := range s.Days {
		day := db_models.JourneyDay{
			Date:      d.Date,
			DayNumber: i + 1,
			Note:      d.Note,
		}
		if d.Return != nil {
			dep, arr, mins := d.Return.Departure, d.Return.Arrival, d.Return.TravelMinutes
			day.ReturnDeparture = &dep
			day.ReturnArrival = &arr
			day.ReturnTravelMinutes = &mins
		}
		for k, a := range d.Activities {
			day.Activities = append(day.Activities, db_models.JourneyActivity{
				Position:      k,
				Time:          a.Start,
				EndTime:       a.End(),
				PlaceID:       a.POI.ID,
				POIName:       a.POI.Name,
				Latitude:      a.POI.Location.Lat,
				Longitude:     a.POI.Location.Lng,
				DurationHours: a.DurationHours,
				TravelMinutes: a.TravelMinutes,
				Notes:         a.OptimalTime,
			})
		}
		row.Days = append(row.Days, day)
	}

	id, err := j.journeyRepo.SaveItinerary(ctx, row)
	if err != nil {
		j.log.Error("save itinerary", zap.Error(err))
		return "", utils.ErrDatabaseError
	}
	j.log.Info("itinerary saved", zap.String("journey_id", id.String()), zap.Int("days", len(row.Days)))
	return id.String(), nil
}

func (j *JourneyService) GetItinerary(ctx context.Context, id string) (*trip_models.TripSchedule, error) {
	if j.journeyRepo == nil {
		return nil, utils.ErrPersistenceOff
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrJourneyNotFound
	}

	row, err := j.journeyRepo.GetDetailsOfJourneyById(ctx, id)
	if err != nil {
		j.log.Error("get itinerary", zap.String("journey_id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if row == nil {
		return nil, utils.ErrJourneyNotFound
	}

	out := &trip_models.TripSchedule{
		Accommodation: trip_models.LatLng{Lat: row.AccommodationLat, Lng: row.AccommodationLng},
		Days:          make([]trip_models.DayPlan, 0, len(row.Days)),
	}
	for _, pid := range row.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, trip_models.POI{ID: pid})
	}
	for _, d := range row.Days {
		plan := trip_models.DayPlan{
			Date:       d.Date.In(j.loc),
			Activities: make([]trip_models.Activity, 0, len(d.Activities)),
			Note:       d.Note,
		}
		for _, a := range d.Activities {
			plan.Activities = append(plan.Activities, trip_models.Activity{
				POI: trip_models.POI{
					ID:       a.PlaceID,
					Name:     a.POIName,
					Location: trip_models.LatLng{Lat: a.Latitude, Lng: a.Longitude},
				},
				Start:         a.Time.In(j.loc),
				DurationHours: a.DurationHours,
				OptimalTime:   a.Notes,
				TravelMinutes: a.TravelMinutes,
			})
		}
		if d.ReturnDeparture != nil && d.ReturnArrival != nil {
			leg := &trip_models.ReturnLeg{
				Departure: d.ReturnDeparture.In(j.loc),
				Arrival:   d.ReturnArrival.In(j.loc),
			}
			if d.ReturnTravelMinutes != nil {
				leg.TravelMinutes = *d.ReturnTravelMinutes
			}
			plan.Return = leg
		}
		out.Days = append(out.Days, plan)
	}
	return out, nil
}
