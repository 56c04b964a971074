package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"itinerary/internal/models/db_models"
	"itinerary/internal/models/response_models"
	"itinerary/internal/models/trip_models"
	"itinerary/internal/repositories"
	"itinerary/pkg/utils"
)

type POIServiceInterface interface {
	GetPOIById(id string, ctx context.Context) (response_models.POI, error)
	// LoadPool returns the stored POIs for placeIDs in request order. Unknown
	// IDs are an ErrPOINotFound.
	LoadPool(ctx context.Context, placeIDs []string) ([]trip_models.POI, error)
	SavePOIs(ctx context.Context, pois []trip_models.POI) error
}

type PoiService struct {
	poiRepository repositories.POIRepository
	profiles      EnrichmentServiceInterface
	log           *zap.Logger
}

// NewPoiService accepts a nil repository; every call then reports
// utils.ErrPersistenceOff.
func NewPoiService(poiRepository repositories.POIRepository, profiles EnrichmentServiceInterface, log *zap.Logger) POIServiceInterface {
	return &PoiService{
		poiRepository: poiRepository,
		profiles:      profiles,
		log:           log.Named("poi"),
	}
}

func (p *PoiService) GetPOIById(id string, ctx context.Context) (response_models.POI, error) {
	if p.poiRepository == nil {
		return response_models.POI{}, utils.ErrPersistenceOff
	}

	row, err := p.poiRepository.GetByPlaceID(ctx, id)
	if err != nil {
		p.log.Error("get poi", zap.String("place_id", id), zap.Error(err))
		return response_models.POI{}, utils.ErrDatabaseError
	}
	if row == nil {
		return response_models.POI{}, utils.ErrPOINotFound
	}

	poi := p.toTripPOI(*row)
	out := response_models.POI{
		ID:          poi.ID,
		Name:        poi.Name,
		Vicinity:    poi.Vicinity,
		Types:       poi.Types,
		Latitude:    poi.Location.Lat,
		Longitude:   poi.Location.Lng,
		Rating:      poi.Rating,
		RatingCount: poi.RatingCount,
	}
	if len(poi.Reviews) > 0 || len(poi.OpeningPeriods) > 0 {
		out.PoiDetails = &response_models.PoiDetails{
			Reviews:        poi.Reviews,
			OpeningPeriods: poi.OpeningPeriods,
		}
	}
	if p.profiles != nil {
		if v, ok := p.profiles.Cached(poi.ID); ok {
			out.Visit = &response_models.Visit{DurationHours: v.DurationHours, OptimalTime: v.OptimalTime}
		}
	}
	return out, nil
}

func (p *PoiService) LoadPool(ctx context.Context, placeIDs []string) ([]trip_models.POI, error) {
	if p.poiRepository == nil {
		return nil, utils.ErrPersistenceOff
	}

	rows, err := p.poiRepository.ListByPlaceIDs(ctx, placeIDs)
	if err != nil {
		p.log.Error("list pois", zap.Int("count", len(placeIDs)), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	found := make(map[string]struct{}, len(rows))
	pool := make([]trip_models.POI, 0, len(rows))
	for _, row := range rows {
		found[row.PlaceID] = struct{}{}
		pool = append(pool, p.toTripPOI(row))
	}
	for _, id := range placeIDs {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: %s", utils.ErrPOINotFound, id)
		}
	}
	return pool, nil
}

func (p *PoiService) SavePOIs(ctx context.Context, pois []trip_models.POI) error {
	if p.poiRepository == nil {
		return utils.ErrPersistenceOff
	}

	for _, poi := range pois {
		row, err := fromTripPOI(poi)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
		}
		if err := p.poiRepository.Upsert(ctx, row); err != nil {
			p.log.Error("upsert poi", zap.String("place_id", poi.ID), zap.Error(err))
			return utils.ErrDatabaseError
		}
	}
	return nil
}

// toTripPOI maps a stored row to the scheduling model. Undecodable JSON
// columns are logged and left empty.
func (p *PoiService) toTripPOI(row db_models.POI) trip_models.POI {
	poi := trip_models.POI{
		ID:          row.PlaceID,
		Name:        row.Name,
		Vicinity:    row.Vicinity,
		Types:       []string(row.Types),
		Location:    trip_models.LatLng{Lat: row.Latitude, Lng: row.Longitude},
		Rating:      row.Rating,
		RatingCount: row.RatingCount,
	}
	if len(row.Details.Reviews) > 0 {
		if err := json.Unmarshal(row.Details.Reviews, &poi.Reviews); err != nil {
			p.log.Warn("decode poi reviews", zap.String("place_id", row.PlaceID), zap.Error(err))
		}
	}
	if len(row.Details.OpeningPeriods) > 0 {
		if err := json.Unmarshal(row.Details.OpeningPeriods, &poi.OpeningPeriods); err != nil {
			p.log.Warn("decode poi opening periods", zap.String("place_id", row.PlaceID), zap.Error(err))
		}
	}
	return poi
}

func fromTripPOI(poi trip_models.POI) (*db_models.POI, error) {
	if poi.ID == "" {
		return nil, fmt.Errorf("poi has no place id")
	}
	if !poi.Location.Valid() {
		return nil, fmt.Errorf("poi %q has an invalid location", poi.ID)
	}

	reviews := poi.Reviews
	if reviews == nil {
		reviews = []string{}
	}
	rb, err := json.Marshal(reviews)
	if err != nil {
		return nil, err
	}
	periods := poi.OpeningPeriods
	if periods == nil {
		periods = []trip_models.OpeningPeriod{}
	}
	pb, err := json.Marshal(periods)
	if err != nil {
		return nil, err
	}

	return &db_models.POI{
		PlaceID:     poi.ID,
		Name:        poi.Name,
		Vicinity:    poi.Vicinity,
		Types:       poi.Types,
		Latitude:    poi.Location.Lat,
		Longitude:   poi.Location.Lng,
		Rating:      poi.Rating,
		RatingCount: poi.RatingCount,
		Details: db_models.POIDetail{
			Reviews:        datatypes.JSON(rb),
			OpeningPeriods: datatypes.JSON(pb),
		},
	}, nil
}
