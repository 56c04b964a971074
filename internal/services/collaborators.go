package services

import (
	"context"
	"time"

	"itinerary/internal/models/trip_models"
)

// Geocoder resolves a free-text place name to a coordinate. found is false
// when the lookup succeeded but matched nothing.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (loc trip_models.LatLng, found bool, err error)
}

// PlaceDetails is the partial detail record of one place. Any field may be
// empty when the provider did not return it.
type PlaceDetails struct {
	Reviews        []string
	OpeningPeriods []trip_models.OpeningPeriod
	Rating         *float64
	RatingCount    int
}

type PlaceDetailsProvider interface {
	PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error)
}

// TravelTimeProvider answers a single origin/destination travel duration.
type TravelTimeProvider interface {
	TravelDuration(ctx context.Context, origin, dest trip_models.LatLng) (time.Duration, error)
}

// TravelElement is one cell of a one-row travel matrix. OK is false when the
// provider reported a per-element failure (NOT_FOUND, ZERO_RESULTS, ...).
type TravelElement struct {
	Duration time.Duration
	OK       bool
}

// TravelMatrixProvider is an optional extension of TravelTimeProvider that
// answers one origin against many destinations in a single request.
type TravelMatrixProvider interface {
	TravelTimeProvider
	TravelDurations(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) ([]TravelElement, error)
}
