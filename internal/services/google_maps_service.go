package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"itinerary/internal/models/trip_models"
)

// GoogleMapsClient serves the geocoding, place details and distance matrix
// collaborator contracts from the Google Maps web services.
type GoogleMapsClient struct {
	client *maps.Client
	mode   maps.Mode
}

var (
	_ Geocoder             = (*GoogleMapsClient)(nil)
	_ PlaceDetailsProvider = (*GoogleMapsClient)(nil)
	_ TravelMatrixProvider = (*GoogleMapsClient)(nil)
)

func NewGoogleMapsClient(apiKey, mode string) (*GoogleMapsClient, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	c, err := maps.NewClient(maps.WithAPIKey(apiKey), maps.WithRateLimit(10))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}
	return &GoogleMapsClient{client: c, mode: travelMode(mode)}, nil
}

func travelMode(mode string) maps.Mode {
	switch mode {
	case "walking":
		return maps.TravelModeWalking
	case "bicycling":
		return maps.TravelModeBicycling
	case "transit":
		return maps.TravelModeTransit
	default:
		return maps.TravelModeDriving
	}
}

func (g *GoogleMapsClient) Geocode(ctx context.Context, name string) (trip_models.LatLng, bool, error) {
	res, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: name})
	if err != nil {
		return trip_models.LatLng{}, false, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(res) == 0 {
		return trip_models.LatLng{}, false, nil
	}
	loc := res[0].Geometry.Location
	return trip_models.LatLng{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}

func (g *GoogleMapsClient) PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, error) {
	res, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskOpeningHours,
			maps.PlaceDetailsFieldMaskReviews,
			maps.PlaceDetailsFieldMask("rating"),
			maps.PlaceDetailsFieldMaskUserRatingsTotal,
		},
	})
	if err != nil {
		return PlaceDetails{}, fmt.Errorf("place details %s: %w", placeID, err)
	}

	var out PlaceDetails
	for _, r := range res.Reviews {
		if r.Text != "" {
			out.Reviews = append(out.Reviews, r.Text)
		}
	}
	if res.OpeningHours != nil {
		for _, p := range res.OpeningHours.Periods {
			out.OpeningPeriods = append(out.OpeningPeriods, trip_models.OpeningPeriod{
				Open:  trip_models.DayTime{Day: p.Open.Day, Time: p.Open.Time, Set: p.Open.Time != ""},
				Close: trip_models.DayTime{Day: p.Close.Day, Time: p.Close.Time, Set: p.Close.Time != ""},
			})
		}
	}
	if res.Rating > 0 {
		r := float64(res.Rating)
		out.Rating = &r
	}
	out.RatingCount = res.UserRatingsTotal
	return out, nil
}

func (g *GoogleMapsClient) TravelDuration(ctx context.Context, origin, dest trip_models.LatLng) (time.Duration, error) {
	els, err := g.TravelDurations(ctx, origin, []trip_models.LatLng{dest})
	if err != nil {
		return 0, err
	}
	if !els[0].OK {
		return 0, errors.New("distance matrix element not OK")
	}
	return els[0].Duration, nil
}

func (g *GoogleMapsClient) TravelDurations(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) ([]TravelElement, error) {
	destStrs := make([]string, len(dests))
	for i, d := range dests {
		destStrs[i] = d.String()
	}

	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin.String()},
		Destinations: destStrs,
		Mode:         g.mode,
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	if len(resp.Rows) == 0 {
		return nil, errors.New("distance matrix returned no rows")
	}

	row := resp.Rows[0].Elements
	out := make([]TravelElement, len(dests))
	for i := range out {
		if i < len(row) && row[i] != nil && row[i].Status == "OK" {
			out[i] = TravelElement{Duration: row[i].Duration, OK: true}
		}
	}
	return out, nil
}
