package distance_matrix_fx

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinerary/internal/config"
	"itinerary/internal/services"
	mem "itinerary/pkg/memcache"
)

// Module provides the maps collaborators. Each provider returns a nil
// interface when its backing service is not configured.
var Module = fx.Provide(
	provideGoogleMaps,
	provideGeocoder,
	providePlaceDetails,
	provideTravelProvider)

func provideGoogleMaps(cfg config.Config, log *zap.Logger) (*services.GoogleMapsClient, error) {
	if cfg.GoogleMapsAPIKey == "" {
		log.Info("GOOGLE_MAPS_API_KEY not set, geocoding and place details disabled")
		return nil, nil
	}
	return services.NewGoogleMapsClient(cfg.GoogleMapsAPIKey, cfg.TravelMode)
}

func provideGeocoder(g *services.GoogleMapsClient) services.Geocoder {
	if g == nil {
		return nil
	}
	return g
}

func providePlaceDetails(g *services.GoogleMapsClient) services.PlaceDetailsProvider {
	if g == nil {
		return nil
	}
	return g
}

func provideTravelProvider(
	cfg config.Config,
	g *services.GoogleMapsClient,
	pairs mem.TravelPairCache,
	log *zap.Logger,
) (services.TravelTimeProvider, error) {
	var inner services.TravelTimeProvider
	switch cfg.TravelProvider {
	case "google":
		if g == nil {
			return nil, fmt.Errorf("TRAVEL_PROVIDER=google requires GOOGLE_MAPS_API_KEY")
		}
		inner = g
	case "mapbox":
		mb, err := services.NewMapboxMatrixClient(cfg.MapboxAccessToken, cfg.TravelMode)
		if err != nil {
			return nil, err
		}
		inner = mb
	default:
		log.Info("travel provider disabled, every leg uses the fallback travel time")
		return nil, nil
	}
	return services.NewCachingTravelProvider(inner, pairs, cfg.TravelProvider+":"+cfg.TravelMode), nil
}
