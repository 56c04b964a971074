package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinerary/internal/config"
	"itinerary/internal/services"
	mem "itinerary/pkg/memcache"
	"itinerary/pkg/utils"
)

var Module = fx.Provide(
	provideSchedulerContext,
	services.NewEnrichmentService,
	services.NewTravelTimeService,
	services.NewDayScheduler,
	services.NewItineraryService)

func provideSchedulerContext(
	cfg config.Config,
	profiles mem.VisitProfileStore,
	geocoder services.Geocoder,
	details services.PlaceDetailsProvider,
	travel services.TravelTimeProvider,
	text utils.TextGenerator,
	log *zap.Logger,
) (*services.SchedulerContext, error) {
	policy, err := services.NewOpeningHoursPolicy(cfg.OpeningHoursPolicy)
	if err != nil {
		return nil, err
	}
	return services.NewSchedulerContext(profiles,
		services.WithGeocoder(geocoder),
		services.WithPlaceDetails(details),
		services.WithTravelProvider(travel),
		services.WithTextGenerator(text),
		services.WithOpeningHoursPolicy(policy),
		services.WithLogger(log),
	), nil
}
