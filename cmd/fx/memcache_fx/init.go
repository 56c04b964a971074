package memcache_fx

import (
	"go.uber.org/fx"

	"itinerary/internal/config"
	mem "itinerary/pkg/memcache"
)

var Module = fx.Provide(provideVisitProfiles, provideTravelPairs)

func provideVisitProfiles() mem.VisitProfileStore {
	return mem.NewVisitProfiles()
}

func provideTravelPairs(cfg config.Config) mem.TravelPairCache {
	return mem.NewTravelPairCache(cfg.TravelCacheTTL)
}
