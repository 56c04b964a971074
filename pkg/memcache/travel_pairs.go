package mem

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"itinerary/internal/models/trip_models"
)

// TravelPairCache keeps successful origin->destination travel durations so
// repeated lookups inside one trip (nearest-neighbour ordering, then the
// actual leg) hit the matrix service once.
type TravelPairCache interface {
	Get(mode string, origin, dest trip_models.LatLng) (time.Duration, bool)
	Set(mode string, origin, dest trip_models.LatLng, d time.Duration)
	Flush()
}

type travelPairs struct {
	c *gocache.Cache
}

func NewTravelPairCache(ttl time.Duration) TravelPairCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &travelPairs{c: gocache.New(ttl, ttl/2)}
}

func pairKey(mode string, a, b trip_models.LatLng) string {
	return fmt.Sprintf("%s|%.6f,%.6f|%.6f,%.6f", mode, a.Lat, a.Lng, b.Lat, b.Lng)
}

func (t *travelPairs) Get(mode string, origin, dest trip_models.LatLng) (time.Duration, bool) {
	v, ok := t.c.Get(pairKey(mode, origin, dest))
	if !ok {
		return 0, false
	}
	d, ok := v.(time.Duration)
	return d, ok
}

func (t *travelPairs) Set(mode string, origin, dest trip_models.LatLng, d time.Duration) {
	t.c.SetDefault(pairKey(mode, origin, dest), d)
}

func (t *travelPairs) Flush() {
	t.c.Flush()
}
