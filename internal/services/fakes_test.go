package services_test

import (
	"context"
	"sync"
	"time"

	"itinerary/internal/models/trip_models"
	"itinerary/internal/services"
	"itinerary/pkg/utils"
)

// Func-field fakes. Set only the fields a test needs; call counters are
// goroutine-safe because Prefetch fans out.

type fakeTravel struct {
	mu       sync.Mutex
	calls    int
	duration func(origin, dest trip_models.LatLng) (time.Duration, error)
}

func (f *fakeTravel) TravelDuration(_ context.Context, origin, dest trip_models.LatLng) (time.Duration, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.duration(origin, dest)
}

func (f *fakeTravel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ services.TravelTimeProvider = (*fakeTravel)(nil)

type fakeMatrix struct {
	fakeTravel
	matrixCalls int
	durations   func(origin trip_models.LatLng, dests []trip_models.LatLng) ([]services.TravelElement, error)
}

func (f *fakeMatrix) TravelDurations(_ context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) ([]services.TravelElement, error) {
	f.mu.Lock()
	f.matrixCalls++
	f.mu.Unlock()
	return f.durations(origin, dests)
}

var _ services.TravelMatrixProvider = (*fakeMatrix)(nil)

// fixedTravel answers every pair with d.
func fixedTravel(d time.Duration) *fakeTravel {
	return &fakeTravel{duration: func(_, _ trip_models.LatLng) (time.Duration, error) { return d, nil }}
}

type fakeDetails struct {
	mu      sync.Mutex
	calls   map[string]int
	details func(placeID string) (services.PlaceDetails, error)
}

func (f *fakeDetails) PlaceDetails(_ context.Context, placeID string) (services.PlaceDetails, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[placeID]++
	f.mu.Unlock()
	return f.details(placeID)
}

func (f *fakeDetails) Calls(placeID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[placeID]
}

var _ services.PlaceDetailsProvider = (*fakeDetails)(nil)

type fakeText struct {
	mu       sync.Mutex
	calls    int
	inFlight int
	peak     int
	delay    time.Duration
	generate func(prompt string) (string, error)
}

func (f *fakeText) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return f.generate(prompt)
}

func (f *fakeText) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ utils.TextGenerator = (*fakeText)(nil)

type fakeGeocoder struct {
	geocode func(name string) (trip_models.LatLng, bool, error)
}

func (f *fakeGeocoder) Geocode(_ context.Context, name string) (trip_models.LatLng, bool, error) {
	return f.geocode(name)
}

var _ services.Geocoder = (*fakeGeocoder)(nil)

// ---- fixtures ----

func poiAt(id string, lat, lng float64) trip_models.POI {
	return trip_models.POI{ID: id, Name: id, Location: trip_models.LatLng{Lat: lat, Lng: lng}}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type engine struct {
	sc        *services.SchedulerContext
	enrich    services.EnrichmentServiceInterface
	travel    services.TravelTimeServiceInterface
	days      services.DaySchedulerInterface
	itinerary services.ItineraryServiceInterface
}

func newEngine(opts ...services.SchedulerOption) engine {
	opts = append([]services.SchedulerOption{services.WithRandSeed(7)}, opts...)
	sc := services.NewSchedulerContext(nil, opts...)
	enrich := services.NewEnrichmentService(sc)
	travel := services.NewTravelTimeService(sc)
	days := services.NewDayScheduler(sc, enrich, travel)
	return engine{
		sc:        sc,
		enrich:    enrich,
		travel:    travel,
		days:      days,
		itinerary: services.NewItineraryService(sc, enrich, days, nil, nil),
	}
}
