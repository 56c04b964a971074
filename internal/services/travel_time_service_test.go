package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"itinerary/internal/models/trip_models"
	"itinerary/internal/services"
	mem "itinerary/pkg/memcache"
)

var (
	origin = trip_models.LatLng{Lat: 48.8566, Lng: 2.3522}
	dest   = trip_models.LatLng{Lat: 48.8606, Lng: 2.3376}
)

func TestTravelMinutes(t *testing.T) {
	cases := []struct {
		name string
		fn   func(_, _ trip_models.LatLng) (time.Duration, error)
		want float64
	}{
		{"ok", func(_, _ trip_models.LatLng) (time.Duration, error) { return 12 * time.Minute, nil }, 12},
		{"error", func(_, _ trip_models.LatLng) (time.Duration, error) { return 0, errors.New("ZERO_RESULTS") }, 30},
		{"negative", func(_, _ trip_models.LatLng) (time.Duration, error) { return -time.Minute, nil }, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(services.WithTravelProvider(&fakeTravel{duration: tc.fn}))
			assert.Equal(t, tc.want, e.travel.TravelMinutes(context.Background(), origin, dest))
		})
	}
}

func TestTravelMinutes_SamePointIsZero(t *testing.T) {
	provider := fixedTravel(time.Hour)
	e := newEngine(services.WithTravelProvider(provider))

	assert.Zero(t, e.travel.TravelMinutes(context.Background(), origin, origin))
	assert.Zero(t, provider.Calls())
}

func TestTravelMinutes_NoProvider(t *testing.T) {
	e := newEngine()
	assert.Equal(t, services.FallbackTravelMinutes, e.travel.TravelMinutes(context.Background(), origin, dest))
}

func TestTravelMinutesMany_UsesMatrix(t *testing.T) {
	m := &fakeMatrix{durations: func(_ trip_models.LatLng, dests []trip_models.LatLng) ([]services.TravelElement, error) {
		return []services.TravelElement{
			{Duration: 10 * time.Minute, OK: true},
			{OK: false},
			{Duration: 5 * time.Minute, OK: true},
		}, nil
	}}
	e := newEngine(services.WithTravelProvider(m))

	got := e.travel.TravelMinutesMany(context.Background(), origin, []trip_models.LatLng{dest, {Lat: 1, Lng: 1}, origin})
	assert.Equal(t, []float64{10, 30, 0}, got)
	assert.Equal(t, 1, m.matrixCalls)
	assert.Zero(t, m.Calls())
}

func TestTravelMinutesMany_MatrixFailures(t *testing.T) {
	cases := []struct {
		name string
		els  []services.TravelElement
		err  error
	}{
		{"error", nil, errors.New("OVER_QUERY_LIMIT")},
		{"short response", []services.TravelElement{{Duration: time.Minute, OK: true}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &fakeMatrix{durations: func(trip_models.LatLng, []trip_models.LatLng) ([]services.TravelElement, error) {
				return tc.els, tc.err
			}}
			e := newEngine(services.WithTravelProvider(m))

			got := e.travel.TravelMinutesMany(context.Background(), origin, []trip_models.LatLng{dest, origin, {Lat: 2, Lng: 2}})
			assert.Equal(t, []float64{30, 0, 30}, got)
		})
	}
}

func TestTravelMinutesMany_PairwiseFallback(t *testing.T) {
	provider := &fakeTravel{duration: func(_, d trip_models.LatLng) (time.Duration, error) {
		return time.Duration(d.Lat) * time.Minute, nil
	}}
	e := newEngine(services.WithTravelProvider(provider))

	dests := []trip_models.LatLng{{Lat: 3}, {Lat: 7}, {Lat: 1}, {Lat: 9}, {Lat: 4}, {Lat: 6}}
	got := e.travel.TravelMinutesMany(context.Background(), origin, dests)
	assert.Equal(t, []float64{3, 7, 1, 9, 4, 6}, got)
	assert.Equal(t, 6, provider.Calls())
}

// ---- CachingTravelProvider ----

func TestCachingTravelProvider_CachesSuccessOnly(t *testing.T) {
	fail := true
	inner := &fakeTravel{duration: func(_, _ trip_models.LatLng) (time.Duration, error) {
		if fail {
			return 0, errors.New("timeout")
		}
		return 8 * time.Minute, nil
	}}
	c := services.NewCachingTravelProvider(inner, mem.NewTravelPairCache(time.Hour), "google:driving")
	ctx := context.Background()

	_, err := c.TravelDuration(ctx, origin, dest)
	assert.Error(t, err)

	fail = false
	d, err := c.TravelDuration(ctx, origin, dest)
	assert.NoError(t, err)
	assert.Equal(t, 8*time.Minute, d)

	d, err = c.TravelDuration(ctx, origin, dest)
	assert.NoError(t, err)
	assert.Equal(t, 8*time.Minute, d)
	assert.Equal(t, 2, inner.Calls())
}

func TestCachingTravelProvider_MatrixAsksOnlyForMisses(t *testing.T) {
	other := trip_models.LatLng{Lat: 1, Lng: 1}
	var asked [][]trip_models.LatLng
	inner := &fakeMatrix{durations: func(_ trip_models.LatLng, dests []trip_models.LatLng) ([]services.TravelElement, error) {
		asked = append(asked, dests)
		out := make([]services.TravelElement, len(dests))
		for i, d := range dests {
			out[i] = services.TravelElement{Duration: 4 * time.Minute, OK: d.Equal(dest)}
		}
		return out, nil
	}}
	c := services.NewCachingTravelProvider(inner, mem.NewTravelPairCache(time.Hour), "mapbox:driving")
	ctx := context.Background()

	els, err := c.TravelDurations(ctx, origin, []trip_models.LatLng{dest, other})
	assert.NoError(t, err)
	assert.True(t, els[0].OK)
	assert.False(t, els[1].OK)

	els, err = c.TravelDurations(ctx, origin, []trip_models.LatLng{dest, other})
	assert.NoError(t, err)
	assert.Equal(t, services.TravelElement{Duration: 4 * time.Minute, OK: true}, els[0])
	assert.Equal(t, [][]trip_models.LatLng{{dest, other}, {other}}, asked)
}

func TestCachingTravelProvider_ModeIsPartOfKey(t *testing.T) {
	cache := mem.NewTravelPairCache(time.Hour)
	driving := services.NewCachingTravelProvider(fixedTravel(5*time.Minute), cache, "driving")
	walkingInner := fixedTravel(40 * time.Minute)
	walking := services.NewCachingTravelProvider(walkingInner, cache, "walking")
	ctx := context.Background()

	_, _ = driving.TravelDuration(ctx, origin, dest)
	d, err := walking.TravelDuration(ctx, origin, dest)
	assert.NoError(t, err)
	assert.Equal(t, 40*time.Minute, d)
	assert.Equal(t, 1, walkingInner.Calls())
}
