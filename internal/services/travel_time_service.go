package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"itinerary/internal/models/trip_models"
	mem "itinerary/pkg/memcache"
)

// FallbackTravelMinutes is used whenever a travel lookup fails or returns
// something unusable.
const FallbackTravelMinutes = 30.0

const travelLookupConcurrency = 5

type TravelTimeServiceInterface interface {
	TravelMinutes(ctx context.Context, origin, dest trip_models.LatLng) float64
	// TravelMinutesMany returns one value per destination, in order.
	TravelMinutesMany(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) []float64
}

type TravelTimeService struct {
	provider TravelTimeProvider
	log      *zap.Logger
}

func NewTravelTimeService(sc *SchedulerContext) TravelTimeServiceInterface {
	return &TravelTimeService{
		provider: sc.Travel,
		log:      sc.Log.Named("travel"),
	}
}

func (s *TravelTimeService) TravelMinutes(ctx context.Context, origin, dest trip_models.LatLng) float64 {
	if origin.Equal(dest) {
		return 0
	}
	if s.provider == nil {
		return FallbackTravelMinutes
	}

	d, err := s.provider.TravelDuration(ctx, origin, dest)
	if err != nil {
		s.log.Warn("travel lookup failed, using fallback",
			zap.Stringer("origin", origin), zap.Stringer("dest", dest), zap.Error(err))
		return FallbackTravelMinutes
	}
	return usableMinutes(d)
}

func (s *TravelTimeService) TravelMinutesMany(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) []float64 {
	out := make([]float64, len(dests))
	if len(dests) == 0 {
		return out
	}
	if s.provider == nil {
		for i, d := range dests {
			out[i] = FallbackTravelMinutes
			if origin.Equal(d) {
				out[i] = 0
			}
		}
		return out
	}

	if mp, ok := s.provider.(TravelMatrixProvider); ok {
		els, err := mp.TravelDurations(ctx, origin, dests)
		if err == nil && len(els) != len(dests) {
			err = fmt.Errorf("matrix returned %d elements for %d destinations", len(els), len(dests))
		}
		if err != nil {
			s.log.Warn("travel matrix lookup failed, using fallback", zap.Stringer("origin", origin), zap.Error(err))
		}
		for i, d := range dests {
			switch {
			case origin.Equal(d):
				out[i] = 0
			case err != nil || !els[i].OK:
				out[i] = FallbackTravelMinutes
			default:
				out[i] = usableMinutes(els[i].Duration)
			}
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(travelLookupConcurrency)
	for i, d := range dests {
		g.Go(func() error {
			out[i] = s.TravelMinutes(gctx, origin, d)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func usableMinutes(d time.Duration) float64 {
	m := d.Minutes()
	if d < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return FallbackTravelMinutes
	}
	return m
}

// ---- Caching provider ----

var errNoTravelProvider = errors.New("no travel provider configured")

// CachingTravelProvider memoises successful lookups of an underlying provider
// per (mode, origin, destination). Failed and non-OK lookups are not cached.
type CachingTravelProvider struct {
	inner TravelTimeProvider
	cache mem.TravelPairCache
	mode  string
}

var _ TravelMatrixProvider = (*CachingTravelProvider)(nil)

func NewCachingTravelProvider(inner TravelTimeProvider, cache mem.TravelPairCache, mode string) *CachingTravelProvider {
	return &CachingTravelProvider{inner: inner, cache: cache, mode: mode}
}

func (c *CachingTravelProvider) TravelDuration(ctx context.Context, origin, dest trip_models.LatLng) (time.Duration, error) {
	if d, ok := c.cache.Get(c.mode, origin, dest); ok {
		return d, nil
	}
	if c.inner == nil {
		return 0, errNoTravelProvider
	}
	d, err := c.inner.TravelDuration(ctx, origin, dest)
	if err != nil {
		return 0, err
	}
	c.cache.Set(c.mode, origin, dest, d)
	return d, nil
}

func (c *CachingTravelProvider) TravelDurations(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) ([]TravelElement, error) {
	out := make([]TravelElement, len(dests))
	var missIdx []int
	var missDests []trip_models.LatLng
	for i, d := range dests {
		if v, ok := c.cache.Get(c.mode, origin, d); ok {
			out[i] = TravelElement{Duration: v, OK: true}
			continue
		}
		missIdx = append(missIdx, i)
		missDests = append(missDests, d)
	}
	if len(missIdx) == 0 {
		return out, nil
	}
	if c.inner == nil {
		return nil, errNoTravelProvider
	}

	if mp, ok := c.inner.(TravelMatrixProvider); ok {
		els, err := mp.TravelDurations(ctx, origin, missDests)
		if err != nil {
			return nil, err
		}
		if len(els) != len(missDests) {
			return nil, fmt.Errorf("matrix returned %d elements for %d destinations", len(els), len(missDests))
		}
		for j, el := range els {
			out[missIdx[j]] = el
			if el.OK {
				c.cache.Set(c.mode, origin, missDests[j], el.Duration)
			}
		}
		return out, nil
	}

	for j, d := range missDests {
		v, err := c.TravelDuration(ctx, origin, d)
		out[missIdx[j]] = TravelElement{Duration: v, OK: err == nil}
	}
	return out, nil
}
