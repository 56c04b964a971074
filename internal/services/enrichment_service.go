package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"itinerary/internal/models/trip_models"
)

// prefetchBatchSize bounds concurrent enrichment requests against the
// collaborators' rate limits.
const prefetchBatchSize = 5

type EnrichmentServiceInterface interface {
	// Resolve never fails: any collaborator problem degrades the profile to
	// the best local estimate.
	Resolve(ctx context.Context, poi trip_models.POI) trip_models.VisitProfile
	Prefetch(ctx context.Context, pois []trip_models.POI) error
	Cached(placeID string) (trip_models.VisitProfile, bool)
	Reset()
}

type EnrichmentService struct {
	sc    *SchedulerContext
	log   *zap.Logger
	group singleflight.Group
}

func NewEnrichmentService(sc *SchedulerContext) EnrichmentServiceInterface {
	return &EnrichmentService{
		sc:  sc,
		log: sc.Log.Named("enrichment"),
	}
}

func (s *EnrichmentService) Cached(placeID string) (trip_models.VisitProfile, bool) {
	return s.sc.Profiles.Get(placeID)
}

func (s *EnrichmentService) Reset() {
	s.sc.Profiles.Reset()
}

func (s *EnrichmentService) Resolve(ctx context.Context, poi trip_models.POI) trip_models.VisitProfile {
	if p, ok := s.sc.Profiles.Get(poi.ID); ok {
		s.log.Debug("visit profile cache hit", zap.String("place_id", poi.ID))
		return p
	}

	v, _, _ := s.group.Do(poi.ID, func() (interface{}, error) {
		if p, ok := s.sc.Profiles.Get(poi.ID); ok {
			return resolvedProfile{profile: p, complete: true}, nil
		}
		p := s.build(ctx, poi)
		// A cancelled run produces a degraded profile; leave it out of the
		// cache so the next run can enrich properly.
		complete := ctx.Err() == nil
		if complete {
			s.sc.Profiles.Set(poi.ID, p)
		}
		return resolvedProfile{profile: p, complete: complete}, nil
	})
	r := v.(resolvedProfile)
	if !r.complete && ctx.Err() == nil {
		// Joined a lookup whose caller was cancelled.
		return s.Resolve(ctx, poi)
	}
	return r.profile
}

type resolvedProfile struct {
	profile  trip_models.VisitProfile
	complete bool
}

func (s *EnrichmentService) build(ctx context.Context, poi trip_models.POI) trip_models.VisitProfile {
	base := EstimateDuration(poi)
	profile := trip_models.VisitProfile{
		DurationHours: base,
		OptimalTime:   trip_models.AnytimeNote,
	}

	details := s.details(ctx, poi)
	if len(details.Reviews) > 0 || len(details.OpeningPeriods) > 0 || details.Rating != nil {
		if h, ok := ExtractReviewDuration(details.Reviews); ok {
			profile.DurationHours = h
		} else {
			profile.DurationHours = adjustForRating(base, details.Rating, details.RatingCount)
		}

		var sampled []string
		s.sc.withRand(func(r *rand.Rand) {
			sampled = SampleReviews(details.Reviews, maxSampledReviews, r)
		})
		if note, ok := s.optimalTime(sampled, details.OpeningPeriods); ok {
			profile.OptimalTime = note
		}
	}

	if s.sc.Text != nil {
		answer, err := s.sc.Text.GenerateText(ctx, visitPrompt(poi))
		if err != nil {
			s.log.Warn("visit question failed", zap.String("place_id", poi.ID), zap.Error(err))
		} else {
			parsed := ParseVisitAnswer(answer)
			if parsed.DurationHours != nil {
				profile.DurationHours = *parsed.DurationHours
			}
			if parsed.OptimalTime != "" {
				profile.OptimalTime = parsed.OptimalTime
			}
		}
	}

	if profile.DurationHours <= 0 {
		profile.DurationHours = base
	}
	return profile
}

// details merges the POI's own signals with a Place Details lookup. Fields
// returned by the provider win over what the POI already carried.
func (s *EnrichmentService) details(ctx context.Context, poi trip_models.POI) PlaceDetails {
	out := PlaceDetails{
		Reviews:        poi.Reviews,
		OpeningPeriods: poi.OpeningPeriods,
		Rating:         poi.Rating,
		RatingCount:    poi.RatingCount,
	}
	if s.sc.Details == nil {
		return out
	}

	d, err := s.sc.Details.PlaceDetails(ctx, poi.ID)
	if err != nil {
		s.log.Warn("place details lookup failed", zap.String("place_id", poi.ID), zap.Error(err))
		return out
	}
	if len(d.Reviews) > 0 {
		out.Reviews = d.Reviews
	}
	if len(d.OpeningPeriods) > 0 {
		out.OpeningPeriods = d.OpeningPeriods
	}
	if d.Rating != nil {
		out.Rating = d.Rating
	}
	if d.RatingCount > 0 {
		out.RatingCount = d.RatingCount
	}
	return out
}

// optimalTime prefers review text, then opening hours, then place-type advice.
func (s *EnrichmentService) optimalTime(reviews []string, periods []trip_models.OpeningPeriod) (string, bool) {
	if note, ok := MineOptimalTime(reviews); ok {
		return note, true
	}
	if note, ok := AnalyzeOpeningHours(periods); ok {
		return note, true
	}
	return CategoryAdvice(reviews)
}

func visitPrompt(poi trip_models.POI) string {
	where := poi.Vicinity
	if where == "" {
		where = poi.Location.String()
	}
	return fmt.Sprintf("How long does it typically take to visit %s in %s? "+
		"What's the best time of day to visit to avoid crowds? "+
		"Respond with duration in hours (e.g. 2.5 hours) and time of day recommendations.",
		poi.Name, where)
}

// Prefetch enriches every uncached POI in batches of prefetchBatchSize. A
// batch runs concurrently and is awaited before the next one starts.
func (s *EnrichmentService) Prefetch(ctx context.Context, pois []trip_models.POI) error {
	seen := make(map[string]struct{}, len(pois))
	var missing []trip_models.POI
	for _, p := range pois {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if _, ok := s.sc.Profiles.Get(p.ID); !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	s.log.Debug("prefetching visit profiles", zap.Int("count", len(missing)))
	for start := 0; start < len(missing); start += prefetchBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+prefetchBatchSize, len(missing))

		g, gctx := errgroup.WithContext(ctx)
		for _, p := range missing[start:end] {
			g.Go(func() error {
				s.Resolve(gctx, p)
				return nil
			})
		}
		_ = g.Wait()
	}
	return ctx.Err()
}
