package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	mem "itinerary/pkg/memcache"
	"itinerary/pkg/utils"
)

// SchedulerContext owns the state shared by every scheduling component: the
// Visit Profile cache and the collaborator handles. Nil collaborators are
// simply skipped.
type SchedulerContext struct {
	Profiles     mem.VisitProfileStore
	Details      PlaceDetailsProvider
	Travel       TravelTimeProvider
	Geocoder     Geocoder
	Text         utils.TextGenerator
	OpeningHours OpeningHoursPolicy
	Log          *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

type SchedulerOption func(*SchedulerContext)

func WithPlaceDetails(p PlaceDetailsProvider) SchedulerOption {
	return func(s *SchedulerContext) { s.Details = p }
}

func WithTravelProvider(p TravelTimeProvider) SchedulerOption {
	return func(s *SchedulerContext) { s.Travel = p }
}

func WithGeocoder(g Geocoder) SchedulerOption {
	return func(s *SchedulerContext) { s.Geocoder = g }
}

func WithTextGenerator(t utils.TextGenerator) SchedulerOption {
	return func(s *SchedulerContext) { s.Text = t }
}

func WithOpeningHoursPolicy(p OpeningHoursPolicy) SchedulerOption {
	return func(s *SchedulerContext) { s.OpeningHours = p }
}

func WithLogger(l *zap.Logger) SchedulerOption {
	return func(s *SchedulerContext) { s.Log = l }
}

// WithRandSeed makes review sampling reproducible.
func WithRandSeed(seed uint64) SchedulerOption {
	return func(s *SchedulerContext) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func NewSchedulerContext(profiles mem.VisitProfileStore, opts ...SchedulerOption) *SchedulerContext {
	if profiles == nil {
		profiles = mem.NewVisitProfiles()
	}
	s := &SchedulerContext{
		Profiles:     profiles,
		OpeningHours: AlwaysOpenPolicy{},
		Log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return s
}

// withRand runs fn holding the shared random source; *rand.Rand is not
// safe for concurrent use and Prefetch samples reviews from several goroutines.
func (s *SchedulerContext) withRand(fn func(r *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}
