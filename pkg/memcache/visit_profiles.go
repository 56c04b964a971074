// pkg/mem/visit_profiles.go
package mem

import (
	"sync"

	"itinerary/internal/models/trip_models"
)

type VisitProfileStore interface {
	Get(placeID string) (trip_models.VisitProfile, bool)
	Set(placeID string, profile trip_models.VisitProfile)
	Len() int

	// Reset drops every entry. Call it between unrelated trips so advisories
	// from one destination do not leak into the next.
	Reset()
}

// VisitProfiles is the process-local Visit Profile cache keyed by POI identity.
// Entries never expire on their own.
type VisitProfiles struct {
	mu   sync.RWMutex
	data map[string]trip_models.VisitProfile
}

func NewVisitProfiles() *VisitProfiles {
	return &VisitProfiles{
		data: make(map[string]trip_models.VisitProfile),
	}
}

func (s *VisitProfiles) Get(placeID string) (trip_models.VisitProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[placeID]
	return p, ok
}

func (s *VisitProfiles) Set(placeID string, profile trip_models.VisitProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[placeID] = profile
}

func (s *VisitProfiles) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *VisitProfiles) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]trip_models.VisitProfile)
}
