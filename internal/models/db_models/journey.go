package db_models

import (
	"time"

	"github.com/lib/pq"
)

// Journey is a saved itinerary.
type Journey struct {
	BaseModel
	Title                 string
	StartDate             time.Time
	EndDate               time.Time
	AccommodationLat      float64
	AccommodationLng      float64
	ReturnToAccommodation bool
	Unscheduled           pq.StringArray `gorm:"type:text[]"`

	Days []JourneyDay
}
