package db_models

import "github.com/lib/pq"

// POI is a stored candidate place. PlaceID is the provider identity the
// scheduler keys on; ID is the row identity.
type POI struct {
	BaseModel
	PlaceID     string `gorm:"uniqueIndex;not null"`
	Name        string
	Vicinity    string
	Types       pq.StringArray `gorm:"type:text[]"`
	Latitude    float64
	Longitude   float64
	Rating      *float64
	RatingCount int

	Details POIDetail
}
