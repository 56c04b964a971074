package response_models

import "itinerary/internal/models/trip_models"

type POI struct {
	ID          string   `json:"place_id"`
	Name        string   `json:"name"`
	Vicinity    string   `json:"vicinity,omitempty"`
	Types       []string `json:"types"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Rating      *float64 `json:"rating,omitempty"`
	RatingCount int      `json:"user_ratings_total"`

	PoiDetails *PoiDetails `json:"poi_details,omitempty"`
	Visit      *Visit      `json:"visit,omitempty"`
}

type PoiDetails struct {
	Reviews        []string                    `json:"reviews"`
	OpeningPeriods []trip_models.OpeningPeriod `json:"opening_periods"`
}

// Visit is the cached visit profile, present once the POI has been enriched.
type Visit struct {
	DurationHours float64 `json:"recommended_duration"`
	OptimalTime   string  `json:"optimal_time"`
}
