package services

import (
	"strings"

	"itinerary/internal/models/trip_models"
)

// EstimateDuration returns the default dwell time in hours for a POI from its
// category tags, then its name, then its popularity. The result is always > 0.
func EstimateDuration(poi trip_models.POI) float64 {
	name := strings.ToLower(poi.Name)
	count := poi.RatingCount

	switch {
	case poi.HasType("museum"):
		switch {
		case count >= 10000:
			return 3.0
		case count >= 5000:
			return 2.5
		default:
			return 2.0
		}
	case poi.HasType("art_gallery"):
		return 1.5
	case poi.HasType("park"):
		if count >= 5000 {
			return 2.5
		}
		return 1.5
	case poi.HasType("zoo"), poi.HasType("aquarium"):
		return 3.0
	case poi.HasType("amusement_park"), poi.HasType("theme_park"):
		return 4.0
	case poi.HasType("beach"):
		return 2.5
	case poi.HasType("shopping_mall"):
		return 2.0
	case poi.HasType("restaurant"), poi.HasType("cafe"):
		return 1.5
	case containsAny(name, "historic", "castle", "palace"):
		return 2.0
	case containsAny(name, "cathedral", "church", "temple", "shrine"):
		return 1.0
	case strings.Contains(name, "garden"):
		return 1.5
	case poi.HasType("landmark"), poi.HasType("monument"):
		return 1.0
	}

	switch {
	case count >= 10000:
		return 2.5
	case count >= 5000:
		return 2.0
	case count >= 1000:
		return 1.5
	default:
		return 1.0
	}
}

// adjustForRating scales the base estimate: well loved places tend to hold
// visitors longer, poorly rated ones shorter.
func adjustForRating(base float64, rating *float64, count int) float64 {
	if rating == nil {
		return base
	}
	switch {
	case *rating >= 4.5 && count > 1000:
		return base * 1.2
	case *rating <= 3.5 && count > 500:
		return base * 0.8
	default:
		return base
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
