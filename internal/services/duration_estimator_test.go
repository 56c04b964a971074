package services_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"itinerary/internal/models/trip_models"
	"itinerary/internal/services"
)

func TestEstimateDuration_Categories(t *testing.T) {
	cases := []struct {
		name  string
		poi   trip_models.POI
		hours float64
	}{
		{"major museum", trip_models.POI{Types: []string{"museum"}, RatingCount: 12000}, 3.0},
		{"mid museum", trip_models.POI{Types: []string{"museum"}, RatingCount: 6000}, 2.5},
		{"small museum", trip_models.POI{Types: []string{"museum"}, RatingCount: 10}, 2.0},
		{"art gallery", trip_models.POI{Types: []string{"art_gallery"}}, 1.5},
		{"major park", trip_models.POI{Types: []string{"park"}, RatingCount: 5000}, 2.5},
		{"park", trip_models.POI{Types: []string{"park"}, RatingCount: 100}, 1.5},
		{"zoo", trip_models.POI{Types: []string{"zoo"}}, 3.0},
		{"aquarium", trip_models.POI{Types: []string{"aquarium"}}, 3.0},
		{"theme park", trip_models.POI{Types: []string{"amusement_park"}}, 4.0},
		{"beach", trip_models.POI{Types: []string{"beach"}}, 2.5},
		{"mall", trip_models.POI{Types: []string{"shopping_mall"}}, 2.0},
		{"cafe", trip_models.POI{Types: []string{"cafe"}}, 1.5},
		{"castle by name", trip_models.POI{Name: "Edinburgh Castle"}, 2.0},
		{"temple by name", trip_models.POI{Name: "Senso-ji Temple", RatingCount: 50000}, 1.0},
		{"garden by name", trip_models.POI{Name: "Botanic Garden"}, 1.5},
		{"monument", trip_models.POI{Types: []string{"monument"}, RatingCount: 20000}, 1.0},
		{"popular unknown", trip_models.POI{RatingCount: 10000}, 2.5},
		{"known unknown", trip_models.POI{RatingCount: 5000}, 2.0},
		{"some reviews", trip_models.POI{RatingCount: 1000}, 1.5},
		{"obscure", trip_models.POI{}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.hours, services.EstimateDuration(tc.poi))
		})
	}
}

func TestEstimateDuration_TypeWinsOverName(t *testing.T) {
	poi := trip_models.POI{Name: "Palace Museum", Types: []string{"museum"}}
	assert.Equal(t, 2.0, services.EstimateDuration(poi))
}

func TestEstimateDuration_AlwaysPositive(t *testing.T) {
	types := []string{"museum", "park", "zoo", "cafe", "church", "landmark", "lodging", "", "beach"}
	names := []string{"", "Old Castle", "Shrine", "Rose Garden", "Plaza", "HISTORIC district"}
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		poi := trip_models.POI{
			Name:        names[r.IntN(len(names))],
			Types:       []string{types[r.IntN(len(types))]},
			RatingCount: r.IntN(30000) - 10,
		}
		assert.Greater(t, services.EstimateDuration(poi), 0.0, "poi %+v", poi)
	}
}
