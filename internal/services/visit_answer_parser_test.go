package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/services"
)

func TestParseVisitAnswer(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		duration float64
		optimal  string
	}{
		{"single value", "Most visitors spend 2.5 hours. The best time to visit is in the morning.",
			2.5, "Morning is recommended"},
		{"range averaged", "Allow 2-3 hours. Evening is the best time.", 2.5, "Evening is recommended"},
		{"range with to", "It takes 1 to 2 hrs; visit during the afternoon.", 1.5, "Afternoon is recommended"},
		{"spend phrase", "You can spend about 4 hours here.", 4.0, ""},
		{"early visit", "Plan 1 hour and visit in the early part of the day.", 1.0, "Early is recommended"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.ParseVisitAnswer(tc.text)
			require.NotNil(t, got.DurationHours)
			assert.InDelta(t, tc.duration, *got.DurationHours, 1e-9)
			assert.Equal(t, tc.optimal, got.OptimalTime)
		})
	}
}

func TestParseVisitAnswer_SkipsOpeningHours(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		duration float64
	}{
		{"open around the clock", "The promenade is open 24 hours. Plan around 2 hours for a relaxed walk.", 2},
		{"hours per day", "Staffed 10 hours a day; most people stay 1.5 hours.", 1.5},
		{"open for", "The market is open for 8 hours, but visitors spend about 1 hour.", 1},
		{"range after opening", "Open 24 hours. Allow 2-3 hours.", 2.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.ParseVisitAnswer(tc.text)
			require.NotNil(t, got.DurationHours)
			assert.InDelta(t, tc.duration, *got.DurationHours, 1e-9)
		})
	}
}

func TestParseVisitAnswer_RejectsImplausibleDuration(t *testing.T) {
	for _, text := range []string{
		"Open 24 hours, every day.",
		"Some visitors spend 36 hours exploring.",
		"It runs 13-20 hours on festival days.",
		"Spend 0 hours here.",
	} {
		got := services.ParseVisitAnswer(text)
		assert.Nil(t, got.DurationHours, text)
	}
}

func TestParseVisitAnswer_CrowdSentenceFallback(t *testing.T) {
	got := services.ParseVisitAnswer("It is lovely. Weekdays are quiet compared to weekends. Enjoy")
	assert.Nil(t, got.DurationHours)
	assert.Equal(t, "Weekdays are quiet compared to weekends", got.OptimalTime)
}

func TestParseVisitAnswer_Unparsable(t *testing.T) {
	got := services.ParseVisitAnswer("I cannot help with that.")
	assert.Nil(t, got.DurationHours)
	assert.Empty(t, got.OptimalTime)

	got = services.ParseVisitAnswer("")
	assert.Nil(t, got.DurationHours)
	assert.Empty(t, got.OptimalTime)
}
