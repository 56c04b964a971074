package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"itinerary/internal/api/controllers"
	"itinerary/internal/models/response_models"
	"itinerary/internal/models/trip_models"
	"itinerary/pkg/utils"
)

func itineraryRouter(svc *mockItineraryService) *gin.Engine {
	c := controllers.NewItineraryController(svc, time.UTC, zap.NewNop())
	r := gin.New()
	r.POST("/itineraries", c.ScheduleItinerary)
	r.GET("/itineraries/:id", c.GetItineraryById)
	r.DELETE("/itineraries/cache", c.ResetCache)
	return r
}

func oneDaySchedule(req trip_models.TripRequest) *trip_models.TripSchedule {
	start := req.StartDate.Add(9*time.Hour + 15*time.Minute)
	return &trip_models.TripSchedule{
		Accommodation: *req.Accommodation,
		Days: []trip_models.DayPlan{{
			Date: req.StartDate,
			Activities: []trip_models.Activity{{
				POI:           req.POIs[0],
				Start:         start,
				DurationHours: 1,
				TravelMinutes: 15,
			}},
			Return: &trip_models.ReturnLeg{
				Departure:     start.Add(time.Hour),
				TravelMinutes: 15,
				Arrival:       start.Add(time.Hour + 15*time.Minute),
			},
		}},
	}
}

const scheduleBody = `{
	"start_date": "2024-06-01",
	"duration_days": 1,
	"accommodation": {"lat": 48.85, "lng": 2.35},
	"start_time": "9:00",
	"end_time": "18:00",
	"pois": [{"place_id": "tower", "name": "Eiffel Tower", "location": {"lat": 48.8584, "lng": 2.2945}}]
}`

func TestScheduleItinerary(t *testing.T) {
	var got trip_models.TripRequest
	svc := &mockItineraryService{scheduleTrip: func(_ context.Context, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
		got = req
		return oneDaySchedule(req), nil
	}}

	code, resp := do(t, itineraryRouter(svc), http.MethodPost, "/itineraries", scheduleBody)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got.StartDate)
	assert.Equal(t, got.StartDate, got.EndDate)
	assert.Equal(t, trip_models.TimeWindow{Start: 9 * time.Hour, End: 18 * time.Hour}, got.Window)
	assert.False(t, got.SkipReturn)

	var body response_models.ItineraryResponse
	decodeData(t, resp, &body)
	require.Len(t, body.Days, 1)
	assert.Equal(t, "Saturday", body.Days[0].Day)
	require.Len(t, body.Days[0].Activities, 1)
	assert.Equal(t, "09:15", body.Days[0].Activities[0].StartTime)
	assert.Equal(t, "10:15", body.Days[0].Activities[0].EndTime)
	require.NotNil(t, body.Days[0].ReturnToAccommodation)
	assert.Equal(t, "10:30", body.Days[0].ReturnToAccommodation.ArrivalTime)
	assert.Contains(t, body.Summary, "Eiffel Tower")
	assert.Empty(t, body.ID)
}

func TestScheduleItinerary_Save(t *testing.T) {
	svc := &mockItineraryService{
		scheduleTrip: func(_ context.Context, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
			return oneDaySchedule(req), nil
		},
		saveSchedule: func(_ context.Context, title string, _ trip_models.TripRequest, _ *trip_models.TripSchedule) (string, error) {
			assert.Equal(t, "Paris", title)
			return "4b0c5a4e-1111-4222-8333-444455556666", nil
		},
	}
	body := `{"title":"Paris","save":true,` + scheduleBody[1:]

	code, resp := do(t, itineraryRouter(svc), http.MethodPost, "/itineraries", body)
	require.Equal(t, http.StatusOK, code)

	var out response_models.ItineraryResponse
	decodeData(t, resp, &out)
	assert.Equal(t, "4b0c5a4e-1111-4222-8333-444455556666", out.ID)
}

func TestScheduleItinerary_StoredPOIs(t *testing.T) {
	var ids []string
	svc := &mockItineraryService{scheduleStoredTrip: func(_ context.Context, got []string, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
		ids = got
		return &trip_models.TripSchedule{}, nil
	}}
	body := `{"start_date":"2024-06-01","end_date":"2024-06-03","poi_ids":["a","b"]}`

	code, _ := do(t, itineraryRouter(svc), http.MethodPost, "/itineraries", body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestScheduleItinerary_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"start_date":`},
		{"missing start", `{"duration_days":2}`},
		{"bad date", `{"start_date":"01/06/2024","duration_days":2}`},
		{"no end", `{"start_date":"2024-06-01"}`},
		{"bad window", `{"start_date":"2024-06-01","duration_days":1,"start_time":"25:00"}`},
		{"poi without id", `{"start_date":"2024-06-01","duration_days":1,"pois":[{"name":"x"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := do(t, itineraryRouter(&mockItineraryService{}), http.MethodPost, "/itineraries", tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestScheduleItinerary_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"schedule error", utils.NewScheduleError(utils.ErrEmptyPOIPool, "no points of interest to schedule"), http.StatusBadRequest},
		{"persistence off", utils.ErrPersistenceOff, http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockItineraryService{scheduleTrip: func(context.Context, trip_models.TripRequest) (*trip_models.TripSchedule, error) {
				return nil, tc.err
			}}
			code, resp := do(t, itineraryRouter(svc), http.MethodPost, "/itineraries", scheduleBody)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}

func TestGetItineraryById(t *testing.T) {
	svc := &mockItineraryService{getSchedule: func(_ context.Context, id string) (*trip_models.TripSchedule, error) {
		if id != "known" {
			return nil, utils.ErrJourneyNotFound
		}
		return &trip_models.TripSchedule{Days: []trip_models.DayPlan{{
			Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), Note: trip_models.NoActivitiesNote,
		}}}, nil
	}}
	r := itineraryRouter(svc)

	code, resp := do(t, r, http.MethodGet, "/itineraries/known", "")
	require.Equal(t, http.StatusOK, code)
	var out response_models.ItineraryResponse
	decodeData(t, resp, &out)
	assert.Equal(t, "known", out.ID)
	assert.Equal(t, trip_models.NoActivitiesNote, out.Days[0].Note)
	assert.NotNil(t, out.Days[0].Activities)

	code, _ = do(t, r, http.MethodGet, "/itineraries/unknown", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestResetCache(t *testing.T) {
	svc := &mockItineraryService{}
	code, _ := do(t, itineraryRouter(svc), http.MethodDelete, "/itineraries/cache", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, svc.resets)
}
