package controllers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"itinerary/internal/models/response_models"
	"itinerary/internal/models/trip_models"
	"itinerary/internal/services"
	"itinerary/pkg/utils"
)

// ---- itinerary service mock ----

type mockItineraryService struct {
	scheduleTrip       func(ctx context.Context, req trip_models.TripRequest) (*trip_models.TripSchedule, error)
	scheduleStoredTrip func(ctx context.Context, ids []string, req trip_models.TripRequest) (*trip_models.TripSchedule, error)
	saveSchedule       func(ctx context.Context, title string, req trip_models.TripRequest, s *trip_models.TripSchedule) (string, error)
	getSchedule        func(ctx context.Context, id string) (*trip_models.TripSchedule, error)
	resets             int
}

var _ services.ItineraryServiceInterface = (*mockItineraryService)(nil)

func (m *mockItineraryService) ScheduleTrip(ctx context.Context, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
	return m.scheduleTrip(ctx, req)
}

func (m *mockItineraryService) ScheduleStoredTrip(ctx context.Context, ids []string, req trip_models.TripRequest) (*trip_models.TripSchedule, error) {
	return m.scheduleStoredTrip(ctx, ids, req)
}

func (m *mockItineraryService) SaveSchedule(ctx context.Context, title string, req trip_models.TripRequest, s *trip_models.TripSchedule) (string, error) {
	return m.saveSchedule(ctx, title, req, s)
}

func (m *mockItineraryService) GetSchedule(ctx context.Context, id string) (*trip_models.TripSchedule, error) {
	return m.getSchedule(ctx, id)
}

func (m *mockItineraryService) Summarize(s *trip_models.TripSchedule) string {
	return services.SummarizeSchedule(s)
}

func (m *mockItineraryService) ResetCache() { m.resets++ }

// ---- poi service mock ----

type mockPOIService struct {
	getPOIById func(id string) (response_models.POI, error)
	savePOIs   func(pois []trip_models.POI) error
}

var _ services.POIServiceInterface = (*mockPOIService)(nil)

func (m *mockPOIService) GetPOIById(id string, _ context.Context) (response_models.POI, error) {
	return m.getPOIById(id)
}

func (m *mockPOIService) LoadPool(context.Context, []string) ([]trip_models.POI, error) {
	return nil, utils.ErrPersistenceOff
}

func (m *mockPOIService) SavePOIs(_ context.Context, pois []trip_models.POI) error {
	return m.savePOIs(pois)
}

// ---- helpers ----

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, utils.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// decodeData re-decodes the envelope's data field into out.
func decodeData(t *testing.T, resp utils.APIResponse, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
