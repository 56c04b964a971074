package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbm "itinerary/internal/models/db_models"
	"itinerary/internal/models/trip_models"
	"itinerary/internal/repositories"
	"itinerary/internal/services"
	"itinerary/pkg/utils"
)

type fakeJourneyRepo struct {
	stored map[uuid.UUID]*dbm.Journey
}

func (f *fakeJourneyRepo) SaveItinerary(_ context.Context, j *dbm.Journey) (uuid.UUID, error) {
	if f.stored == nil {
		f.stored = map[uuid.UUID]*dbm.Journey{}
	}
	j.ID = uuid.New()
	f.stored[j.ID] = j
	return j.ID, nil
}

func (f *fakeJourneyRepo) GetDetailsOfJourneyById(_ context.Context, id string) (*dbm.Journey, error) {
	j, ok := f.stored[uuid.MustParse(id)]
	if !ok {
		return nil, nil
	}
	return j, nil
}

var _ repositories.JourneyRepository = (*fakeJourneyRepo)(nil)

func TestJourneyService_RoundTripsSchedule(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	e := newEngine(services.WithTravelProvider(fixedTravel(15 * time.Minute)))
	hotel := trip_models.LatLng{Lat: 48.85, Lng: 2.35}
	req := trip_models.TripRequest{
		POIs:          []trip_models.POI{poiAt("tower", 48.86, 2.29)},
		StartDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, paris),
		EndDate:       time.Date(2024, 6, 2, 0, 0, 0, 0, paris),
		Accommodation: &hotel,
	}
	sched, err := e.itinerary.ScheduleTrip(context.Background(), req)
	require.NoError(t, err)

	svc := services.NewJourneyService(&fakeJourneyRepo{}, paris, zap.NewNop())
	id, err := svc.SaveItinerary(context.Background(), "", req, sched)
	require.NoError(t, err)

	got, err := svc.GetItinerary(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.Days, 2)
	assert.Equal(t, hotel, got.Accommodation)

	a := got.Days[0].Activities[0]
	assert.Equal(t, "tower", a.POI.ID)
	assert.True(t, a.Start.Equal(sched.Days[0].Activities[0].Start))
	assert.Equal(t, "09:15", utils.FormatClock(a.Start))
	require.NotNil(t, got.Days[0].Return)
	assert.Equal(t, 15.0, got.Days[0].Return.TravelMinutes)
	assert.Equal(t, trip_models.NoActivitiesNote, got.Days[1].Note)
}

func TestJourneyService_NotFound(t *testing.T) {
	svc := services.NewJourneyService(&fakeJourneyRepo{}, nil, zap.NewNop())

	_, err := svc.GetItinerary(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrJourneyNotFound)

	_, err = svc.GetItinerary(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrJourneyNotFound)
}

func TestJourneyService_DefaultTitle(t *testing.T) {
	repo := &fakeJourneyRepo{}
	svc := services.NewJourneyService(repo, nil, zap.NewNop())

	id, err := svc.SaveItinerary(context.Background(), "", trip_models.TripRequest{StartDate: date(2024, 6, 1)},
		&trip_models.TripSchedule{})
	require.NoError(t, err)
	assert.Equal(t, "Trip 2024-06-01", repo.stored[uuid.MustParse(id)].Title)
}
