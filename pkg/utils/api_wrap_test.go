package utils_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"itinerary/pkg/utils"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"schedule error", utils.NewScheduleError(utils.ErrInvalidDateRange, "end date is before start date"),
			http.StatusBadRequest, "end date is before start date"},
		{"wrapped schedule error", fmt.Errorf("handler: %w", utils.NewScheduleError(utils.ErrEmptyPOIPool, "empty")),
			http.StatusBadRequest, "empty"},
		{"invalid input", fmt.Errorf("%w: bad poi", utils.ErrInvalidInput), http.StatusBadRequest, "invalid input: bad poi"},
		{"poi not found", utils.ErrPOINotFound, http.StatusNotFound, "POI not found"},
		{"journey not found", utils.ErrJourneyNotFound, http.StatusNotFound, "Itinerary not found"},
		{"persistence off", utils.ErrPersistenceOff, http.StatusServiceUnavailable, "Itinerary storage is not configured"},
		{"database", utils.ErrDatabaseError, http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			utils.HandleServiceError(c, zap.NewNop(), tc.err)

			var resp utils.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.msg, resp.Message)
			assert.Equal(t, "trace-1", resp.TraceID)
		})
	}
}

func TestScheduleErrorIs(t *testing.T) {
	err := utils.NewScheduleError(utils.ErrNoAccommodation, "nothing at %s", "0,0")
	assert.ErrorIs(t, err, utils.ErrNoAccommodation)
	assert.NotErrorIs(t, err, utils.ErrEmptyPOIPool)
	assert.Equal(t, "schedule trip: no accommodation location: nothing at 0,0", err.Error())
}
