package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"itinerary/internal/models/trip_models"
	"itinerary/pkg/utils"
)

// mapboxMaxCoordinates is the Directions Matrix limit per request, origin included.
const mapboxMaxCoordinates = 25

// -------------- Mapbox Matrix client (duration-only) ---------------

type MapboxMatrixClient struct {
	HTTP        *http.Client
	AccessToken string
	BaseURL     string
	Profile     string // "driving"
}

var _ TravelMatrixProvider = (*MapboxMatrixClient)(nil)

func NewMapboxMatrixClient(token, mode string) (*MapboxMatrixClient, error) {
	if token == "" {
		return nil, errors.New("MAPBOX_ACCESS_TOKEN is empty")
	}
	return &MapboxMatrixClient{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		AccessToken: token,
		BaseURL:     "https://api.mapbox.com",
		Profile:     mapboxProfile(mode),
	}, nil
}

func mapboxProfile(mode string) string {
	switch mode {
	case "walking":
		return "walking"
	case "bicycling", "cycling":
		return "cycling"
	default:
		return "driving"
	}
}

func (c *MapboxMatrixClient) TravelDuration(ctx context.Context, origin, dest trip_models.LatLng) (time.Duration, error) {
	els, err := c.TravelDurations(ctx, origin, []trip_models.LatLng{dest})
	if err != nil {
		return 0, err
	}
	if !els[0].OK {
		return 0, errors.New("mapbox matrix: no route")
	}
	return els[0].Duration, nil
}

// TravelDurations asks for one row (origin -> dests), splitting the
// destinations to respect the coordinate limit.
func (c *MapboxMatrixClient) TravelDurations(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) ([]TravelElement, error) {
	out := make([]TravelElement, 0, len(dests))
	for start := 0; start < len(dests); start += mapboxMaxCoordinates - 1 {
		end := min(start+mapboxMaxCoordinates-1, len(dests))
		chunk, err := c.row(ctx, origin, dests[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func (c *MapboxMatrixClient) row(ctx context.Context, origin trip_models.LatLng, dests []trip_models.LatLng) ([]TravelElement, error) {
	// Mapbox takes "lng,lat".
	coords := make([]string, 0, len(dests)+1)
	coords = append(coords, fmt.Sprintf("%f,%f", origin.Lng, origin.Lat))
	for _, d := range dests {
		coords = append(coords, fmt.Sprintf("%f,%f", d.Lng, d.Lat))
	}
	destIdx := make([]string, len(dests))
	for i := range dests {
		destIdx[i] = fmt.Sprint(i + 1)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("mapbox base url: %w", err)
	}
	u.Path = fmt.Sprintf("/directions-matrix/v1/mapbox/%s/%s", c.Profile, strings.Join(coords, ";"))
	q := url.Values{}
	q.Set("annotations", "duration")
	q.Set("sources", "0")
	q.Set("destinations", strings.Join(destIdx, ";"))
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	resp, err := utils.DoWithRetry(ctx, c.HTTP, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("mapbox matrix: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Code      string       `json:"code"`
		Durations [][]*float64 `json:"durations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}
	if payload.Code != "" && payload.Code != "Ok" {
		return nil, fmt.Errorf("mapbox matrix code %s", payload.Code)
	}

	out := make([]TravelElement, len(dests))
	if len(payload.Durations) == 0 {
		return out, nil
	}
	row := payload.Durations[0]
	for j := range out {
		if j < len(row) && row[j] != nil && *row[j] >= 0 {
			out[j] = TravelElement{Duration: time.Duration(*row[j] * float64(time.Second)), OK: true}
		}
	}
	return out, nil
}
