// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	// PostgresURL enables POI lookup and itinerary persistence. Optional.
	PostgresURL string

	// TripTimezone is the IANA zone used to anchor trip dates and windows.
	TripTimezone string

	TravelProvider    string // google | mapbox | none
	TravelMode        string
	TravelCacheTTL    time.Duration
	GoogleMapsAPIKey  string
	MapboxAccessToken string

	TextProvider string // gemini | openai | none
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	OpeningHoursPolicy string // always | weekday
}

// Load reads a .env file when present, then the environment. It returns an
// error listing every variable a selected provider needs but that is unset.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnvWithDefault("PORT", "8080"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		TripTimezone:       os.Getenv("TRIP_TIMEZONE"),
		TravelProvider:     strings.ToLower(getEnvWithDefault("TRAVEL_PROVIDER", "google")),
		TravelMode:         getEnvWithDefault("TRAVEL_MODE", "driving"),
		GoogleMapsAPIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		MapboxAccessToken:  os.Getenv("MAPBOX_ACCESS_TOKEN"),
		TextProvider:       strings.ToLower(getEnvWithDefault("TEXT_PROVIDER", "gemini")),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpeningHoursPolicy: strings.ToLower(getEnvWithDefault("OPENING_HOURS_POLICY", "always")),
	}

	ttl, err := time.ParseDuration(getEnvWithDefault("TRAVEL_CACHE_TTL", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("TRAVEL_CACHE_TTL: %w", err)
	}
	cfg.TravelCacheTTL = ttl

	var missing []string
	switch cfg.TravelProvider {
	case "google":
		if cfg.GoogleMapsAPIKey == "" {
			missing = append(missing, "GOOGLE_MAPS_API_KEY")
		}
	case "mapbox":
		if cfg.MapboxAccessToken == "" {
			missing = append(missing, "MAPBOX_ACCESS_TOKEN")
		}
	case "none":
	default:
		return Config{}, fmt.Errorf("unsupported TRAVEL_PROVIDER %q", cfg.TravelProvider)
	}

	switch cfg.TextProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "none":
	default:
		return Config{}, fmt.Errorf("unsupported TEXT_PROVIDER %q", cfg.TextProvider)
	}

	switch cfg.OpeningHoursPolicy {
	case "always", "weekday":
	default:
		return Config{}, fmt.Errorf("unsupported OPENING_HOURS_POLICY %q", cfg.OpeningHoursPolicy)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// TextAPIKey returns the key for the selected text provider.
func (c Config) TextAPIKey() string {
	if c.TextProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func (c Config) TextModel() string {
	if c.TextProvider == "openai" {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
