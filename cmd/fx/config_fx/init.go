package config_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinerary/internal/config"
	"itinerary/pkg/logger"
	"itinerary/pkg/utils"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
	provideTripLocation)

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}

func provideTripLocation(cfg config.Config) *time.Location {
	return utils.LoadTripLocation(cfg.TripTimezone)
}
