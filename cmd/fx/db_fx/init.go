package db_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itinerary/internal/config"
	"itinerary/internal/infra"
)

var Module = fx.Provide(
	provideDB)

// provideDB yields a nil *gorm.DB when POSTGRES_URL is unset.
func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db, log)
	}))
	return db, nil
}
