package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"itinerary/internal/models/db_models"
)

// InitPostgresql opens the database and migrates the itinerary tables. An
// empty dsn disables persistence and returns a nil *gorm.DB.
func InitPostgresql(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		log.Info("POSTGRES_URL not set, persistence disabled")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&db_models.POI{},
		&db_models.POIDetail{},
		&db_models.Journey{},
		&db_models.JourneyDay{},
		&db_models.JourneyActivity{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("close database connection", zap.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}
