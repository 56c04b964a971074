package journey_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itinerary/internal/repositories"
	"itinerary/internal/services"
)

var Module = fx.Provide(provideJourneyRepo, provideJourneyService)

func provideJourneyRepo(db *gorm.DB) repositories.JourneyRepository {
	if db == nil {
		return nil
	}
	return repositories.NewJourneyRepository(db)
}

func provideJourneyService(journeyRepo repositories.JourneyRepository, loc *time.Location, log *zap.Logger) services.JourneyServiceInterface {
	return services.NewJourneyService(journeyRepo, loc, log)
}
