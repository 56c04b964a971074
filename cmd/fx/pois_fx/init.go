package poisfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itinerary/internal/repositories"
	"itinerary/internal/services"
)

var Module = fx.Provide(
	providePoisRepo, providePoisService)

func providePoisRepo(db *gorm.DB) repositories.POIRepository {
	if db == nil {
		return nil
	}
	return repositories.NewPOIRepository(db)
}

func providePoisService(
	poiRepo repositories.POIRepository,
	enrich services.EnrichmentServiceInterface,
	log *zap.Logger,
) services.POIServiceInterface {
	return services.NewPoiService(poiRepo, enrich, log)
}
