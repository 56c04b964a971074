package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type POIDetail struct {
	BaseModel
	POIID          uuid.UUID      `gorm:"type:uuid;unique"`
	Reviews        datatypes.JSON `gorm:"type:jsonb;default:'[]'"` // []string
	OpeningPeriods datatypes.JSON `gorm:"type:jsonb;default:'[]'"` // []trip_models.OpeningPeriod
}
