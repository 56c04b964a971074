package db_models

import (
	"time"

	"github.com/google/uuid"
)

type JourneyDay struct {
	BaseModel
	JourneyID uuid.UUID `gorm:"type:uuid;index"`
	Date      time.Time
	DayNumber int
	Note      string

	ReturnDeparture     *time.Time
	ReturnArrival       *time.Time
	ReturnTravelMinutes *float64

	Activities []JourneyActivity
}

type JourneyActivity struct {
	BaseModel
	JourneyDayID  uuid.UUID `gorm:"type:uuid;index"`
	Position      int
	Time          time.Time
	EndTime       time.Time
	PlaceID       string
	POIName       string
	Latitude      float64
	Longitude     float64
	DurationHours float64
	TravelMinutes float64
	Notes         string
}
