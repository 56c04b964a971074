// internal/repositories/journey_repo.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "itinerary/internal/models/db_models"
)

type JourneyRepository interface {
	// SaveItinerary stores the journey with all of its days and activities.
	SaveItinerary(ctx context.Context, j *dbm.Journey) (uuid.UUID, error)
	GetDetailsOfJourneyById(ctx context.Context, journeyId string) (*dbm.Journey, error)
}

type journeyRepository struct {
	db *gorm.DB
}

func NewJourneyRepository(db *gorm.DB) JourneyRepository {
	return &journeyRepository{db: db}
}

func (r *journeyRepository) SaveItinerary(ctx context.Context, j *dbm.Journey) (uuid.UUID, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		days := j.Days
		j.Days = nil
		if err := tx.Create(j).Error; err != nil {
			return err
		}

		for i := range days {
			day := &days[i]
			day.JourneyID = j.ID
			acts := day.Activities
			day.Activities = nil
			if err := tx.Create(day).Error; err != nil {
				return err
			}
			for k := range acts {
				acts[k].JourneyDayID = day.ID
			}
			if len(acts) > 0 {
				if err := tx.Create(&acts).Error; err != nil {
					return err
				}
			}
			day.Activities = acts
		}
		j.Days = days
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return j.ID, nil
}

func (r *journeyRepository) GetDetailsOfJourneyById(ctx context.Context, journeyId string) (*dbm.Journey, error) {
	var journey dbm.Journey
	err := r.db.WithContext(ctx).
		Where("id = ?", journeyId).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&journey).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &journey, nil
}
