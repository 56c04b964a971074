package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"itinerary/internal/models/db_models"
)

type POIRepository interface {
	GetByPlaceID(ctx context.Context, placeID string) (*db_models.POI, error)
	ListByPlaceIDs(ctx context.Context, placeIDs []string) ([]db_models.POI, error)
	Upsert(ctx context.Context, poi *db_models.POI) error
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

// ────────────────────────────────────────────────────────────────
// Read helpers return a nil model and nil error when no rows match.
// ────────────────────────────────────────────────────────────────

func (r *poiRepository) GetByPlaceID(ctx context.Context, placeID string) (*db_models.POI, error) {
	var poi db_models.POI
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&poi, "place_id = ?", placeID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poi, nil
}

// ListByPlaceIDs returns the matching rows in the order of placeIDs; unknown
// IDs are skipped.
func (r *poiRepository) ListByPlaceIDs(ctx context.Context, placeIDs []string) ([]db_models.POI, error) {
	if len(placeIDs) == 0 {
		return []db_models.POI{}, nil
	}

	var rows []db_models.POI
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("place_id IN ?", placeIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]db_models.POI, len(rows))
	for _, p := range rows {
		byID[p.PlaceID] = p
	}
	out := make([]db_models.POI, 0, len(rows))
	for _, id := range placeIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	return out, nil
}

// Upsert inserts or replaces a POI and its detail row keyed by PlaceID.
func (r *poiRepository) Upsert(ctx context.Context, poi *db_models.POI) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.POI
		err := tx.First(&existing, "place_id = ?", poi.PlaceID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(poi).Error
		case err != nil:
			return err
		}

		poi.ID = existing.ID
		poi.CreatedAt = existing.CreatedAt
		if err := tx.Omit("Details").Save(poi).Error; err != nil {
			return err
		}
		poi.Details.POIID = existing.ID
		if err := tx.Unscoped().Where("poi_id = ?", existing.ID).Delete(&db_models.POIDetail{}).Error; err != nil {
			return err
		}
		poi.Details.ID = uuid.Nil
		return tx.Create(&poi.Details).Error
	})
}
