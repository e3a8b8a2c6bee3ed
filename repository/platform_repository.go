package repository

import (
	"context"

	"github.com/Luisr26/ExpertSoft/models"
	"gorm.io/gorm"
)

// PlatformRepositoryImpl implements PlatformRepository interface
type PlatformRepositoryImpl struct {
	*BaseRepository[models.Platform, uint]
}

// NewPlatformRepository creates a new platform repository
func NewPlatformRepository(db *gorm.DB) PlatformRepository {
	return &PlatformRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Platform, uint](db, "id"),
	}
}

// UpsertRows inserts or overwrites platforms by id
func (r *PlatformRepositoryImpl) UpsertRows(ctx context.Context, rows []models.PlatformRow) (int64, error) {
	affected, err := upsertRows(ctx, r.DB, models.Platform{}.TableName(), rows,
		[]string{"id"}, []string{"name"})
	if err != nil || affected == 0 {
		return affected, err
	}
	return affected, syncSerial(ctx, r.DB, models.Platform{}.TableName())
}
