package repository

import (
	"context"

	"github.com/Luisr26/ExpertSoft/models"
	"gorm.io/gorm"
)

// ClientRepositoryImpl implements ClientRepository interface
type ClientRepositoryImpl struct {
	*BaseRepository[models.Client, uint]
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &ClientRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Client, uint](db, "name, id"),
	}
}

// UpsertRows inserts or overwrites clients by id
func (r *ClientRepositoryImpl) UpsertRows(ctx context.Context, rows []models.ClientRow) (int64, error) {
	affected, err := upsertRows(ctx, r.DB, models.Client{}.TableName(), rows,
		[]string{"id"},
		[]string{"name", "identification_number", "address", "phone", "email"})
	if err != nil || affected == 0 {
		return affected, err
	}
	return affected, syncSerial(ctx, r.DB, models.Client{}.TableName())
}
