// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// BaseRepository provides the single-row CRUD shared by every entity.
// Each call runs as one statement on a pooled connection.
type BaseRepository[T any, K comparable] struct {
	DB      *gorm.DB
	orderBy string
}

// NewBaseRepository creates a new base repository; orderBy is applied by List
func NewBaseRepository[T any, K comparable](db *gorm.DB, orderBy string) *BaseRepository[T, K] {
	return &BaseRepository[T, K]{
		DB:      db,
		orderBy: orderBy,
	}
}

func (r *BaseRepository[T, K]) getDB(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx)
}

// ByID retrieves an entity by its primary key, returning nil when absent
func (r *BaseRepository[T, K]) ByID(ctx context.Context, id K) (*T, error) {
	var entity T
	err := r.getDB(ctx).Where("id = ?", id).Take(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBError(fmt.Sprintf("find by id %v", id), err)
	}

	return &entity, nil
}

// List retrieves every entity in the repository's default order
func (r *BaseRepository[T, K]) List(ctx context.Context) ([]*T, error) {
	var entities []*T
	query := r.getDB(ctx)
	if r.orderBy != "" {
		query = query.Order(r.orderBy)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, wrapDBError("list", err)
	}

	return entities, nil
}

// Save inserts a new entity
func (r *BaseRepository[T, K]) Save(ctx context.Context, entity *T) error {
	if err := r.getDB(ctx).Create(entity).Error; err != nil {
		return wrapDBError("save", err)
	}
	return nil
}

// UpdateByID overwrites the given columns of one row and reports how many rows matched
func (r *BaseRepository[T, K]) UpdateByID(ctx context.Context, id K, values map[string]any) (int64, error) {
	var entity T
	result := r.getDB(ctx).Model(&entity).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return 0, wrapDBError(fmt.Sprintf("update id %v", id), result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByID removes one row and reports how many rows were deleted
func (r *BaseRepository[T, K]) DeleteByID(ctx context.Context, id K) (int64, error) {
	var entity T
	result := r.getDB(ctx).Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return 0, wrapDBError(fmt.Sprintf("delete id %v", id), result.Error)
	}
	return result.RowsAffected, nil
}

// Count returns the number of rows in the table
func (r *BaseRepository[T, K]) Count(ctx context.Context) (int64, error) {
	var (
		entity T
		count  int64
	)
	if err := r.getDB(ctx).Model(&entity).Count(&count).Error; err != nil {
		return 0, wrapDBError("count", err)
	}
	return count, nil
}
