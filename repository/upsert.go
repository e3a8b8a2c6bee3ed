package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxBindParameters is the PostgreSQL limit on parameters in one statement
const maxBindParameters = 65535

// upsertRows writes every row with a single INSERT ... ON CONFLICT (keys) DO UPDATE
// statement that overwrites the listed columns with the incoming values.
// Values are bound as text and converted by the column types.
func upsertRows[R any](ctx context.Context, db *gorm.DB, table string, rows []R, keys, columns []string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if params := len(rows) * (len(keys) + len(columns)); params > maxBindParameters {
		return 0, &DatabaseError{
			Op:  "upsert " + table,
			Err: fmt.Errorf("%w: %d rows need %d bind parameters, limit is %d", ErrBatchTooLarge, len(rows), params, maxBindParameters),
		}
	}

	conflict := make([]clause.Column, 0, len(keys))
	for _, k := range keys {
		conflict = append(conflict, clause.Column{Name: k})
	}

	result := db.WithContext(ctx).
		Session(&gorm.Session{SkipDefaultTransaction: true}).
		Clauses(clause.OnConflict{
			Columns:   conflict,
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&rows)
	if result.Error != nil {
		return 0, wrapDBError("upsert "+table, result.Error)
	}
	return result.RowsAffected, nil
}

// syncSerial moves the id sequence of table past the highest stored id.
// Explicit ids inserted by the seed loaders do not advance the sequence.
func syncSerial(ctx context.Context, db *gorm.DB, table string) error {
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
		table, table,
	)
	if err := db.WithContext(ctx).Exec(query).Error; err != nil {
		return wrapDBError("sync sequence "+table, err)
	}
	return nil
}
