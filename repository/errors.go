package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the application reacts to
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgDataExceptionClass  = "22"
)

// ErrBatchTooLarge reports a single upsert that would exceed the server's
// bind parameter limit
var ErrBatchTooLarge = errors.New("batch exceeds bind parameter limit")

// DatabaseError wraps any failure returned by the database: connectivity,
// constraint violations, invalid input syntax for a column type and so on.
type DatabaseError struct {
	Op         string
	Code       string // SQLSTATE, empty when the failure did not come from the server
	Constraint string
	Err        error
}

func (e *DatabaseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("database %s failed (%s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("database %s failed: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	dbErr := &DatabaseError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		dbErr.Code = pgErr.Code
		dbErr.Constraint = pgErr.ConstraintName
	}
	return dbErr
}

// IsDatabaseError reports whether err came from the database layer
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

func hasCode(err error, code string) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr) && dbErr.Code == code
}

// IsForeignKeyViolation reports whether a referenced row was missing or still referenced
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

func IsNotNullViolation(err error) bool {
	return hasCode(err, pgNotNullViolation)
}

// IsDataException reports a value the column type rejected, such as an
// out-of-range numeric or an unparsable timestamp (SQLSTATE class 22)
func IsDataException(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr) && strings.HasPrefix(dbErr.Code, pgDataExceptionClass)
}
