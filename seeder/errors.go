// Package seeder loads the CSV snapshots into the database in dependency order
// and reports what ended up stored.
package seeder

import (
	"errors"
	"fmt"
)

// IOError reports a seed source that is missing or cannot be read
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("seed source %s unreadable: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MalformedRowError reports a row that does not supply a required column.
// Line 1 is the header row.
type MalformedRowError struct {
	Path   string
	Line   int
	Column string
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("malformed row in %s at line %d: column %q %s", e.Path, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("malformed row in %s at line %d: %s", e.Path, e.Line, e.Reason)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// StageError identifies the pipeline stage that failed
type StageError struct {
	Entity string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Entity, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func IsIOError(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}

func IsMalformedRow(err error) bool {
	var target *MalformedRowError
	return errors.As(err, &target)
}

// FailedStage returns the entity whose stage failed, if err came from a pipeline run
func FailedStage(err error) (string, bool) {
	var target *StageError
	if errors.As(err, &target) {
		return target.Entity, true
	}
	return "", false
}
