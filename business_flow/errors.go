// Package businessflow contains the use cases behind the HTTP facade and the seed CLI
package businessflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every entity-specific not-found error
	ErrNotFound = errors.New("not found")

	ErrPlatformNotFound    = fmt.Errorf("platform %w", ErrNotFound)
	ErrClientNotFound      = fmt.Errorf("client %w", ErrNotFound)
	ErrInvoiceNotFound     = fmt.Errorf("invoice %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// Constraint errors raised by writes
	ErrInvalidReference = errors.New("referenced row does not exist")
	ErrAlreadyExists    = errors.New("row already exists")
	ErrStillReferenced  = errors.New("row is still referenced")

	ErrInvalidValue = errors.New("value rejected by column type")

	// Seeding errors
	ErrSeedInProgress = errors.New("database initialization already in progress")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidReference(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsStillReferenced(err error) bool {
	return errors.Is(err, ErrStillReferenced)
}

func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

func IsSeedInProgress(err error) bool {
	return errors.Is(err, ErrSeedInProgress)
}
