package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/repository"
)

// entityFlow holds the single-table steps shared by the entity flows
type entityFlow[T any, K comparable] struct {
	repo     repository.Repository[T, K]
	name     string // singular, lower case
	notFound error
	idOf     func(*T) K
}

func (f *entityFlow[T, K]) code(suffix string) string {
	return strings.ToUpper(f.name) + "_" + suffix
}

func (f *entityFlow[T, K]) list(ctx context.Context) ([]*T, error) {
	items, err := f.repo.List(ctx)
	if err != nil {
		return nil, NewBusinessErrorf(f.code("LIST_FAILED"), "Failed to list %ss", err, f.name)
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func (f *entityFlow[T, K]) get(ctx context.Context, id K) (*T, error) {
	item, err := f.repo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessErrorf(f.code("GET_FAILED"), "Failed to get %s", err, f.name)
	}
	if item == nil {
		return nil, NewBusinessErrorf(f.code("NOT_FOUND"), "%s %v not found", f.notFound, f.name, id)
	}
	return item, nil
}

// create inserts item and returns the row as stored
func (f *entityFlow[T, K]) create(ctx context.Context, item *T) (*T, error) {
	if err := f.repo.Save(ctx, item); err != nil {
		return nil, f.writeError("CREATE", err)
	}
	return f.get(ctx, f.idOf(item))
}

// update overwrites every non-key column; a missing row is reported as not found
func (f *entityFlow[T, K]) update(ctx context.Context, id K, values map[string]any) (*T, error) {
	affected, err := f.repo.UpdateByID(ctx, id, values)
	if err != nil {
		return nil, f.writeError("UPDATE", err)
	}
	if affected == 0 {
		return nil, NewBusinessErrorf(f.code("NOT_FOUND"), "%s %v not found", f.notFound, f.name, id)
	}
	return f.get(ctx, id)
}

func (f *entityFlow[T, K]) delete(ctx context.Context, id K) (*dto.DeleteResponse, error) {
	affected, err := f.repo.DeleteByID(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, NewBusinessErrorf(f.code("STILL_REFERENCED"), "%s %v is referenced by transactions",
				fmt.Errorf("%w: %w", ErrStillReferenced, err), f.name, id)
		}
		return nil, NewBusinessErrorf(f.code("DELETE_FAILED"), "Failed to delete %s", err, f.name)
	}
	if affected == 0 {
		return nil, NewBusinessErrorf(f.code("NOT_FOUND"), "%s %v not found", f.notFound, f.name, id)
	}
	return &dto.DeleteResponse{
		Message:  fmt.Sprintf("%s %v deleted", f.name, id),
		Affected: affected,
	}, nil
}

// writeError classifies constraint failures of an insert or update
func (f *entityFlow[T, K]) writeError(op string, err error) error {
	switch {
	case repository.IsForeignKeyViolation(err):
		return NewBusinessError(f.code("INVALID_REFERENCE"), "Referenced row does not exist",
			fmt.Errorf("%w: %w", ErrInvalidReference, err))
	case repository.IsUniqueViolation(err):
		return NewBusinessErrorf(f.code("ALREADY_EXISTS"), "%s already exists",
			fmt.Errorf("%w: %w", ErrAlreadyExists, err), f.name)
	case repository.IsDataException(err), repository.IsNotNullViolation(err):
		return NewBusinessError(f.code("INVALID_VALUE"), "Invalid field value",
			fmt.Errorf("%w: %w", ErrInvalidValue, err))
	default:
		return NewBusinessErrorf(f.code(op+"_FAILED"), "Failed to %s %s", err, strings.ToLower(op), f.name)
	}
}
