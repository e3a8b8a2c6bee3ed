// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/Luisr26/ExpertSoft/models"
)

type Repository[T any, K comparable] interface {
	ByID(ctx context.Context, id K) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	UpdateByID(ctx context.Context, id K, values map[string]any) (int64, error)
	DeleteByID(ctx context.Context, id K) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// PlatformRepository defines operations for platforms
type PlatformRepository interface {
	Repository[models.Platform, uint]
	UpsertRows(ctx context.Context, rows []models.PlatformRow) (int64, error)
}

// ClientRepository defines operations for clients
type ClientRepository interface {
	Repository[models.Client, uint]
	UpsertRows(ctx context.Context, rows []models.ClientRow) (int64, error)
}

// InvoiceRepository defines operations for invoices
type InvoiceRepository interface {
	Repository[models.Invoice, uint]
	UpsertRows(ctx context.Context, rows []models.InvoiceRow) (int64, error)
}

// TransactionRepository defines operations for transactions and their joined projections
type TransactionRepository interface {
	Repository[models.Transaction, string]
	UpsertRows(ctx context.Context, rows []models.TransactionRow) (int64, error)
	ListDetailed(ctx context.Context) ([]models.TransactionDetail, error)
	ByIDDetailed(ctx context.Context, id string) (*models.TransactionDetail, error)
	ListByClient(ctx context.Context, clientID uint) ([]models.TransactionDetail, error)
	ReferenceCounts(ctx context.Context) (*models.TransactionReferences, error)
}
