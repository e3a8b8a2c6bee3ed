package repository

import (
	"context"

	"github.com/Luisr26/ExpertSoft/models"
	"gorm.io/gorm"
)

// InvoiceRepositoryImpl implements InvoiceRepository interface
type InvoiceRepositoryImpl struct {
	*BaseRepository[models.Invoice, uint]
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &InvoiceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Invoice, uint](db, "billing_period DESC, invoice_number"),
	}
}

// UpsertRows inserts or overwrites invoices by id
func (r *InvoiceRepositoryImpl) UpsertRows(ctx context.Context, rows []models.InvoiceRow) (int64, error) {
	affected, err := upsertRows(ctx, r.DB, models.Invoice{}.TableName(), rows,
		[]string{"id"},
		[]string{"invoice_number", "billing_period", "billed_amount", "paid_amount"})
	if err != nil || affected == 0 {
		return affected, err
	}
	return affected, syncSerial(ctx, r.DB, models.Invoice{}.TableName())
}
