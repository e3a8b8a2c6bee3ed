package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Luisr26/ExpertSoft/models"
	"gorm.io/gorm"
)

const (
	transactionColumns = "t.id, t.client_id, t.platform_id, t.invoice_id, t.occurred_at, t.amount, t.status, t.type"
	referencedColumns  = "p.name AS platform_name, i.invoice_number, i.billing_period, i.billed_amount, i.paid_amount"
)

// TransactionRepositoryImpl implements TransactionRepository interface
type TransactionRepositoryImpl struct {
	*BaseRepository[models.Transaction, string]
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &TransactionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Transaction, string](db, "occurred_at DESC, id"),
	}
}

// UpsertRows inserts or overwrites transactions by id.
// Every referenced client, platform and invoice must already exist.
func (r *TransactionRepositoryImpl) UpsertRows(ctx context.Context, rows []models.TransactionRow) (int64, error) {
	return upsertRows(ctx, r.DB, models.Transaction{}.TableName(), rows,
		[]string{"id"},
		[]string{"client_id", "platform_id", "invoice_id", "occurred_at", "amount", "status", "type"})
}

// joined selects transactions with their platform and invoice, plus the given client columns
func (r *TransactionRepositoryImpl) joined(ctx context.Context, clientColumns string) *gorm.DB {
	query := r.getDB(ctx).
		Table("transactions AS t").
		Joins("JOIN platforms AS p ON p.id = t.platform_id").
		Joins("JOIN invoices AS i ON i.id = t.invoice_id")

	columns := transactionColumns + ", " + referencedColumns
	if clientColumns != "" {
		query = query.Joins("JOIN clients AS c ON c.id = t.client_id")
		columns += ", " + clientColumns
	}
	return query.Select(columns)
}

// ListDetailed lists every transaction with client, platform and invoice data, newest first
func (r *TransactionRepositoryImpl) ListDetailed(ctx context.Context) ([]models.TransactionDetail, error) {
	var details []models.TransactionDetail
	err := r.joined(ctx, "c.name AS client_name, c.identification_number AS client_identification_number").
		Order("t.occurred_at DESC, t.id").
		Scan(&details).Error
	if err != nil {
		return nil, wrapDBError("list transactions", err)
	}
	return details, nil
}

// ByIDDetailed finds one transaction with client, platform and invoice data
func (r *TransactionRepositoryImpl) ByIDDetailed(ctx context.Context, id string) (*models.TransactionDetail, error) {
	var detail models.TransactionDetail
	err := r.joined(ctx, "c.name AS client_name, c.identification_number AS client_identification_number, c.email AS client_email").
		Where("t.id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBError(fmt.Sprintf("find transaction %s", id), err)
	}
	return &detail, nil
}

// ListByClient lists the transactions of one client with platform and invoice data, newest first
func (r *TransactionRepositoryImpl) ListByClient(ctx context.Context, clientID uint) ([]models.TransactionDetail, error) {
	var details []models.TransactionDetail
	err := r.joined(ctx, "").
		Where("t.client_id = ?", clientID).
		Order("t.occurred_at DESC, t.id").
		Scan(&details).Error
	if err != nil {
		return nil, wrapDBError(fmt.Sprintf("list transactions of client %d", clientID), err)
	}
	return details, nil
}

// ReferenceCounts counts the distinct clients, platforms and invoices referenced by transactions
func (r *TransactionRepositoryImpl) ReferenceCounts(ctx context.Context) (*models.TransactionReferences, error) {
	var refs models.TransactionReferences
	err := r.getDB(ctx).
		Model(&models.Transaction{}).
		Select("COUNT(DISTINCT client_id) AS clients_with_transactions, " +
			"COUNT(DISTINCT platform_id) AS platforms_used, " +
			"COUNT(DISTINCT invoice_id) AS invoices_with_transactions").
		Scan(&refs).Error
	if err != nil {
		return nil, wrapDBError("count transaction references", err)
	}
	return &refs, nil
}
