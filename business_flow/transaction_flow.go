package businessflow

import (
	"context"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/models"
	"github.com/Luisr26/ExpertSoft/repository"
)

// TransactionFlow handles transactions. Reads return the joined detail projection.
type TransactionFlow interface {
	List(ctx context.Context) ([]models.TransactionDetail, error)
	Get(ctx context.Context, id string) (*models.TransactionDetail, error)
	Create(ctx context.Context, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	Update(ctx context.Context, id string, req *dto.TransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, id string) (*dto.DeleteResponse, error)
}

// TransactionFlowImpl implements TransactionFlow
type TransactionFlowImpl struct {
	entity          *entityFlow[models.Transaction, string]
	transactionRepo repository.TransactionRepository
}

func NewTransactionFlow(transactionRepo repository.TransactionRepository) TransactionFlow {
	return &TransactionFlowImpl{
		entity: &entityFlow[models.Transaction, string]{
			repo:     transactionRepo,
			name:     "transaction",
			notFound: ErrTransactionNotFound,
			idOf:     func(t *models.Transaction) string { return t.ID },
		},
		transactionRepo: transactionRepo,
	}
}

func (f *TransactionFlowImpl) List(ctx context.Context) ([]models.TransactionDetail, error) {
	items, err := f.transactionRepo.ListDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("TRANSACTION_LIST_FAILED", "Failed to list transactions", err)
	}
	if items == nil {
		items = []models.TransactionDetail{}
	}
	return items, nil
}

func (f *TransactionFlowImpl) Get(ctx context.Context, id string) (*models.TransactionDetail, error) {
	item, err := f.transactionRepo.ByIDDetailed(ctx, id)
	if err != nil {
		return nil, NewBusinessError("TRANSACTION_GET_FAILED", "Failed to get transaction", err)
	}
	if item == nil {
		return nil, NewBusinessErrorf("TRANSACTION_NOT_FOUND", "transaction %s not found", ErrTransactionNotFound, id)
	}
	return item, nil
}

func (f *TransactionFlowImpl) Create(ctx context.Context, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	t := transactionFromRequest(&req.TransactionRequest)
	t.ID = req.ID
	return f.entity.create(ctx, t)
}

func (f *TransactionFlowImpl) Update(ctx context.Context, id string, req *dto.TransactionRequest) (*models.Transaction, error) {
	return f.entity.update(ctx, id, transactionFromRequest(req).Assignments())
}

func (f *TransactionFlowImpl) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	return f.entity.delete(ctx, id)
}

func transactionFromRequest(req *dto.TransactionRequest) *models.Transaction {
	return &models.Transaction{
		ClientID:   req.ClientID,
		PlatformID: req.PlatformID,
		InvoiceID:  req.InvoiceID,
		OccurredAt: req.Timestamp,
		Amount:     req.Amount.String(),
		Status:     req.Status,
		Type:       req.Type,
	}
}
