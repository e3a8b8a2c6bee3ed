package businessflow

import (
	"context"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/models"
	"github.com/Luisr26/ExpertSoft/repository"
)

// ClientFlow handles clients and the transactions made by each of them
type ClientFlow interface {
	List(ctx context.Context) ([]*models.Client, error)
	Get(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, req *dto.ClientRequest) (*models.Client, error)
	Update(ctx context.Context, id uint, req *dto.ClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id uint) (*dto.DeleteResponse, error)
	ListTransactions(ctx context.Context, id uint) ([]models.TransactionDetail, error)
}

// ClientFlowImpl implements ClientFlow
type ClientFlowImpl struct {
	entity          *entityFlow[models.Client, uint]
	transactionRepo repository.TransactionRepository
}

func NewClientFlow(clientRepo repository.ClientRepository, transactionRepo repository.TransactionRepository) ClientFlow {
	return &ClientFlowImpl{
		entity: &entityFlow[models.Client, uint]{
			repo:     clientRepo,
			name:     "client",
			notFound: ErrClientNotFound,
			idOf:     func(c *models.Client) uint { return c.ID },
		},
		transactionRepo: transactionRepo,
	}
}

func (f *ClientFlowImpl) List(ctx context.Context) ([]*models.Client, error) {
	return f.entity.list(ctx)
}

func (f *ClientFlowImpl) Get(ctx context.Context, id uint) (*models.Client, error) {
	return f.entity.get(ctx, id)
}

func (f *ClientFlowImpl) Create(ctx context.Context, req *dto.ClientRequest) (*models.Client, error) {
	return f.entity.create(ctx, clientFromRequest(req))
}

func (f *ClientFlowImpl) Update(ctx context.Context, id uint, req *dto.ClientRequest) (*models.Client, error) {
	return f.entity.update(ctx, id, clientFromRequest(req).Assignments())
}

func (f *ClientFlowImpl) Delete(ctx context.Context, id uint) (*dto.DeleteResponse, error) {
	return f.entity.delete(ctx, id)
}

// ListTransactions returns the client's transactions, newest first.
// An unknown client is not found; a known client without transactions yields an empty list.
func (f *ClientFlowImpl) ListTransactions(ctx context.Context, id uint) ([]models.TransactionDetail, error) {
	if _, err := f.entity.get(ctx, id); err != nil {
		return nil, err
	}

	items, err := f.transactionRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CLIENT_TRANSACTIONS_FAILED", "Failed to list client transactions", err)
	}
	if items == nil {
		items = []models.TransactionDetail{}
	}
	return items, nil
}

func clientFromRequest(req *dto.ClientRequest) *models.Client {
	return &models.Client{
		Name:                 req.Name,
		IdentificationNumber: req.IdentificationNumber,
		Address:              req.Address,
		Phone:                req.Phone,
		Email:                req.Email,
	}
}
