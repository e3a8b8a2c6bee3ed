package businessflow

import (
	"context"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/models"
	"github.com/Luisr26/ExpertSoft/repository"
)

// InvoiceFlow handles invoices
type InvoiceFlow interface {
	List(ctx context.Context) ([]*models.Invoice, error)
	Get(ctx context.Context, id uint) (*models.Invoice, error)
	Create(ctx context.Context, req *dto.InvoiceRequest) (*models.Invoice, error)
	Update(ctx context.Context, id uint, req *dto.InvoiceRequest) (*models.Invoice, error)
	Delete(ctx context.Context, id uint) (*dto.DeleteResponse, error)
}

// InvoiceFlowImpl implements InvoiceFlow
type InvoiceFlowImpl struct {
	entity *entityFlow[models.Invoice, uint]
}

func NewInvoiceFlow(invoiceRepo repository.InvoiceRepository) InvoiceFlow {
	return &InvoiceFlowImpl{
		entity: &entityFlow[models.Invoice, uint]{
			repo:     invoiceRepo,
			name:     "invoice",
			notFound: ErrInvoiceNotFound,
			idOf:     func(i *models.Invoice) uint { return i.ID },
		},
	}
}

func (f *InvoiceFlowImpl) List(ctx context.Context) ([]*models.Invoice, error) {
	return f.entity.list(ctx)
}

func (f *InvoiceFlowImpl) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	return f.entity.get(ctx, id)
}

func (f *InvoiceFlowImpl) Create(ctx context.Context, req *dto.InvoiceRequest) (*models.Invoice, error) {
	return f.entity.create(ctx, invoiceFromRequest(req))
}

func (f *InvoiceFlowImpl) Update(ctx context.Context, id uint, req *dto.InvoiceRequest) (*models.Invoice, error) {
	return f.entity.update(ctx, id, invoiceFromRequest(req).Assignments())
}

func (f *InvoiceFlowImpl) Delete(ctx context.Context, id uint) (*dto.DeleteResponse, error) {
	return f.entity.delete(ctx, id)
}

func invoiceFromRequest(req *dto.InvoiceRequest) *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		BillingPeriod: req.BillingPeriod,
		BilledAmount:  req.BilledAmount.String(),
		PaidAmount:    req.PaidAmount.String(),
	}
}
