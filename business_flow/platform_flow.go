package businessflow

import (
	"context"

	"github.com/Luisr26/ExpertSoft/app/dto"
	"github.com/Luisr26/ExpertSoft/models"
	"github.com/Luisr26/ExpertSoft/repository"
)

// PlatformFlow handles the platform catalogue
type PlatformFlow interface {
	List(ctx context.Context) ([]*models.Platform, error)
	Get(ctx context.Context, id uint) (*models.Platform, error)
	Create(ctx context.Context, req *dto.PlatformRequest) (*models.Platform, error)
	Update(ctx context.Context, id uint, req *dto.PlatformRequest) (*models.Platform, error)
	Delete(ctx context.Context, id uint) (*dto.DeleteResponse, error)
}

// PlatformFlowImpl implements PlatformFlow
type PlatformFlowImpl struct {
	entity *entityFlow[models.Platform, uint]
}

func NewPlatformFlow(platformRepo repository.PlatformRepository) PlatformFlow {
	return &PlatformFlowImpl{
		entity: &entityFlow[models.Platform, uint]{
			repo:     platformRepo,
			name:     "platform",
			notFound: ErrPlatformNotFound,
			idOf:     func(p *models.Platform) uint { return p.ID },
		},
	}
}

func (f *PlatformFlowImpl) List(ctx context.Context) ([]*models.Platform, error) {
	return f.entity.list(ctx)
}

func (f *PlatformFlowImpl) Get(ctx context.Context, id uint) (*models.Platform, error) {
	return f.entity.get(ctx, id)
}

func (f *PlatformFlowImpl) Create(ctx context.Context, req *dto.PlatformRequest) (*models.Platform, error) {
	return f.entity.create(ctx, platformFromRequest(req))
}

func (f *PlatformFlowImpl) Update(ctx context.Context, id uint, req *dto.PlatformRequest) (*models.Platform, error) {
	return f.entity.update(ctx, id, platformFromRequest(req).Assignments())
}

func (f *PlatformFlowImpl) Delete(ctx context.Context, id uint) (*dto.DeleteResponse, error) {
	return f.entity.delete(ctx, id)
}

func platformFromRequest(req *dto.PlatformRequest) *models.Platform {
	return &models.Platform{Name: req.Name}
}
