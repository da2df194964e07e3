package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// LocationUseCase alta y consulta de bares.
type LocationUseCase struct {
	repo    repository.LocationRepository
	tenants repository.TenantRepository
	hooks   ProvisioningHooks
}

// NewLocationUseCase construye el caso de uso. hooks puede ser nil.
func NewLocationUseCase(repo repository.LocationRepository, tenants repository.TenantRepository, hooks ProvisioningHooks) *LocationUseCase {
	if hooks == nil {
		hooks = noopHooks{}
	}
	return &LocationUseCase{repo: repo, tenants: tenants, hooks: hooks}
}

// Create crea un bar. Un restaurante tiene a lo sumo un central (ErrDuplicate).
// Después del alta se disparan los saldos en cero para todo el catálogo activo.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenants.GetByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if in.IsCentral {
		central, err := uc.repo.GetCentral(ctx, in.TenantID)
		if err != nil {
			return nil, err
		}
		if central != nil {
			return nil, domain.ErrDuplicate
		}
	}
	location := &entity.Location{
		ID:        uuid.New().String(),
		TenantID:  in.TenantID,
		Name:      name,
		IsCentral: in.IsCentral,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	uc.hooks.LocationCreated(location)
	return toLocationResponse(location), nil
}

// ListByTenant bares de un restaurante.
func (uc *LocationUseCase) ListByTenant(ctx context.Context, tenantID string) ([]dto.LocationResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		TenantID:  l.TenantID,
		Name:      l.Name,
		IsCentral: l.IsCentral,
		CreatedAt: l.CreatedAt,
	}
}
