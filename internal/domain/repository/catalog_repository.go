package repository

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// TenantRepository persistencia de restaurantes.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	List(ctx context.Context) ([]*entity.Tenant, error)
}

// LocationRepository persistencia de bares.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetCentral devuelve el bar central del restaurante o nil si no hay.
	GetCentral(ctx context.Context, tenantID string) (*entity.Location, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Location, error)
}

// ProductRepository persistencia del catálogo de bebidas.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Product, error)
}

// FoodRepository persistencia del catálogo de alimentos.
type FoodRepository interface {
	Create(ctx context.Context, f *entity.Food) error
	GetByID(ctx context.Context, id string) (*entity.Food, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Food, error)
}
