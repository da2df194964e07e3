package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// RequisitionHistoryFilter filtro opcional por mes/año.
type RequisitionHistoryFilter struct {
	LocationID    string
	From          *time.Time
	To            *time.Time
	Limit         int
	Statuses      []entity.RequisitionStatus // vacío = todos
	ProductSearch string                     // busca en el nombre del producto
}

// RequisitionRepository persistencia de requisiciones.
type RequisitionRepository interface {
	Create(ctx context.Context, r *entity.Requisition) error
	GetByID(ctx context.Context, id string) (*entity.Requisition, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Requisition, error)
	// UpdateDecision persiste estado, decisor, fecha y motivo.
	UpdateDecision(ctx context.Context, r *entity.Requisition) error
	ListPendingByTenant(ctx context.Context, tenantID string) ([]*entity.Requisition, error)
	ListHistory(ctx context.Context, f RequisitionHistoryFilter) ([]*entity.Requisition, error)
}
