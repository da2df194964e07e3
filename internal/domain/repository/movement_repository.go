package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// ReceiptRepository registros de entrada de mercadería.
type ReceiptRepository interface {
	Create(ctx context.Context, r *entity.Receipt) error
	ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Receipt, error)
}

// TransferRepository registros de transferencia.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	// ListByLocation transferencias donde el bar es origen o destino, más recientes primero.
	ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Transfer, error)
}

// CountRepository registros de conteo.
type CountRepository interface {
	Create(ctx context.Context, c *entity.Count) error
	ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Count, error)
	// ListLatestPairs devuelve hasta los dos últimos conteos por (bar, producto) del restaurante,
	// ordenados por bar, producto y fecha descendente.
	ListLatestPairs(ctx context.Context, tenantID string) ([]*entity.Count, error)
	// ListLatest último conteo por (bar, producto) del restaurante dentro de [from, to).
	// Sin ventana (from y to nil) devuelve el último de todos.
	ListLatest(ctx context.Context, tenantID string, from, to *time.Time) ([]*entity.Count, error)
	// ListByLocationBetween conteos del bar en [from, to), más recientes primero.
	ListByLocationBetween(ctx context.Context, locationID string, from, to time.Time) ([]*entity.Count, error)
}

// LossFilter filtros de listados de pérdidas.
type LossFilter struct {
	TenantID    string
	LocationID  string
	From        time.Time
	To          time.Time // exclusivo
	Search      string    // busca en nombre/código de producto y observación
	Reason      entity.LossReason
	PendingOnly bool // solo las que aún no fueron dadas de baja
}

// LossRepository registros de pérdida.
type LossRepository interface {
	Create(ctx context.Context, l *entity.Loss) error
	GetByID(ctx context.Context, id string) (*entity.Loss, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Loss, error)
	Delete(ctx context.Context, id string) error
	UpdateWriteOff(ctx context.Context, l *entity.Loss) error
	List(ctx context.Context, f LossFilter) ([]*entity.Loss, error)
}
