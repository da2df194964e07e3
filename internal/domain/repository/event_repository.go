package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EventFilter filtro de eventos por restaurante (opcional) y rango de fecha del evento.
type EventFilter struct {
	TenantID *string
	From     *time.Time
	To       *time.Time
	Status   *entity.EventStatus
	Limit    int
	Offset   int
}

// ProductConsumption suma de bebidas de eventos por producto.
type ProductConsumption struct {
	ProductID string
	Bottles   int64
	Doses     int64
}

// FoodConsumption suma de alimentos de eventos por alimento.
type FoodConsumption struct {
	FoodID   string
	Quantity decimal.Decimal
}

// EventRepository persistencia de eventos con sus ítems.
type EventRepository interface {
	// Create persiste el evento y sus ítems.
	Create(ctx context.Context, e *entity.Event) error
	// GetByID carga el evento con sus ítems; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	// GetForUpdate igual que GetByID pero bloquea la fila del evento.
	GetForUpdate(ctx context.Context, id string) (*entity.Event, error)
	// Update persiste cabecera (estado, finalización, baja) y reemplaza los ítems.
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f EventFilter) ([]*entity.Event, error)
	SumProducts(ctx context.Context, f EventFilter) ([]ProductConsumption, error)
	SumFoods(ctx context.Context, f EventFilter) ([]FoodConsumption, error)
}
