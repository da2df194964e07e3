package repository

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// BalanceRepository puerto del saldo por (bar, producto).
// Increment/Decrement son deltas relativos evaluados por el almacén; Overwrite es exclusivo del conteo.
type BalanceRepository interface {
	// Ensure crea la fila en cero si no existe (insert-if-absent).
	Ensure(ctx context.Context, locationID, productID string) error
	// Get lee sin lock. Ausente = cero.
	Get(ctx context.Context, locationID, productID string) (*entity.Balance, error)
	// GetForUpdate lee y bloquea la fila (SELECT ... FOR UPDATE). Ausente = cero.
	GetForUpdate(ctx context.Context, locationID, productID string) (*entity.Balance, error)
	Increment(ctx context.Context, locationID, productID string, q stock.Quantities) error
	// Decrement resta solo si ambos campos alcanzan; false sin mutar nada si no.
	Decrement(ctx context.Context, locationID, productID string, q stock.Quantities) (bool, error)
	// Overwrite reemplaza el saldo por el valor contado.
	Overwrite(ctx context.Context, locationID, productID string, q stock.Quantities) error

	// EnsureForProduct crea filas faltantes del producto en todos los bares. Devuelve filas creadas.
	EnsureForProduct(ctx context.Context, productID string) (int64, error)
	// EnsureForLocation crea filas faltantes del bar para todos los productos activos.
	EnsureForLocation(ctx context.Context, locationID string) (int64, error)
	// EnsureAll crea toda fila faltante (bar x producto activo).
	EnsureAll(ctx context.Context) (int64, error)
	// CountMissing cuenta pares (bar, producto activo) sin fila.
	CountMissing(ctx context.Context) (int64, error)

	ListByLocation(ctx context.Context, locationID string) ([]*entity.BalanceView, error)
}
