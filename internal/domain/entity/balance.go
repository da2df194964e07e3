package entity

import (
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// Balance saldo actual (botellas, dosis) de un producto en un bar. Clave única (LocationID, ProductID).
// Solo el libro de existencias escribe estos campos.
type Balance struct {
	LocationID string
	ProductID  string
	Bottles    decimal.Decimal
	Doses      decimal.Decimal
	UpdatedAt  time.Time
}

// Quantities devuelve el par actual.
func (b *Balance) Quantities() stock.Quantities {
	if b == nil {
		return stock.Zero()
	}
	return stock.Quantities{Bottles: b.Bottles, Doses: b.Doses}
}

// BalanceView saldo enriquecido con datos del producto para listados.
type BalanceView struct {
	Balance
	ProductCode string
	ProductName string
	Category    string
}
