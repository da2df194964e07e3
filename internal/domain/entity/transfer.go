package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer movimiento entre dos bares del mismo restaurante.
// RequisitionID se completa cuando el movimiento nace de una requisición aprobada.
type Transfer struct {
	ID            string
	TenantID      string
	SourceID      string
	DestinationID string
	ProductID     string
	Bottles       decimal.Decimal
	Doses         decimal.Decimal
	UserID        string
	RequisitionID *string
	CreatedAt     time.Time
}
