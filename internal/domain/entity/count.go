package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Count registro de conteo físico. Al guardarse reemplaza el saldo del bar (no es un delta).
type Count struct {
	ID         string
	LocationID string
	ProductID  string
	Bottles    decimal.Decimal
	Doses      decimal.Decimal
	UserID     string
	Note       string
	CountedAt  time.Time
}

// CountDifference compara el último conteo con el anterior para un producto en un bar.
type CountDifference struct {
	LocationID   string
	LocationName string
	ProductID    string
	ProductName  string
	Last         Count
	Previous     *Count
	BottlesDiff  decimal.Decimal
	DosesDiff    decimal.Decimal
}
