package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt entrada de mercadería al bar central (registro append-only).
type Receipt struct {
	ID         string
	TenantID   string
	LocationID string
	ProductID  string
	Quantity   decimal.Decimal
	UserID     string
	Note       string
	ReceivedAt time.Time
}
