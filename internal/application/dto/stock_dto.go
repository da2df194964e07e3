package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// BalanceResponse saldo de un producto en el bar actual.
type BalanceResponse struct {
	LocationID  string          `json:"location_id"`
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Bottles     decimal.Decimal `json:"bottles"`
	Doses       decimal.Decimal `json:"doses"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromBalanceView mapea el saldo enriquecido.
func FromBalanceView(b *entity.BalanceView) BalanceResponse {
	return BalanceResponse{
		LocationID:  b.LocationID,
		ProductID:   b.ProductID,
		ProductCode: b.ProductCode,
		ProductName: b.ProductName,
		Category:    b.Category,
		Bottles:     b.Bottles,
		Doses:       b.Doses,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ReceiptLineRequest una línea de entrada de mercadería.
type ReceiptLineRequest struct {
	ProductID string       `json:"product_id"`
	Quantity  QuantityText `json:"quantity"`
}

// ReceiptRequest body de POST /api/stock/receipts.
type ReceiptRequest struct {
	Note  string               `json:"note"`
	Lines []ReceiptLineRequest `json:"lines"`
}

// ReceiptResponse entrada registrada.
type ReceiptResponse struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UserID     string          `json:"user_id"`
	Note       string          `json:"note,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
}

// FromReceipt mapea una entrada.
func FromReceipt(r *entity.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:         r.ID,
		LocationID: r.LocationID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		UserID:     r.UserID,
		Note:       r.Note,
		ReceivedAt: r.ReceivedAt,
	}
}

// TransferRequest body de POST /api/stock/transfers (origen = bar actual).
type TransferRequest struct {
	DestinationID string          `json:"destination_id"`
	ProductID     string          `json:"product_id"`
	Bottles       decimal.Decimal `json:"bottles"`
	Doses         decimal.Decimal `json:"doses"`
}

// TransferResponse transferencia registrada.
type TransferResponse struct {
	ID            string          `json:"id"`
	SourceID      string          `json:"source_id"`
	DestinationID string          `json:"destination_id"`
	ProductID     string          `json:"product_id"`
	Bottles       decimal.Decimal `json:"bottles"`
	Doses         decimal.Decimal `json:"doses"`
	UserID        string          `json:"user_id"`
	RequisitionID *string         `json:"requisition_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FromTransfer mapea una transferencia.
func FromTransfer(t *entity.Transfer) TransferResponse {
	return TransferResponse{
		ID:            t.ID,
		SourceID:      t.SourceID,
		DestinationID: t.DestinationID,
		ProductID:     t.ProductID,
		Bottles:       t.Bottles,
		Doses:         t.Doses,
		UserID:        t.UserID,
		RequisitionID: t.RequisitionID,
		CreatedAt:     t.CreatedAt,
	}
}

// CountLineRequest línea de conteo. Los valores llegan como texto del formulario; vacío = omitida.
type CountLineRequest struct {
	ProductID string       `json:"product_id"`
	Bottles   QuantityText `json:"bottles"`
	Doses     QuantityText `json:"doses"`
}

// CountRequest body de POST /api/stock/counts.
type CountRequest struct {
	Note  string             `json:"note"`
	Lines []CountLineRequest `json:"lines"`
}

// CountResponse conteo registrado.
type CountResponse struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	ProductID  string          `json:"product_id"`
	Bottles    decimal.Decimal `json:"bottles"`
	Doses      decimal.Decimal `json:"doses"`
	UserID     string          `json:"user_id"`
	Note       string          `json:"note,omitempty"`
	CountedAt  time.Time       `json:"counted_at"`
}

// FromCount mapea un conteo.
func FromCount(c *entity.Count) CountResponse {
	return CountResponse{
		ID:         c.ID,
		LocationID: c.LocationID,
		ProductID:  c.ProductID,
		Bottles:    c.Bottles,
		Doses:      c.Doses,
		UserID:     c.UserID,
		Note:       c.Note,
		CountedAt:  c.CountedAt,
	}
}
