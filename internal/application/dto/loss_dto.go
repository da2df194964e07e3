package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// LossRequest body de POST /api/losses.
type LossRequest struct {
	ProductID string          `json:"product_id"`
	Bottles   decimal.Decimal `json:"bottles"`
	Doses     decimal.Decimal `json:"doses"`
	Reason    string          `json:"reason"`
	Note      string          `json:"note"`
}

// WriteOffRequest body de POST .../write-off.
type WriteOffRequest struct {
	Note string `json:"note" validate:"max=255"`
}

// LossResponse pérdida con la foto del saldo antes y después.
type LossResponse struct {
	ID           string             `json:"id"`
	LocationID   string             `json:"location_id"`
	ProductID    string             `json:"product_id"`
	ProductCode  string             `json:"product_code,omitempty"`
	ProductName  string             `json:"product_name,omitempty"`
	LocationName string             `json:"location_name,omitempty"`
	Bottles      decimal.Decimal    `json:"bottles"`
	Doses        decimal.Decimal    `json:"doses"`
	Reason       string             `json:"reason"`
	Note         string             `json:"note,omitempty"`
	UserID       string             `json:"user_id"`
	RegisteredAt time.Time          `json:"registered_at"`
	Before       QuantitiesResponse `json:"before"`
	After        QuantitiesResponse `json:"after"`
	WrittenOff   bool               `json:"written_off"`
	WrittenOffAt *time.Time         `json:"written_off_at,omitempty"`
	WrittenOffBy *string            `json:"written_off_by,omitempty"`
	WriteOffNote string             `json:"write_off_note,omitempty"`
}

// FromLoss mapea una pérdida.
func FromLoss(l *entity.Loss) LossResponse {
	return LossResponse{
		ID:           l.ID,
		LocationID:   l.LocationID,
		ProductID:    l.ProductID,
		Bottles:      l.Bottles,
		Doses:        l.Doses,
		Reason:       string(l.Reason),
		Note:         l.Note,
		UserID:       l.UserID,
		RegisteredAt: l.RegisteredAt,
		Before:       QuantitiesResponse{Bottles: l.Before.Bottles, Doses: l.Before.Doses},
		After:        QuantitiesResponse{Bottles: l.After.Bottles, Doses: l.After.Doses},
		WrittenOff:   l.WrittenOff,
		WrittenOffAt: l.WrittenOffAt,
		WrittenOffBy: l.WrittenOffBy,
		WriteOffNote: l.WriteOffNote,
	}
}

// LossListResponse pérdidas de un período con totales.
type LossListResponse struct {
	From  time.Time          `json:"from"`
	To    time.Time          `json:"to"`
	Items []LossResponse     `json:"items"`
	Total QuantitiesResponse `json:"total"`
}
