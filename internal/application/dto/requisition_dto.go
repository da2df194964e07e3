package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// RequisitionLineRequest producto y botellas pedidas al central.
type RequisitionLineRequest struct {
	ProductID string       `json:"product_id"`
	Quantity  QuantityText `json:"quantity"`
}

// RequisitionRequest body de POST /api/requisitions.
type RequisitionRequest struct {
	Note  string                   `json:"note"`
	Lines []RequisitionLineRequest `json:"lines"`
}

// DecisionRequest decisión sobre una requisición: APPROVE o DENY (DENY exige reason).
type DecisionRequest struct {
	RequisitionID string `json:"requisition_id"`
	Decision      string `json:"decision"`
	Reason        string `json:"reason"`
}

// DecisionsRequest body de POST /api/requisitions/decisions.
type DecisionsRequest struct {
	Items []DecisionRequest `json:"items"`
}

// RequisitionResponse salida de una requisición.
type RequisitionResponse struct {
	ID           string          `json:"id"`
	LocationID   string          `json:"location_id"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Status       string          `json:"status"`
	RequestedBy  string          `json:"requested_by"`
	RequestedAt  time.Time       `json:"requested_at"`
	Note         string          `json:"note,omitempty"`
	DecidedBy    *string         `json:"decided_by,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	DenialReason string          `json:"denial_reason,omitempty"`
}

// FromRequisition mapea una requisición.
func FromRequisition(r *entity.Requisition) RequisitionResponse {
	return RequisitionResponse{
		ID:           r.ID,
		LocationID:   r.LocationID,
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		Status:       string(r.Status),
		RequestedBy:  r.RequestedBy,
		RequestedAt:  r.RequestedAt,
		Note:         r.Note,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		DenialReason: r.DenialReason,
	}
}

// FromRequisitions mapea una lista.
func FromRequisitions(list []*entity.Requisition) []RequisitionResponse {
	out := make([]RequisitionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromRequisition(r))
	}
	return out
}
