package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/shopspring/decimal"
)

// RequisitionStatus estado de una requisición. Solo PENDING admite transiciones.
type RequisitionStatus string

const (
	RequisitionPending      RequisitionStatus = "PENDING"
	RequisitionApproved     RequisitionStatus = "APPROVED"
	RequisitionDenied       RequisitionStatus = "DENIED"
	RequisitionStockFailure RequisitionStatus = "STOCK_FAILURE"
)

// StockFailureReason motivo que el sistema registra cuando el central no alcanza.
const StockFailureReason = "Stock insuficiente en el bar central."

// Requisition pedido de un bar al bar central de su restaurante.
type Requisition struct {
	ID           string
	TenantID     string
	LocationID   string // bar solicitante
	ProductID    string
	Quantity     decimal.Decimal // botellas
	Status       RequisitionStatus
	RequestedBy  string
	RequestedAt  time.Time
	Note         string
	DecidedBy    *string
	DecidedAt    *time.Time
	DenialReason string
}

// IsTerminal indica si ya fue decidida.
func (r *Requisition) IsTerminal() bool {
	return r.Status != RequisitionPending
}

func (r *Requisition) decide(status RequisitionStatus, userID string, at time.Time) error {
	if r.IsTerminal() {
		return domain.ErrInvalidTransition
	}
	r.Status = status
	r.DecidedBy = &userID
	r.DecidedAt = &at
	return nil
}

// Approve PENDING -> APPROVED.
func (r *Requisition) Approve(userID string, at time.Time) error {
	return r.decide(RequisitionApproved, userID, at)
}

// MarkStockFailure PENDING -> STOCK_FAILURE con el motivo del sistema.
func (r *Requisition) MarkStockFailure(userID string, at time.Time) error {
	if err := r.decide(RequisitionStockFailure, userID, at); err != nil {
		return err
	}
	r.DenialReason = StockFailureReason
	return nil
}

// Deny PENDING -> DENIED. El motivo es obligatorio.
func (r *Requisition) Deny(userID, reason string, at time.Time) error {
	if r.IsTerminal() {
		return domain.ErrInvalidTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrReasonRequired
	}
	if err := r.decide(RequisitionDenied, userID, at); err != nil {
		return err
	}
	r.DenialReason = reason
	return nil
}
