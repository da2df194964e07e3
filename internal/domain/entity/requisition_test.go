package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/domain"
)

func pendingRequisition() *Requisition {
	return &Requisition{ID: "r1", Quantity: decimal.NewFromInt(2), Status: RequisitionPending}
}

func TestRequisition_Approve(t *testing.T) {
	r := pendingRequisition()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Approve("u1", at))
	assert.Equal(t, RequisitionApproved, r.Status)
	require.NotNil(t, r.DecidedBy)
	assert.Equal(t, "u1", *r.DecidedBy)
	assert.Equal(t, at, *r.DecidedAt)
}

func TestRequisition_StockFailureGuardaMotivoDelSistema(t *testing.T) {
	r := pendingRequisition()
	require.NoError(t, r.MarkStockFailure("u1", time.Now()))
	assert.Equal(t, RequisitionStockFailure, r.Status)
	assert.Equal(t, StockFailureReason, r.DenialReason)
}

func TestRequisition_DenyExigeMotivo(t *testing.T) {
	r := pendingRequisition()
	assert.ErrorIs(t, r.Deny("u1", "   ", time.Now()), domain.ErrReasonRequired)
	assert.Equal(t, RequisitionPending, r.Status, "sin motivo sigue pendiente")
	assert.Nil(t, r.DecidedBy)

	require.NoError(t, r.Deny("u1", " sin presupuesto ", time.Now()))
	assert.Equal(t, RequisitionDenied, r.Status)
	assert.Equal(t, "sin presupuesto", r.DenialReason)
}

func TestRequisition_EstadosTerminalesNoCambian(t *testing.T) {
	decide := map[string]func(r *Requisition) error{
		"approve": func(r *Requisition) error { return r.Approve("u2", time.Now()) },
		"failure": func(r *Requisition) error { return r.MarkStockFailure("u2", time.Now()) },
		"deny":    func(r *Requisition) error { return r.Deny("u2", "motivo", time.Now()) },
	}
	terminal := []RequisitionStatus{RequisitionApproved, RequisitionDenied, RequisitionStockFailure}

	for _, status := range terminal {
		for name, fn := range decide {
			r := pendingRequisition()
			r.Status = status
			err := fn(r)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s desde %s", name, status)
			assert.Equal(t, status, r.Status)
			assert.Nil(t, r.DecidedBy)
		}
	}
}
