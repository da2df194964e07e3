package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Decision decisión sobre una requisición pendiente.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionDeny    Decision = "DENY"
)

// RequisitionLine producto y botellas pedidas.
type RequisitionLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// RequisitionBatch resultado de crear un lote de requisiciones.
type RequisitionBatch struct {
	Created []*entity.Requisition
	Errors  []LineError
}

// DecisionItem una decisión dentro de un lote.
type DecisionItem struct {
	RequisitionID string
	Decision      Decision
	Reason        string
}

// DecisionBatch resultado de decidir un lote: lo aplicado y los errores por ítem.
type DecisionBatch struct {
	Decided []*entity.Requisition
	Errors  []LineError
}

// RequisitionUseCase flujo de requisiciones del bar al central.
type RequisitionUseCase struct {
	tx    TxRunner
	repos repository.TxRepos
	log   *logger.Logger
	now   func() time.Time
}

// NewRequisitionUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewRequisitionUseCase(tx TxRunner, repos repository.TxRepos, log *logger.Logger) *RequisitionUseCase {
	return &RequisitionUseCase{tx: tx, repos: repos, log: log, now: time.Now}
}

// Create registra una requisición PENDING por cada línea válida cuyo pedido el central cubra hoy.
// La verificación de saldo es orientativa (sin lock); la aprobación vuelve a verificar.
func (uc *RequisitionUseCase) Create(ctx context.Context, scope entity.Scope, lines []RequisitionLine, note string) (*RequisitionBatch, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	central, err := uc.repos.Locations.GetCentral(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	if central == nil {
		return nil, domain.ErrNoCentralLocation
	}
	if central.ID == scope.LocationID {
		return nil, domain.ErrSameLocation
	}

	out := &RequisitionBatch{}
	now := uc.now()
	for _, line := range lines {
		req, err := uc.createLine(ctx, scope, central.ID, line, note, now)
		if err != nil {
			out.Errors = append(out.Errors, LineError{Ref: line.ProductID, Err: err})
			continue
		}
		out.Created = append(out.Created, req)
	}
	return out, nil
}

func (uc *RequisitionUseCase) createLine(ctx context.Context, scope entity.Scope, centralID string, line RequisitionLine, note string, now time.Time) (*entity.Requisition, error) {
	if !line.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repos.Products.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.repos.Balances.Get(ctx, centralID, line.ProductID)
	if err != nil {
		return nil, err
	}
	if bal.Bottles.LessThan(line.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	req := &entity.Requisition{
		ID:          uuid.New().String(),
		TenantID:    scope.TenantID,
		LocationID:  scope.LocationID,
		ProductID:   line.ProductID,
		Quantity:    line.Quantity,
		Status:      entity.RequisitionPending,
		RequestedBy: scope.UserID,
		RequestedAt: now,
		Note:        note,
	}
	if err := uc.repos.Requisitions.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Decide aprueba o niega una requisición pendiente en su propia transacción.
// Si el central no alcanza, la requisición queda STOCK_FAILURE (sin error) y no se toca el destino.
func (uc *RequisitionUseCase) Decide(ctx context.Context, scope entity.Scope, requisitionID string, decision Decision, reason string) (*entity.Requisition, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	if decision != DecisionApprove && decision != DecisionDeny {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Requisition
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		req, err := r.Requisitions.GetForUpdate(ctx, requisitionID)
		if err != nil {
			return err
		}
		if req == nil || req.TenantID != scope.TenantID {
			return domain.ErrNotFound
		}
		if req.IsTerminal() {
			return domain.ErrInvalidTransition
		}
		now := uc.now()

		if decision == DecisionDeny {
			if err := req.Deny(scope.UserID, reason, now); err != nil {
				return err
			}
			if err := r.Requisitions.UpdateDecision(ctx, req); err != nil {
				return err
			}
			result = req
			return nil
		}

		central, err := r.Locations.GetCentral(ctx, req.TenantID)
		if err != nil {
			return err
		}
		if central == nil {
			return domain.ErrNoCentralLocation
		}
		q := stock.Quantities{Bottles: req.Quantity, Doses: decimal.Zero}
		ok, err := transferInTx(ctx, r.Balances, central.ID, req.LocationID, req.ProductID, q)
		if err != nil {
			return err
		}
		if !ok {
			if err := req.MarkStockFailure(scope.UserID, now); err != nil {
				return err
			}
		} else {
			if err := req.Approve(scope.UserID, now); err != nil {
				return err
			}
			reqID := req.ID
			if err := r.Transfers.Create(ctx, &entity.Transfer{
				ID:            uuid.New().String(),
				TenantID:      req.TenantID,
				SourceID:      central.ID,
				DestinationID: req.LocationID,
				ProductID:     req.ProductID,
				Bottles:       req.Quantity,
				Doses:         decimal.Zero,
				UserID:        scope.UserID,
				RequisitionID: &reqID,
				CreatedAt:     now,
			}); err != nil {
				return fmt.Errorf("registrar transferencia: %w", err)
			}
		}
		if err := r.Requisitions.UpdateDecision(ctx, req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DecideBatch decide cada ítem en su propia transacción; un error no bloquea a los demás.
// Una falla de stock se aplica (STOCK_FAILURE) y además se informa como error del ítem.
func (uc *RequisitionUseCase) DecideBatch(ctx context.Context, scope entity.Scope, items []DecisionItem) (*DecisionBatch, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	out := &DecisionBatch{}
	for _, it := range items {
		req, err := uc.Decide(ctx, scope, it.RequisitionID, it.Decision, it.Reason)
		if err != nil {
			logLineError(uc.log, err, "requisition_id", it.RequisitionID, "decidir requisición")
			out.Errors = append(out.Errors, LineError{Ref: it.RequisitionID, Err: err})
			continue
		}
		out.Decided = append(out.Decided, req)
		if req.Status == entity.RequisitionStockFailure {
			out.Errors = append(out.Errors, LineError{Ref: it.RequisitionID, Err: domain.ErrInsufficientStock})
		}
	}
	return out, nil
}

// ListPending requisiciones pendientes del restaurante, más antiguas primero.
func (uc *RequisitionUseCase) ListPending(ctx context.Context, scope entity.Scope) ([]*entity.Requisition, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	return uc.repos.Requisitions.ListPendingByTenant(ctx, scope.TenantID)
}

// History requisiciones del bar actual. Con month/year filtra ese mes; si no, las últimas 20.
func (uc *RequisitionUseCase) History(ctx context.Context, scope entity.Scope, month, year int, loc *time.Location) ([]*entity.Requisition, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	f := repository.RequisitionHistoryFilter{LocationID: scope.LocationID, Limit: 20}
	if month != 0 || year != 0 {
		if month < 1 || month > 12 || year < 2000 {
			return nil, domain.ErrInvalidInput
		}
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 1, 0)
		f.From, f.To, f.Limit = &from, &to, 0
	}
	return uc.repos.Requisitions.ListHistory(ctx, f)
}

// logLineError registra errores de lote: locks como warn, inesperados como error.
func logLineError(log *logger.Logger, err error, key, ref, msg string) {
	switch {
	case errors.Is(err, domain.ErrLockTimeout):
		log.Warn().Err(err).Str(key, ref).Msg(msg)
	case !isBusinessError(err):
		log.Error().Err(err).Str(key, ref).Msg(msg)
	}
}

// isBusinessError errores esperados del flujo que no ameritan log de error.
func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrInvalidTransition,
		domain.ErrReasonRequired, domain.ErrInsufficientStock, domain.ErrNoCentralLocation,
		domain.ErrSameLocation, domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
