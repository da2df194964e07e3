package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ReceiptLine producto y botellas recibidas.
type ReceiptLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ReceiptBatch resultado de una entrada por lote.
type ReceiptBatch struct {
	Applied []*entity.Receipt
	Errors  []LineError
}

// ReceiptUseCase entrada de mercadería: siempre ingresa al bar central del restaurante.
type ReceiptUseCase struct {
	tx    TxRunner
	repos repository.TxRepos
	log   *logger.Logger
	now   func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(tx TxRunner, repos repository.TxRepos, log *logger.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{tx: tx, repos: repos, log: log, now: time.Now}
}

// Register aplica cada línea en su propia transacción (registro + Add en el central).
func (uc *ReceiptUseCase) Register(ctx context.Context, scope entity.Scope, lines []ReceiptLine, note string) (*ReceiptBatch, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	central, err := uc.repos.Locations.GetCentral(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	if central == nil {
		return nil, domain.ErrNoCentralLocation
	}

	out := &ReceiptBatch{}
	now := uc.now()
	for _, line := range lines {
		rec, err := uc.registerLine(ctx, scope, central.ID, line, note, now)
		if err != nil {
			logLineError(uc.log, err, "product_id", line.ProductID, "registrar entrada")
			out.Errors = append(out.Errors, LineError{Ref: line.ProductID, Err: err})
			continue
		}
		out.Applied = append(out.Applied, rec)
	}
	return out, nil
}

func (uc *ReceiptUseCase) registerLine(ctx context.Context, scope entity.Scope, centralID string, line ReceiptLine, note string, now time.Time) (*entity.Receipt, error) {
	if !line.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var rec *entity.Receipt
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		product, err := r.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.Active {
			return domain.ErrNotFound
		}
		rec = &entity.Receipt{
			ID:         uuid.New().String(),
			TenantID:   scope.TenantID,
			LocationID: centralID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UserID:     scope.UserID,
			Note:       note,
			ReceivedAt: now,
		}
		if err := r.Receipts.Create(ctx, rec); err != nil {
			return err
		}
		return addInTx(ctx, r.Balances, centralID, line.ProductID, stock.Quantities{Bottles: line.Quantity, Doses: decimal.Zero})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List últimas entradas del central del restaurante.
func (uc *ReceiptUseCase) List(ctx context.Context, scope entity.Scope, limit int) ([]*entity.Receipt, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	central, err := uc.repos.Locations.GetCentral(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	if central == nil {
		return nil, domain.ErrNoCentralLocation
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.repos.Receipts.ListByLocation(ctx, central.ID, limit)
}
