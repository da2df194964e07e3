package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// TransferInput transferencia desde el bar del alcance hacia otro bar del mismo restaurante.
type TransferInput struct {
	DestinationID string
	ProductID     string
	Bottles       decimal.Decimal
	Doses         decimal.Decimal
}

// TransferUseCase transferencias entre bares.
type TransferUseCase struct {
	tx    TxRunner
	repos repository.TxRepos
	now   func() time.Time
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(tx TxRunner, repos repository.TxRepos) *TransferUseCase {
	return &TransferUseCase{tx: tx, repos: repos, now: time.Now}
}

// Transfer mueve stock y registra la transferencia en la misma transacción.
func (uc *TransferUseCase) Transfer(ctx context.Context, scope entity.Scope, in TransferInput) (*entity.Transfer, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	q := stock.Quantities{Bottles: in.Bottles, Doses: in.Doses}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.DestinationID == scope.LocationID {
		return nil, domain.ErrSameLocation
	}

	var out *entity.Transfer
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		dst, err := r.Locations.GetByID(ctx, in.DestinationID)
		if err != nil {
			return err
		}
		if dst == nil || dst.TenantID != scope.TenantID {
			return domain.ErrNotFound
		}
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		ok, err := transferInTx(ctx, r.Balances, scope.LocationID, dst.ID, in.ProductID, q)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		out = &entity.Transfer{
			ID:            uuid.New().String(),
			TenantID:      scope.TenantID,
			SourceID:      scope.LocationID,
			DestinationID: dst.ID,
			ProductID:     in.ProductID,
			Bottles:       q.Bottles,
			Doses:         q.Doses,
			UserID:        scope.UserID,
			CreatedAt:     uc.now(),
		}
		return r.Transfers.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History transferencias donde participa el bar actual.
func (uc *TransferUseCase) History(ctx context.Context, scope entity.Scope, limit int) ([]*entity.Transfer, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.repos.Transfers.ListByLocation(ctx, scope.LocationID, limit)
}
