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

// LossInput datos de una pérdida a registrar en el bar del alcance.
type LossInput struct {
	ProductID string
	Bottles   decimal.Decimal
	Doses     decimal.Decimal
	Reason    string
	Note      string
}

// LossDay pérdidas de un día con su total.
type LossDay struct {
	Day    time.Time
	Losses []*entity.Loss
	Total  stock.Quantities
}

// LossUseCase registro, reversión en el día y marca de baja de pérdidas.
type LossUseCase struct {
	tx    TxRunner
	repos repository.TxRepos
	tz    *time.Location
	now   func() time.Time
}

// NewLossUseCase construye el caso de uso. tz define el día calendario de la reversión.
func NewLossUseCase(tx TxRunner, repos repository.TxRepos, tz *time.Location) *LossUseCase {
	if tz == nil {
		tz = time.UTC
	}
	return &LossUseCase{tx: tx, repos: repos, tz: tz, now: time.Now}
}

// Register debita la pérdida y guarda las fotos antes/después. Sin stock suficiente devuelve
// ErrInsufficientStock y no escribe nada.
func (uc *LossUseCase) Register(ctx context.Context, scope entity.Scope, in LossInput) (*entity.Loss, error) {
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

	var loss *entity.Loss
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		cur, err := lockBalance(ctx, r.Balances, scope.LocationID, in.ProductID)
		if err != nil {
			return err
		}
		before := cur.Quantities()
		ok, err := withdrawLocked(ctx, r.Balances, cur, scope.LocationID, in.ProductID, q)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		after, err := r.Balances.Get(ctx, scope.LocationID, in.ProductID)
		if err != nil {
			return err
		}
		loss = &entity.Loss{
			ID:           uuid.New().String(),
			TenantID:     scope.TenantID,
			LocationID:   scope.LocationID,
			ProductID:    in.ProductID,
			Bottles:      q.Bottles,
			Doses:        q.Doses,
			Reason:       entity.ParseLossReason(in.Reason),
			Note:         in.Note,
			UserID:       scope.UserID,
			RegisteredAt: uc.now(),
			Before:       before,
			After:        after.Quantities(),
		}
		return r.Losses.Create(ctx, loss)
	})
	if err != nil {
		return nil, err
	}
	return loss, nil
}

// Reverse devuelve la cantidad al saldo y borra el registro. Solo el mismo día calendario
// y si la pérdida no fue dada de baja.
func (uc *LossUseCase) Reverse(ctx context.Context, scope entity.Scope, lossID string) error {
	if err := scope.RequireLocation(); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.TxRepos) error {
		loss, err := r.Losses.GetForUpdate(ctx, lossID)
		if err != nil {
			return err
		}
		if loss == nil || loss.TenantID != scope.TenantID || loss.LocationID != scope.LocationID {
			return domain.ErrNotFound
		}
		if loss.WrittenOff {
			return domain.ErrConflict
		}
		if !loss.SameDay(uc.now(), uc.tz) {
			return domain.ErrReversalWindowClosed
		}
		if err := addInTx(ctx, r.Balances, loss.LocationID, loss.ProductID, loss.Quantities()); err != nil {
			return err
		}
		return r.Losses.Delete(ctx, loss.ID)
	})
}

// MarkWrittenOff marca la pérdida como dada de baja (quién, cuándo, observación).
func (uc *LossUseCase) MarkWrittenOff(ctx context.Context, scope entity.Scope, lossID, note string) (*entity.Loss, error) {
	return uc.updateWriteOff(ctx, scope, lossID, func(l *entity.Loss) error {
		return l.MarkWrittenOff(scope.UserID, note, uc.now())
	})
}

// UnmarkWrittenOff quita la marca de baja.
func (uc *LossUseCase) UnmarkWrittenOff(ctx context.Context, scope entity.Scope, lossID string) (*entity.Loss, error) {
	return uc.updateWriteOff(ctx, scope, lossID, func(l *entity.Loss) error {
		return l.UnmarkWrittenOff()
	})
}

func (uc *LossUseCase) updateWriteOff(ctx context.Context, scope entity.Scope, lossID string, apply func(l *entity.Loss) error) (*entity.Loss, error) {
	if err := scope.RequireTenant(); err != nil {
		return nil, err
	}
	var out *entity.Loss
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		loss, err := r.Losses.GetForUpdate(ctx, lossID)
		if err != nil {
			return err
		}
		if loss == nil || loss.TenantID != scope.TenantID {
			return domain.ErrNotFound
		}
		if err := apply(loss); err != nil {
			return err
		}
		if err := r.Losses.UpdateWriteOff(ctx, loss); err != nil {
			return err
		}
		out = loss
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListDay pérdidas del bar actual en el día calendario de day.
func (uc *LossUseCase) ListDay(ctx context.Context, scope entity.Scope, day time.Time) (*LossDay, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	from := startOfDay(day, uc.tz)
	list, err := uc.repos.Losses.List(ctx, repository.LossFilter{
		TenantID:   scope.TenantID,
		LocationID: scope.LocationID,
		From:       from,
		To:         from.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}
	out := &LossDay{Day: from, Losses: list, Total: stock.Zero()}
	for _, l := range list {
		out.Total = out.Total.Plus(l.Quantities())
	}
	return out, nil
}

// Today día actual en la zona configurada.
func (uc *LossUseCase) Today() time.Time {
	return startOfDay(uc.now(), uc.tz)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
