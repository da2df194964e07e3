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
)

// CountLine línea cruda de un formulario de conteo.
type CountLine struct {
	ProductID string
	Bottles   string
	Doses     string
}

// CountBatch resultado de un conteo por lote.
type CountBatch struct {
	Applied []*entity.Count
	Skipped int
	Errors  []LineError
}

// CountUseCase conteo físico: guarda el registro y reemplaza el saldo por lo contado.
// Es un camino de escritura propio, distinto de Withdraw/Add; entre conteo y movimientos gana el último.
type CountUseCase struct {
	tx    TxRunner
	repos repository.TxRepos
	log   *logger.Logger
	now   func() time.Time
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(tx TxRunner, repos repository.TxRepos, log *logger.Logger) *CountUseCase {
	return &CountUseCase{tx: tx, repos: repos, log: log, now: time.Now}
}

// Submit registra el conteo de un producto en el bar del alcance y sobrescribe el saldo.
// at cero usa la hora actual.
func (uc *CountUseCase) Submit(ctx context.Context, scope entity.Scope, productID string, q stock.Quantities, note string, at time.Time) (*entity.Count, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = uc.now()
	}

	var count *entity.Count
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if _, err := lockBalance(ctx, r.Balances, scope.LocationID, productID); err != nil {
			return err
		}
		count = &entity.Count{
			ID:         uuid.New().String(),
			LocationID: scope.LocationID,
			ProductID:  productID,
			Bottles:    q.Bottles,
			Doses:      q.Doses,
			UserID:     scope.UserID,
			Note:       note,
			CountedAt:  at,
		}
		if err := r.Counts.Create(ctx, count); err != nil {
			return err
		}
		return r.Balances.Overwrite(ctx, scope.LocationID, productID, q)
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// SubmitBatch procesa un formulario completo: líneas vacías se ignoran, números inválidos
// cuentan como cero y cada línea es su propia transacción.
func (uc *CountUseCase) SubmitBatch(ctx context.Context, scope entity.Scope, lines []CountLine, note string) (*CountBatch, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	out := &CountBatch{}
	at := uc.now()
	for _, line := range lines {
		q, blank := stock.ParseCountLine(line.Bottles, line.Doses)
		if blank {
			out.Skipped++
			continue
		}
		c, err := uc.Submit(ctx, scope, line.ProductID, q, note, at)
		if err != nil {
			logLineError(uc.log, err, "product_id", line.ProductID, "registrar conteo")
			out.Errors = append(out.Errors, LineError{Ref: line.ProductID, Err: err})
			continue
		}
		out.Applied = append(out.Applied, c)
	}
	return out, nil
}

// History últimos conteos del bar actual.
func (uc *CountUseCase) History(ctx context.Context, scope entity.Scope, limit int) ([]*entity.Count, error) {
	if err := scope.RequireLocation(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.repos.Counts.ListByLocation(ctx, scope.LocationID, limit)
}
