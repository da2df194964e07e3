package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout <= 0 deja el valor del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, fija lock_timeout local, ejecuta fn con repos atados a la tx
// y hace Commit o Rollback. Un lock no obtenido a tiempo llega como domain.ErrLockTimeout.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		ms := fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, ms); err != nil {
			return classify(err, "set lock_timeout")
		}
	}

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(err, "commit transaction")
	}
	return nil
}

// NewRepos arma el conjunto de repositorios sobre q (pool para lecturas, tx dentro de Run).
func NewRepos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Balances:     NewBalanceRepository(q),
		Locations:    NewLocationRepository(q),
		Products:     NewProductRepository(q),
		Foods:        NewFoodRepository(q),
		Receipts:     NewReceiptRepository(q),
		Transfers:    NewTransferRepository(q),
		Counts:       NewCountRepository(q),
		Losses:       NewLossRepository(q),
		Requisitions: NewRequisitionRepository(q),
		Events:       NewEventRepository(q),
	}
}
