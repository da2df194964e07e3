package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// Ledger únicas operaciones que mueven saldos por delta: Withdraw, Add y Transfer.
// Cada llamada pública es una transacción; los flujos compuestos usan las variantes *InTx.
type Ledger struct {
	tx TxRunner
}

// NewLedger construye el libro de existencias.
func NewLedger(tx TxRunner) *Ledger {
	return &Ledger{tx: tx}
}

// Withdraw debita botellas y/o dosis si ambos campos alcanzan. false sin mutar nada si no.
func (l *Ledger) Withdraw(ctx context.Context, locationID, productID string, q stock.Quantities) (bool, error) {
	if err := q.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		ok, err = withdrawInTx(ctx, r.Balances, locationID, productID, q)
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Add acredita botellas y/o dosis. Sin tope superior.
func (l *Ledger) Add(ctx context.Context, locationID, productID string, q stock.Quantities) error {
	if err := q.Validate(); err != nil {
		return err
	}
	return l.tx.Run(ctx, func(r repository.TxRepos) error {
		return addInTx(ctx, r.Balances, locationID, productID, q)
	})
}

// Transfer mueve del origen al destino en una sola transacción. Solo se verifica el origen.
func (l *Ledger) Transfer(ctx context.Context, sourceID, destinationID, productID string, q stock.Quantities) (bool, error) {
	if err := q.Validate(); err != nil {
		return false, err
	}
	var ok bool
	err := l.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		ok, err = transferInTx(ctx, r.Balances, sourceID, destinationID, productID, q)
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// lockBalance crea la fila si falta y la bloquea hasta el fin de la transacción.
func lockBalance(ctx context.Context, b repository.BalanceRepository, locationID, productID string) (*entity.Balance, error) {
	if err := b.Ensure(ctx, locationID, productID); err != nil {
		return nil, fmt.Errorf("ensure balance: %w", err)
	}
	cur, err := b.GetForUpdate(ctx, locationID, productID)
	if err != nil {
		return nil, fmt.Errorf("lock balance: %w", err)
	}
	return cur, nil
}

// withdrawLocked asume la fila ya bloqueada con valor cur.
func withdrawLocked(ctx context.Context, b repository.BalanceRepository, cur *entity.Balance, locationID, productID string, q stock.Quantities) (bool, error) {
	if !cur.Quantities().Covers(q) {
		return false, nil
	}
	if q.IsZero() {
		return true, nil
	}
	ok, err := b.Decrement(ctx, locationID, productID, q)
	if err != nil {
		return false, fmt.Errorf("decrement balance: %w", err)
	}
	return ok, nil
}

func withdrawInTx(ctx context.Context, b repository.BalanceRepository, locationID, productID string, q stock.Quantities) (bool, error) {
	cur, err := lockBalance(ctx, b, locationID, productID)
	if err != nil {
		return false, err
	}
	return withdrawLocked(ctx, b, cur, locationID, productID, q)
}

func addInTx(ctx context.Context, b repository.BalanceRepository, locationID, productID string, q stock.Quantities) error {
	if _, err := lockBalance(ctx, b, locationID, productID); err != nil {
		return err
	}
	if q.IsZero() {
		return nil
	}
	if err := b.Increment(ctx, locationID, productID, q); err != nil {
		return fmt.Errorf("increment balance: %w", err)
	}
	return nil
}

// transferInTx bloquea ambas filas en orden canónico (id de bar ascendente), sin importar
// cuál es origen y cuál destino, y luego debita y acredita.
func transferInTx(ctx context.Context, b repository.BalanceRepository, sourceID, destinationID, productID string, q stock.Quantities) (bool, error) {
	if sourceID == destinationID {
		return false, domain.ErrSameLocation
	}
	first, second := sourceID, destinationID
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*entity.Balance, 2)
	for _, locID := range []string{first, second} {
		cur, err := lockBalance(ctx, b, locID, productID)
		if err != nil {
			return false, err
		}
		locked[locID] = cur
	}

	ok, err := withdrawLocked(ctx, b, locked[sourceID], sourceID, productID, q)
	if err != nil || !ok {
		return false, err
	}
	if q.IsZero() {
		return true, nil
	}
	if err := b.Increment(ctx, destinationID, productID, q); err != nil {
		return false, fmt.Errorf("increment balance: %w", err)
	}
	return true, nil
}
