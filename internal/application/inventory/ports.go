package inventory

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.TxRepos) error) error
}

// LineError error de una línea de un lote; no aborta las demás.
type LineError struct {
	Ref string
	Err error
}

func (e LineError) Error() string {
	return e.Ref + ": " + e.Err.Error()
}

func (e LineError) Unwrap() error { return e.Err }
