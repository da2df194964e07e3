package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// Provisioner garantiza una fila de saldo en cero por cada par (bar, producto activo).
// Todas las operaciones son idempotentes (insert-if-absent).
type Provisioner struct {
	balances repository.BalanceRepository
}

// NewProvisioner construye el aprovisionador.
func NewProvisioner(balances repository.BalanceRepository) *Provisioner {
	return &Provisioner{balances: balances}
}

// ForProduct crea las filas del producto en todos los bares. Productos inactivos no se aprovisionan.
func (p *Provisioner) ForProduct(ctx context.Context, product *entity.Product) (int64, error) {
	if product == nil || !product.Active {
		return 0, nil
	}
	n, err := p.balances.EnsureForProduct(ctx, product.ID)
	if err != nil {
		return 0, fmt.Errorf("provision product %s: %w", product.ID, err)
	}
	return n, nil
}

// ForLocation crea las filas del bar para todos los productos activos.
func (p *Provisioner) ForLocation(ctx context.Context, location *entity.Location) (int64, error) {
	if location == nil {
		return 0, nil
	}
	n, err := p.balances.EnsureForLocation(ctx, location.ID)
	if err != nil {
		return 0, fmt.Errorf("provision location %s: %w", location.ID, err)
	}
	return n, nil
}

// Missing cuenta los pares sin fila (modo dry-run).
func (p *Provisioner) Missing(ctx context.Context) (int64, error) {
	return p.balances.CountMissing(ctx)
}

// All crea todas las filas faltantes.
func (p *Provisioner) All(ctx context.Context) (int64, error) {
	return p.balances.EnsureAll(ctx)
}

// Hooks corre el aprovisionamiento después del commit de la creación, en segundo plano.
// Una falla se registra y no afecta al producto o bar ya creado.
type Hooks struct {
	p       *Provisioner
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewHooks construye los hooks de aprovisionamiento.
func NewHooks(p *Provisioner, log *logger.Logger) *Hooks {
	return &Hooks{p: p, log: log, timeout: 30 * time.Second}
}

// ProductCreated se invoca tras confirmar la creación (o activación) de un producto.
func (h *Hooks) ProductCreated(product *entity.Product) {
	if product == nil || !product.Active {
		return
	}
	h.run("product_id", product.ID, func(ctx context.Context) (int64, error) {
		return h.p.ForProduct(ctx, product)
	})
}

// LocationCreated se invoca tras confirmar la creación de un bar.
func (h *Hooks) LocationCreated(location *entity.Location) {
	if location == nil {
		return
	}
	h.run("location_id", location.ID, func(ctx context.Context) (int64, error) {
		return h.p.ForLocation(ctx, location)
	})
}

// Wait bloquea hasta que terminen los hooks en curso (apagado y tests).
func (h *Hooks) Wait() {
	h.wg.Wait()
}

func (h *Hooks) run(key, id string, fn func(ctx context.Context) (int64, error)) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		n, err := fn(ctx)
		if err != nil {
			h.log.Error().Err(err).Str(key, id).Msg("aprovisionamiento de saldos")
			return
		}
		h.log.Debug().Str(key, id).Int64("created", n).Msg("saldos aprovisionados")
	}()
}
