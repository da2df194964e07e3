package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldos por (bar, producto) sobre PostgreSQL (usable con pool o tx).
// Los deltas se expresan en SQL relativo al valor de la fila, nunca como read-modify-write.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Ensure crea la fila en cero si no existe.
func (r *BalanceRepo) Ensure(ctx context.Context, locationID, productID string) error {
	query := `
		INSERT INTO balances (location_id, product_id, bottles, doses, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (location_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, locationID, productID); err != nil {
		return classify(err, "ensure balance")
	}
	return nil
}

// Get obtiene el saldo sin lock. Ausente = cero.
func (r *BalanceRepo) Get(ctx context.Context, locationID, productID string) (*entity.Balance, error) {
	return r.get(ctx, locationID, productID, "")
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Ausente = cero.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, locationID, productID string) (*entity.Balance, error) {
	return r.get(ctx, locationID, productID, " FOR UPDATE")
}

func (r *BalanceRepo) get(ctx context.Context, locationID, productID, suffix string) (*entity.Balance, error) {
	query := `
		SELECT location_id, product_id, bottles, doses, updated_at
		FROM balances WHERE location_id = $1 AND product_id = $2` + suffix
	var b entity.Balance
	err := r.q.QueryRow(ctx, query, locationID, productID).Scan(
		&b.LocationID, &b.ProductID, &b.Bottles, &b.Doses, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{LocationID: locationID, ProductID: productID, Bottles: decimal.Zero, Doses: decimal.Zero}, nil
		}
		return nil, classify(err, "get balance")
	}
	return &b, nil
}

// Increment suma q al saldo, creando la fila si falta.
func (r *BalanceRepo) Increment(ctx context.Context, locationID, productID string, q stock.Quantities) error {
	query := `
		INSERT INTO balances (location_id, product_id, bottles, doses, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (location_id, product_id) DO UPDATE
		SET bottles = balances.bottles + EXCLUDED.bottles,
		    doses = balances.doses + EXCLUDED.doses,
		    updated_at = now()`
	if _, err := r.q.Exec(ctx, query, locationID, productID, q.Bottles, q.Doses); err != nil {
		return classify(err, "increment balance")
	}
	return nil
}

// Decrement resta q solo si ambos campos alcanzan. false sin cambios si no alcanza o no hay fila.
func (r *BalanceRepo) Decrement(ctx context.Context, locationID, productID string, q stock.Quantities) (bool, error) {
	query := `
		UPDATE balances
		SET bottles = bottles - $3, doses = doses - $4, updated_at = now()
		WHERE location_id = $1 AND product_id = $2 AND bottles >= $3 AND doses >= $4`
	tag, err := r.q.Exec(ctx, query, locationID, productID, q.Bottles, q.Doses)
	if err != nil {
		return false, classify(err, "decrement balance")
	}
	return tag.RowsAffected() == 1, nil
}

// Overwrite reemplaza el saldo por el valor contado.
func (r *BalanceRepo) Overwrite(ctx context.Context, locationID, productID string, q stock.Quantities) error {
	query := `
		INSERT INTO balances (location_id, product_id, bottles, doses, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (location_id, product_id) DO UPDATE
		SET bottles = EXCLUDED.bottles, doses = EXCLUDED.doses, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, locationID, productID, q.Bottles, q.Doses); err != nil {
		return classify(err, "overwrite balance")
	}
	return nil
}

const ensurePairs = `
	INSERT INTO balances (location_id, product_id, bottles, doses, updated_at)
	SELECT l.id, p.id, 0, 0, now()
	FROM locations l CROSS JOIN products p
	WHERE p.active`

// EnsureForProduct crea las filas faltantes del producto (si está activo) en todos los bares.
func (r *BalanceRepo) EnsureForProduct(ctx context.Context, productID string) (int64, error) {
	tag, err := r.q.Exec(ctx, ensurePairs+` AND p.id = $1 ON CONFLICT (location_id, product_id) DO NOTHING`, productID)
	if err != nil {
		return 0, classify(err, "ensure balances for product")
	}
	return tag.RowsAffected(), nil
}

// EnsureForLocation crea las filas faltantes del bar para todos los productos activos.
func (r *BalanceRepo) EnsureForLocation(ctx context.Context, locationID string) (int64, error) {
	tag, err := r.q.Exec(ctx, ensurePairs+` AND l.id = $1 ON CONFLICT (location_id, product_id) DO NOTHING`, locationID)
	if err != nil {
		return 0, classify(err, "ensure balances for location")
	}
	return tag.RowsAffected(), nil
}

// EnsureAll crea toda fila faltante.
func (r *BalanceRepo) EnsureAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, ensurePairs+` ON CONFLICT (location_id, product_id) DO NOTHING`)
	if err != nil {
		return 0, classify(err, "ensure all balances")
	}
	return tag.RowsAffected(), nil
}

// CountMissing cuenta pares (bar, producto activo) sin fila de saldo.
func (r *BalanceRepo) CountMissing(ctx context.Context) (int64, error) {
	query := `
		SELECT count(*)
		FROM locations l CROSS JOIN products p
		WHERE p.active AND NOT EXISTS (
			SELECT 1 FROM balances b WHERE b.location_id = l.id AND b.product_id = p.id
		)`
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, classify(err, "count missing balances")
	}
	return n, nil
}

// ListByLocation saldos del bar con datos del producto, ordenados por nombre.
func (r *BalanceRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.BalanceView, error) {
	query := `
		SELECT b.location_id, b.product_id, b.bottles, b.doses, b.updated_at, p.code, p.name, p.category
		FROM balances b JOIN products p ON p.id = b.product_id
		WHERE b.location_id = $1 AND p.active
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, classify(err, "list balances")
	}
	defer rows.Close()
	var list []*entity.BalanceView
	for rows.Next() {
		var v entity.BalanceView
		if err := rows.Scan(&v.LocationID, &v.ProductID, &v.Bottles, &v.Doses, &v.UpdatedAt,
			&v.ProductCode, &v.ProductName, &v.Category); err != nil {
			return nil, classify(err, "scan balance")
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
