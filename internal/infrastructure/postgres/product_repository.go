package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de bebidas sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, unit_measure, category, bottle_volume_ml, dose_size_ml,
	doses_per_bottle, active, created_at, updated_at`

// Create persiste una bebida.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.UnitMeasure, p.Category, p.BottleVolumeML, p.DoseSizeML,
		p.DosesPerBottle, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return classify(err, "insert product")
	}
	return nil
}

// GetByID obtiene una bebida por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.one(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene una bebida por código normalizado.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.one(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// Update actualiza los datos de catálogo (el código no cambia).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit_measure = $3, category = $4, bottle_volume_ml = $5, dose_size_ml = $6,
		    doses_per_bottle = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.UnitMeasure, p.Category, p.BottleVolumeML, p.DoseSizeML,
		p.DosesPerBottle, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return classify(err, "update product")
	}
	return nil
}

// List catálogo por nombre.
func (r *ProductRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ($1 = false OR active) ORDER BY name`
	rows, err := r.q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, classify(err, "list products")
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, classify(err, "scan product")
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) one(ctx context.Context, query, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err, "get product")
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.UnitMeasure, &p.Category, &p.BottleVolumeML,
		&p.DoseSizeML, &p.DosesPerBottle, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
