package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.FoodRepository = (*FoodRepo)(nil)

// FoodRepo catálogo de alimentos.
type FoodRepo struct {
	q Querier
}

// NewFoodRepository construye el adaptador.
func NewFoodRepository(q Querier) *FoodRepo {
	return &FoodRepo{q: q}
}

// Create persiste un alimento.
func (r *FoodRepo) Create(ctx context.Context, f *entity.Food) error {
	query := `INSERT INTO foods (id, code, name, unit, active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, f.ID, f.Code, f.Name, f.Unit, f.Active, f.CreatedAt); err != nil {
		return classify(err, "insert food")
	}
	return nil
}

// GetByID obtiene un alimento; nil si no existe.
func (r *FoodRepo) GetByID(ctx context.Context, id string) (*entity.Food, error) {
	var f entity.Food
	err := r.q.QueryRow(ctx, `SELECT id, code, name, unit, active, created_at FROM foods WHERE id = $1`, id).
		Scan(&f.ID, &f.Code, &f.Name, &f.Unit, &f.Active, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err, "get food")
	}
	return &f, nil
}

// List alimentos por nombre.
func (r *FoodRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Food, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, code, name, unit, active, created_at FROM foods WHERE ($1 = false OR active) ORDER BY name`, activeOnly)
	if err != nil {
		return nil, classify(err, "list foods")
	}
	defer rows.Close()
	var list []*entity.Food
	for rows.Next() {
		var f entity.Food
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Unit, &f.Active, &f.CreatedAt); err != nil {
			return nil, classify(err, "scan food")
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
