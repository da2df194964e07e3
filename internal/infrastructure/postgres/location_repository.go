package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo bares sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, tenant_id, name, is_central, created_at`

// Create persiste un bar. Un segundo central del mismo restaurante viola el índice parcial (ErrDuplicate).
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `INSERT INTO locations (` + locationColumns + `) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.TenantID, l.Name, l.IsCentral, l.CreatedAt); err != nil {
		return classify(err, "insert location")
	}
	return nil
}

// GetByID obtiene un bar; nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.one(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

// GetCentral devuelve el bar central del restaurante o nil.
func (r *LocationRepo) GetCentral(ctx context.Context, tenantID string) (*entity.Location, error) {
	return r.one(ctx, `SELECT `+locationColumns+` FROM locations WHERE tenant_id = $1 AND is_central`, tenantID)
}

// ListByTenant bares del restaurante por nombre.
func (r *LocationRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, classify(err, "list locations")
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.TenantID, &l.Name, &l.IsCentral, &l.CreatedAt); err != nil {
			return nil, classify(err, "scan location")
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) one(ctx context.Context, query string, arg string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, query, arg).Scan(&l.ID, &l.TenantID, &l.Name, &l.IsCentral, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err, "get location")
	}
	return &l, nil
}
