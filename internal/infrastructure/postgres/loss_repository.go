package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.LossRepository = (*LossRepo)(nil)

// LossRepo pérdidas con foto antes/después y marca de baja.
type LossRepo struct {
	q Querier
}

// NewLossRepository construye el adaptador.
func NewLossRepository(q Querier) *LossRepo {
	return &LossRepo{q: q}
}

const lossColumns = `l.id, l.tenant_id, l.location_id, l.product_id, l.bottles, l.doses, l.reason, l.note,
	l.user_id, l.registered_at, l.before_bottles, l.before_doses, l.after_bottles, l.after_doses,
	l.written_off, l.written_off_at, l.written_off_by, l.write_off_note`

// Create inserta la pérdida.
func (r *LossRepo) Create(ctx context.Context, l *entity.Loss) error {
	query := `
		INSERT INTO losses (id, tenant_id, location_id, product_id, bottles, doses, reason, note,
		                    user_id, registered_at, before_bottles, before_doses, after_bottles, after_doses,
		                    written_off, written_off_at, written_off_by, write_off_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.TenantID, l.LocationID, l.ProductID, l.Bottles, l.Doses, string(l.Reason), l.Note,
		l.UserID, l.RegisteredAt, l.Before.Bottles, l.Before.Doses, l.After.Bottles, l.After.Doses,
		l.WrittenOff, l.WrittenOffAt, l.WrittenOffBy, l.WriteOffNote,
	)
	if err != nil {
		return classify(err, "insert loss")
	}
	return nil
}

// GetByID obtiene una pérdida; nil si no existe.
func (r *LossRepo) GetByID(ctx context.Context, id string) (*entity.Loss, error) {
	return r.one(ctx, `SELECT `+lossColumns+` FROM losses l WHERE l.id = $1`, id)
}

// GetForUpdate obtiene y bloquea la fila de la pérdida.
func (r *LossRepo) GetForUpdate(ctx context.Context, id string) (*entity.Loss, error) {
	return r.one(ctx, `SELECT `+lossColumns+` FROM losses l WHERE l.id = $1 FOR UPDATE`, id)
}

// Delete borra el registro (la reversión del saldo la hace el caso de uso).
func (r *LossRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM losses WHERE id = $1`, id); err != nil {
		return classify(err, "delete loss")
	}
	return nil
}

// UpdateWriteOff persiste la marca de baja.
func (r *LossRepo) UpdateWriteOff(ctx context.Context, l *entity.Loss) error {
	query := `
		UPDATE losses SET written_off = $2, written_off_at = $3, written_off_by = $4, write_off_note = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, l.ID, l.WrittenOff, l.WrittenOffAt, l.WrittenOffBy, l.WriteOffNote); err != nil {
		return classify(err, "update loss write-off")
	}
	return nil
}

// List pérdidas del restaurante en [From, To), con filtros opcionales de bar, motivo, pendientes y texto.
func (r *LossRepo) List(ctx context.Context, f repository.LossFilter) ([]*entity.Loss, error) {
	query := `
		SELECT ` + lossColumns + `
		FROM losses l
		JOIN products p ON p.id = l.product_id
		WHERE l.tenant_id = $1
		  AND ($2 = '' OR l.location_id = $2)
		  AND l.registered_at >= $3 AND l.registered_at < $4
		  AND ($5 = '' OR p.name ILIKE '%' || $5 || '%' OR p.code ILIKE '%' || $5 || '%'
		       OR l.note ILIKE '%' || $5 || '%')
		  AND ($6 = '' OR l.reason = $6)
		  AND (NOT $7 OR NOT l.written_off)
		ORDER BY l.registered_at DESC`
	rows, err := r.q.Query(ctx, query, f.TenantID, f.LocationID, f.From, f.To, f.Search, string(f.Reason), f.PendingOnly)
	if err != nil {
		return nil, classify(err, "list losses")
	}
	defer rows.Close()
	var list []*entity.Loss
	for rows.Next() {
		l, err := scanLoss(rows)
		if err != nil {
			return nil, classify(err, "scan loss")
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LossRepo) one(ctx context.Context, query, id string) (*entity.Loss, error) {
	l, err := scanLoss(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err, "get loss")
	}
	return l, nil
}

func scanLoss(row pgx.Row) (*entity.Loss, error) {
	var l entity.Loss
	var reason string
	err := row.Scan(&l.ID, &l.TenantID, &l.LocationID, &l.ProductID, &l.Bottles, &l.Doses, &reason, &l.Note,
		&l.UserID, &l.RegisteredAt, &l.Before.Bottles, &l.Before.Doses, &l.After.Bottles, &l.After.Doses,
		&l.WrittenOff, &l.WrittenOffAt, &l.WrittenOffBy, &l.WriteOffNote)
	if err != nil {
		return nil, err
	}
	l.Reason = entity.LossReason(reason)
	return &l, nil
}
