package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo requisiciones de bares al central.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador.
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, tenant_id, location_id, product_id, quantity, status, requested_by,
	requested_at, note, decided_by, decided_at, denial_reason`

// Create inserta la requisición en PENDING.
func (r *RequisitionRepo) Create(ctx context.Context, req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.TenantID, req.LocationID, req.ProductID, req.Quantity, string(req.Status), req.RequestedBy,
		req.RequestedAt, req.Note, req.DecidedBy, req.DecidedAt, req.DenialReason,
	)
	if err != nil {
		return classify(err, "insert requisition")
	}
	return nil
}

// GetByID obtiene una requisición; nil si no existe.
func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.one(ctx, `SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1`, id)
}

// GetForUpdate obtiene y bloquea la requisición.
func (r *RequisitionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.one(ctx, `SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1 FOR UPDATE`, id)
}

// UpdateDecision persiste la decisión. Solo transiciona desde PENDING.
func (r *RequisitionRepo) UpdateDecision(ctx context.Context, req *entity.Requisition) error {
	query := `
		UPDATE requisitions SET status = $2, decided_by = $3, decided_at = $4, denial_reason = $5
		WHERE id = $1 AND status = 'PENDING'`
	tag, err := r.q.Exec(ctx, query, req.ID, string(req.Status), req.DecidedBy, req.DecidedAt, req.DenialReason)
	if err != nil {
		return classify(err, "update requisition decision")
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// ListPendingByTenant requisiciones pendientes del restaurante, más antiguas primero.
func (r *RequisitionRepo) ListPendingByTenant(ctx context.Context, tenantID string) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + `
		FROM requisitions WHERE tenant_id = $1 AND status = 'PENDING' ORDER BY requested_at`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, classify(err, "list pending requisitions")
	}
	return scanRequisitions(rows)
}

// ListHistory requisiciones del bar, más recientes primero, con rango, estados y producto opcionales.
// Limit 0 = sin límite.
func (r *RequisitionRepo) ListHistory(ctx context.Context, f repository.RequisitionHistoryFilter) ([]*entity.Requisition, error) {
	var limit *int
	if f.Limit > 0 {
		limit = &f.Limit
	}
	query := `SELECT ` + requisitionColumns + `
		FROM requisitions
		WHERE location_id = $1
		  AND ($2::timestamptz IS NULL OR requested_at >= $2)
		  AND ($3::timestamptz IS NULL OR requested_at < $3)
		  AND ($5::text[] IS NULL OR status = ANY($5))
		  AND ($6 = '' OR EXISTS (
		        SELECT 1 FROM products p WHERE p.id = requisitions.product_id AND p.name ILIKE '%' || $6 || '%'))
		ORDER BY requested_at DESC LIMIT $4::bigint`
	var statuses []string
	for _, st := range f.Statuses {
		statuses = append(statuses, string(st))
	}
	rows, err := r.q.Query(ctx, query, f.LocationID, f.From, f.To, limit, statuses, f.ProductSearch)
	if err != nil {
		return nil, classify(err, "list requisition history")
	}
	return scanRequisitions(rows)
}

func (r *RequisitionRepo) one(ctx context.Context, query, id string) (*entity.Requisition, error) {
	req, err := scanRequisition(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err, "get requisition")
	}
	return req, nil
}

func scanRequisitions(rows pgx.Rows) ([]*entity.Requisition, error) {
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, classify(err, "scan requisition")
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanRequisition(row pgx.Row) (*entity.Requisition, error) {
	var req entity.Requisition
	var status string
	err := row.Scan(&req.ID, &req.TenantID, &req.LocationID, &req.ProductID, &req.Quantity, &status,
		&req.RequestedBy, &req.RequestedAt, &req.Note, &req.DecidedBy, &req.DecidedAt, &req.DenialReason)
	if err != nil {
		return nil, err
	}
	req.Status = entity.RequisitionStatus(status)
	return &req, nil
}
