package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var (
	_ repository.ReceiptRepository  = (*ReceiptRepo)(nil)
	_ repository.TransferRepository = (*TransferRepo)(nil)
	_ repository.CountRepository    = (*CountRepo)(nil)
)

// ReceiptRepo registros de entrada (append-only).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create inserta la entrada.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, tenant_id, location_id, product_id, quantity, user_id, note, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.TenantID, rc.LocationID, rc.ProductID, rc.Quantity, rc.UserID, rc.Note, rc.ReceivedAt,
	)
	if err != nil {
		return classify(err, "insert receipt")
	}
	return nil
}

// ListByLocation entradas del bar, más recientes primero.
func (r *ReceiptRepo) ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Receipt, error) {
	query := `
		SELECT id, tenant_id, location_id, product_id, quantity, user_id, note, received_at
		FROM receipts WHERE location_id = $1
		ORDER BY received_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, classify(err, "list receipts")
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rc entity.Receipt
		if err := rows.Scan(&rc.ID, &rc.TenantID, &rc.LocationID, &rc.ProductID, &rc.Quantity,
			&rc.UserID, &rc.Note, &rc.ReceivedAt); err != nil {
			return nil, classify(err, "scan receipt")
		}
		list = append(list, &rc)
	}
	return list, rows.Err()
}

// TransferRepo registros de transferencia.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserta la transferencia.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, tenant_id, source_id, destination_id, product_id, bottles, doses,
		                       user_id, requisition_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TenantID, t.SourceID, t.DestinationID, t.ProductID, t.Bottles, t.Doses,
		t.UserID, t.RequisitionID, t.CreatedAt,
	)
	if err != nil {
		return classify(err, "insert transfer")
	}
	return nil
}

// ListByLocation transferencias con el bar como origen o destino.
func (r *TransferRepo) ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, tenant_id, source_id, destination_id, product_id, bottles, doses,
		       user_id, requisition_id, created_at
		FROM transfers
		WHERE source_id = $1 OR destination_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, classify(err, "list transfers")
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.TenantID, &t.SourceID, &t.DestinationID, &t.ProductID,
			&t.Bottles, &t.Doses, &t.UserID, &t.RequisitionID, &t.CreatedAt); err != nil {
			return nil, classify(err, "scan transfer")
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountRepo registros de conteo físico.
type CountRepo struct {
	q Querier
}

// NewCountRepository construye el adaptador.
func NewCountRepository(q Querier) *CountRepo {
	return &CountRepo{q: q}
}

const countColumns = `id, location_id, product_id, bottles, doses, user_id, note, counted_at`

// Create inserta el conteo.
func (r *CountRepo) Create(ctx context.Context, c *entity.Count) error {
	query := `INSERT INTO counts (` + countColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.LocationID, c.ProductID, c.Bottles, c.Doses, c.UserID, c.Note, c.CountedAt,
	)
	if err != nil {
		return classify(err, "insert count")
	}
	return nil
}

// ListByLocation conteos del bar, más recientes primero.
func (r *CountRepo) ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Count, error) {
	query := `SELECT ` + countColumns + ` FROM counts WHERE location_id = $1 ORDER BY counted_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, classify(err, "list counts")
	}
	return scanCounts(rows)
}

// ListLatestPairs los dos conteos más recientes por (bar, producto) del restaurante.
func (r *CountRepo) ListLatestPairs(ctx context.Context, tenantID string) ([]*entity.Count, error) {
	query := `
		SELECT ` + countColumns + ` FROM (
			SELECT c.*, row_number() OVER (
				PARTITION BY c.location_id, c.product_id ORDER BY c.counted_at DESC, c.id DESC
			) AS rn
			FROM counts c
			JOIN locations l ON l.id = c.location_id
			WHERE l.tenant_id = $1
		) ranked
		WHERE rn <= 2
		ORDER BY location_id, product_id, counted_at DESC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, classify(err, "list latest counts")
	}
	return scanCounts(rows)
}

// ListLatest último conteo por (bar, producto) del restaurante, opcionalmente dentro de [from, to).
func (r *CountRepo) ListLatest(ctx context.Context, tenantID string, from, to *time.Time) ([]*entity.Count, error) {
	query := `
		SELECT DISTINCT ON (c.location_id, c.product_id)
		       c.id, c.location_id, c.product_id, c.bottles, c.doses, c.user_id, c.note, c.counted_at
		FROM counts c
		JOIN locations l ON l.id = c.location_id
		WHERE l.tenant_id = $1
		  AND ($2::timestamptz IS NULL OR c.counted_at >= $2)
		  AND ($3::timestamptz IS NULL OR c.counted_at < $3)
		ORDER BY c.location_id, c.product_id, c.counted_at DESC, c.id DESC`
	rows, err := r.q.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, classify(err, "list current counts")
	}
	return scanCounts(rows)
}

// ListByLocationBetween conteos del bar en [from, to), más recientes primero.
func (r *CountRepo) ListByLocationBetween(ctx context.Context, locationID string, from, to time.Time) ([]*entity.Count, error) {
	query := `SELECT ` + countColumns + ` FROM counts
		WHERE location_id = $1 AND counted_at >= $2 AND counted_at < $3
		ORDER BY counted_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, locationID, from, to)
	if err != nil {
		return nil, classify(err, "list counts between")
	}
	return scanCounts(rows)
}

func scanCounts(rows pgx.Rows) ([]*entity.Count, error) {
	defer rows.Close()
	var list []*entity.Count
	for rows.Next() {
		var c entity.Count
		if err := rows.Scan(&c.ID, &c.LocationID, &c.ProductID, &c.Bottles, &c.Doses,
			&c.UserID, &c.Note, &c.CountedAt); err != nil {
			return nil, classify(err, "scan count")
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
