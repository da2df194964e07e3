package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo eventos con sus bebidas y alimentos. Las escrituras de cabecera e ítems
// deben ir en la misma tx (TxRunner).
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador.
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

const eventColumns = `e.id, e.name, e.tenant_id, e.responsible_id, e.guests, e.hours, e.event_date, e.status,
	e.created_at, e.finalized_at, e.finalized_by, e.stock_written_off, e.written_off_by, e.written_off_at,
	e.write_off_note`

// Create inserta cabecera e ítems.
func (r *EventRepo) Create(ctx context.Context, e *entity.Event) error {
	query := `
		INSERT INTO events (id, name, tenant_id, responsible_id, guests, hours, event_date, status,
		                    created_at, finalized_at, finalized_by, stock_written_off, written_off_by,
		                    written_off_at, write_off_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.TenantID, e.ResponsibleID, e.Guests, e.Hours, e.EventDate, string(e.Status),
		e.CreatedAt, e.FinalizedAt, e.FinalizedBy, e.StockWrittenOff, e.WrittenOffBy, e.WrittenOffAt, e.WriteOffNote,
	)
	if err != nil {
		return classify(err, "insert event")
	}
	return r.insertItems(ctx, e)
}

// GetByID carga el evento con sus ítems.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	return r.load(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id)
}

// GetForUpdate carga el evento bloqueando su fila.
func (r *EventRepo) GetForUpdate(ctx context.Context, id string) (*entity.Event, error) {
	return r.load(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1 FOR UPDATE`, id)
}

// Update persiste la cabecera y reemplaza los ítems.
func (r *EventRepo) Update(ctx context.Context, e *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, tenant_id = $3, responsible_id = $4, guests = $5, hours = $6, event_date = $7,
		    status = $8, finalized_at = $9, finalized_by = $10, stock_written_off = $11,
		    written_off_by = $12, written_off_at = $13, write_off_note = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.TenantID, e.ResponsibleID, e.Guests, e.Hours, e.EventDate, string(e.Status),
		e.FinalizedAt, e.FinalizedBy, e.StockWrittenOff, e.WrittenOffBy, e.WrittenOffAt, e.WriteOffNote,
	)
	if err != nil {
		return classify(err, "update event")
	}
	for _, table := range []string{"event_products", "event_foods"} {
		if _, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE event_id = $1`, e.ID); err != nil {
			return classify(err, "clear "+table)
		}
	}
	return r.insertItems(ctx, e)
}

// Delete borra el evento; los ítems caen por ON DELETE CASCADE.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return classify(err, "delete event")
	}
	return nil
}

// List eventos filtrados, más recientes primero. Los ítems no se cargan.
func (r *EventRepo) List(ctx context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	where, args := eventWhere(f)
	query := `SELECT ` + eventColumns + ` FROM events e` + where + ` ORDER BY e.event_date DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list events")
	}
	defer rows.Close()
	var list []*entity.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, classify(err, "scan event")
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// SumProducts suma botellas y dosis por producto de los eventos filtrados.
func (r *EventRepo) SumProducts(ctx context.Context, f repository.EventFilter) ([]repository.ProductConsumption, error) {
	where, args := eventWhere(f)
	query := `
		SELECT ep.product_id, COALESCE(SUM(ep.bottles), 0), COALESCE(SUM(ep.doses), 0)
		FROM event_products ep JOIN events e ON e.id = ep.event_id` + where + `
		GROUP BY ep.product_id ORDER BY ep.product_id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "sum event products")
	}
	defer rows.Close()
	var out []repository.ProductConsumption
	for rows.Next() {
		var pc repository.ProductConsumption
		if err := rows.Scan(&pc.ProductID, &pc.Bottles, &pc.Doses); err != nil {
			return nil, classify(err, "scan product consumption")
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// SumFoods suma cantidades por alimento de los eventos filtrados.
func (r *EventRepo) SumFoods(ctx context.Context, f repository.EventFilter) ([]repository.FoodConsumption, error) {
	where, args := eventWhere(f)
	query := `
		SELECT ef.food_id, COALESCE(SUM(ef.quantity), 0)
		FROM event_foods ef JOIN events e ON e.id = ef.event_id` + where + `
		GROUP BY ef.food_id ORDER BY ef.food_id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "sum event foods")
	}
	defer rows.Close()
	var out []repository.FoodConsumption
	for rows.Next() {
		var fc repository.FoodConsumption
		if err := rows.Scan(&fc.FoodID, &fc.Quantity); err != nil {
			return nil, classify(err, "scan food consumption")
		}
		out = append(out, fc)
	}
	return out, rows.Err()
}

// eventWhere arma el WHERE sobre el alias e con argumentos posicionales.
func eventWhere(f repository.EventFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.TenantID != nil {
		add("e.tenant_id = $%d", *f.TenantID)
	}
	if f.Status != nil {
		add("e.status = $%d", string(*f.Status))
	}
	if f.From != nil {
		add("e.event_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("e.event_date < $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *EventRepo) load(ctx context.Context, query, id string) (*entity.Event, error) {
	e, err := scanEvent(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err, "get event")
	}
	if err := r.loadItems(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepo) loadItems(ctx context.Context, e *entity.Event) error {
	rows, err := r.q.Query(ctx,
		`SELECT id, product_id, bottles, doses FROM event_products WHERE event_id = $1 ORDER BY id`, e.ID)
	if err != nil {
		return classify(err, "list event products")
	}
	for rows.Next() {
		it := entity.EventProduct{EventID: e.ID}
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Bottles, &it.Doses); err != nil {
			rows.Close()
			return classify(err, "scan event product")
		}
		e.Products = append(e.Products, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return classify(err, "list event products")
	}

	rows, err = r.q.Query(ctx,
		`SELECT id, food_id, quantity FROM event_foods WHERE event_id = $1 ORDER BY id`, e.ID)
	if err != nil {
		return classify(err, "list event foods")
	}
	defer rows.Close()
	for rows.Next() {
		it := entity.EventFood{EventID: e.ID}
		if err := rows.Scan(&it.ID, &it.FoodID, &it.Quantity); err != nil {
			return classify(err, "scan event food")
		}
		e.Foods = append(e.Foods, it)
	}
	return rows.Err()
}

func (r *EventRepo) insertItems(ctx context.Context, e *entity.Event) error {
	for i := range e.Products {
		it := &e.Products[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.EventID = e.ID
		if _, err := r.q.Exec(ctx,
			`INSERT INTO event_products (id, event_id, product_id, bottles, doses) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, e.ID, it.ProductID, it.Bottles, it.Doses); err != nil {
			return classify(err, "insert event product")
		}
	}
	for i := range e.Foods {
		it := &e.Foods[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.EventID = e.ID
		if _, err := r.q.Exec(ctx,
			`INSERT INTO event_foods (id, event_id, food_id, quantity) VALUES ($1, $2, $3, $4)`,
			it.ID, e.ID, it.FoodID, it.Quantity); err != nil {
			return classify(err, "insert event food")
		}
	}
	return nil
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var e entity.Event
	var status string
	err := row.Scan(&e.ID, &e.Name, &e.TenantID, &e.ResponsibleID, &e.Guests, &e.Hours, &e.EventDate, &status,
		&e.CreatedAt, &e.FinalizedAt, &e.FinalizedBy, &e.StockWrittenOff, &e.WrittenOffBy, &e.WrittenOffAt,
		&e.WriteOffNote)
	if err != nil {
		return nil, err
	}
	e.Status = entity.EventStatus(status)
	return &e, nil
}
