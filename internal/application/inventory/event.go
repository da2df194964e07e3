package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// EventProductLine bebida consumida; negativos se llevan a cero.
type EventProductLine struct {
	ProductID string
	Bottles   int
	Doses     int
}

// EventFoodLine alimento consumido; negativos se llevan a cero.
type EventFoodLine struct {
	FoodID   string
	Quantity decimal.Decimal
}

// EventInput datos de creación de un evento.
type EventInput struct {
	Name      string
	TenantID  *string
	Guests    *int
	Hours     *decimal.Decimal
	EventDate *time.Time
	Products  []EventProductLine
	Foods     []EventFoodLine
}

// EventUpdate edición de un evento abierto. Las líneas Set* actualizan o agregan ítems.
type EventUpdate struct {
	Guests           *int
	Hours            *decimal.Decimal
	RemoveProductIDs []string
	RemoveFoodIDs    []string
	SetProducts      []EventProductLine
	SetFoods         []EventFoodLine
}

// EventConsolidated consumo agregado de un rango de eventos.
type EventConsolidated struct {
	From     time.Time
	To       time.Time
	TenantID *string // nil = todos los restaurantes
	Products []entity.EventConsumption
	Foods    []entity.EventFoodConsumption
}

// EventUseCase eventos con consumo informativo. Nada aquí debita saldos; la baja del stock es
// una marca manual que el personal activa después de finalizar.
type EventUseCase struct {
	tx    TxRunner
	repos repository.TxRepos
	now   func() time.Time
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(tx TxRunner, repos repository.TxRepos) *EventUseCase {
	return &EventUseCase{tx: tx, repos: repos, now: time.Now}
}

// Create crea un evento OPEN agregando líneas repetidas e ignorando productos/alimentos desconocidos.
func (uc *EventUseCase) Create(ctx context.Context, scope entity.Scope, in EventInput) (*entity.Event, error) {
	if scope.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Guests != nil && *in.Guests < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Hours != nil && in.Hours.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	tenantID, err := eventTenant(scope, in.TenantID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	e := &entity.Event{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		TenantID:      tenantID,
		ResponsibleID: scope.UserID,
		Guests:        in.Guests,
		Hours:         in.Hours,
		EventDate:     now,
		Status:        entity.EventOpen,
		CreatedAt:     now,
	}
	if e.Name == "" {
		e.Name = entity.DefaultEventName(now)
	}
	if in.EventDate != nil {
		e.EventDate = *in.EventDate
	}
	if e.Products, err = uc.mergeProducts(ctx, e.ID, nil, in.Products); err != nil {
		return nil, err
	}
	if e.Foods, err = uc.mergeFoods(ctx, e.ID, nil, in.Foods); err != nil {
		return nil, err
	}
	if err := uc.repos.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get evento con ítems.
func (uc *EventUseCase) Get(ctx context.Context, scope entity.Scope, id string) (*entity.Event, error) {
	e, err := uc.repos.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || !visibleTo(e, scope) {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Update edita horas, invitados e ítems mientras el evento siga abierto.
func (uc *EventUseCase) Update(ctx context.Context, scope entity.Scope, id string, in EventUpdate) (*entity.Event, error) {
	if in.Guests != nil && *in.Guests < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Hours != nil && in.Hours.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, scope, id, func(r repository.TxRepos, e *entity.Event) error {
		if err := e.EnsureEditable(); err != nil {
			return err
		}
		if in.Guests != nil {
			e.Guests = in.Guests
		}
		if in.Hours != nil {
			e.Hours = in.Hours
		}
		e.Products = removeProducts(e.Products, in.RemoveProductIDs)
		e.Foods = removeFoods(e.Foods, in.RemoveFoodIDs)

		var err error
		if e.Products, err = uc.mergeProducts(ctx, e.ID, e.Products, in.SetProducts); err != nil {
			return err
		}
		e.Foods, err = uc.mergeFoods(ctx, e.ID, e.Foods, in.SetFoods)
		return err
	})
}

// Finalize OPEN -> FINALIZED. No debita saldos.
func (uc *EventUseCase) Finalize(ctx context.Context, scope entity.Scope, id string) (*entity.Event, error) {
	return uc.mutate(ctx, scope, id, func(_ repository.TxRepos, e *entity.Event) error {
		return e.Finalize(scope.UserID, uc.now())
	})
}

// MarkWrittenOff marca que el stock del evento ya fue dado de baja manualmente.
func (uc *EventUseCase) MarkWrittenOff(ctx context.Context, scope entity.Scope, id, note string) (*entity.Event, error) {
	return uc.mutate(ctx, scope, id, func(_ repository.TxRepos, e *entity.Event) error {
		return e.MarkWrittenOff(scope.UserID, note, uc.now())
	})
}

// UnmarkWrittenOff quita la marca de baja.
func (uc *EventUseCase) UnmarkWrittenOff(ctx context.Context, scope entity.Scope, id string) (*entity.Event, error) {
	return uc.mutate(ctx, scope, id, func(_ repository.TxRepos, e *entity.Event) error {
		return e.UnmarkWrittenOff()
	})
}

// Delete borra un evento abierto. Un evento finalizado no se borra.
func (uc *EventUseCase) Delete(ctx context.Context, scope entity.Scope, id string) error {
	return uc.tx.Run(ctx, func(r repository.TxRepos) error {
		e, err := r.Events.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if e == nil || !visibleTo(e, scope) {
			return domain.ErrNotFound
		}
		if err := e.EnsureEditable(); err != nil {
			return err
		}
		return r.Events.Delete(ctx, e.ID)
	})
}

// ListOpen eventos abiertos. Con restaurante en el alcance solo los de ese restaurante;
// sin él, los del tenantID pedido o todos.
func (uc *EventUseCase) ListOpen(ctx context.Context, scope entity.Scope, tenantID *string, limit, offset int) ([]*entity.Event, error) {
	tenantID, err := eventTenant(scope, tenantID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	status := entity.EventOpen
	return uc.repos.Events.List(ctx, repository.EventFilter{TenantID: tenantID, Status: &status, Limit: limit, Offset: offset})
}

// Consolidated suma el consumo de los eventos cuya fecha cae en [from, to).
// mL = dosis x tamaño de dosis del producto. El restaurante se resuelve como en ListOpen.
func (uc *EventUseCase) Consolidated(ctx context.Context, scope entity.Scope, from, to time.Time, tenantID *string) (*EventConsolidated, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	tenantID, err := eventTenant(scope, tenantID)
	if err != nil {
		return nil, err
	}
	f := repository.EventFilter{TenantID: tenantID, From: &from, To: &to}
	prods, err := uc.repos.Events.SumProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	foods, err := uc.repos.Events.SumFoods(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &EventConsolidated{From: from, To: to, TenantID: tenantID}
	for _, pc := range prods {
		p, err := uc.repos.Products.GetByID(ctx, pc.ProductID)
		if err != nil {
			return nil, err
		}
		row := entity.EventConsumption{ProductID: pc.ProductID, Bottles: pc.Bottles, Doses: pc.Doses}
		dose := entity.DefaultDoseSizeML
		if p != nil {
			row.ProductName = p.Name
			dose = p.DoseSize()
		}
		row.ML = decimal.NewFromInt(pc.Doses).Mul(dose)
		out.Products = append(out.Products, row)
	}
	for _, fc := range foods {
		fd, err := uc.repos.Foods.GetByID(ctx, fc.FoodID)
		if err != nil {
			return nil, err
		}
		row := entity.EventFoodConsumption{FoodID: fc.FoodID, Quantity: fc.Quantity}
		if fd != nil {
			row.FoodName, row.Unit = fd.Name, fd.Unit
		}
		out.Foods = append(out.Foods, row)
	}
	sort.Slice(out.Products, func(i, j int) bool { return out.Products[i].ProductName < out.Products[j].ProductName })
	sort.Slice(out.Foods, func(i, j int) bool { return out.Foods[i].FoodName < out.Foods[j].FoodName })
	return out, nil
}

// mutate carga el evento con lock, aplica fn y persiste.
func (uc *EventUseCase) mutate(ctx context.Context, scope entity.Scope, id string, fn func(r repository.TxRepos, e *entity.Event) error) (*entity.Event, error) {
	var out *entity.Event
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		e, err := r.Events.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if e == nil || !visibleTo(e, scope) {
			return domain.ErrNotFound
		}
		if err := fn(r, e); err != nil {
			return err
		}
		if err := r.Events.Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mergeProducts suma las líneas nuevas (por producto) sobre los ítems existentes, que se reemplazan.
func (uc *EventUseCase) mergeProducts(ctx context.Context, eventID string, current []entity.EventProduct, lines []EventProductLine) ([]entity.EventProduct, error) {
	type agg struct{ bottles, doses int }
	order := []string{}
	byProduct := map[string]*agg{}
	for _, line := range lines {
		if line.ProductID == "" {
			continue
		}
		a, ok := byProduct[line.ProductID]
		if !ok {
			a = &agg{}
			byProduct[line.ProductID] = a
			order = append(order, line.ProductID)
		}
		a.bottles += max(line.Bottles, 0)
		a.doses += max(line.Doses, 0)
	}

	out := make([]entity.EventProduct, 0, len(current)+len(order))
	replaced := map[string]bool{}
	for _, pid := range order {
		a := byProduct[pid]
		if a.bottles == 0 && a.doses == 0 {
			replaced[pid] = true
			continue
		}
		p, err := uc.repos.Products.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		replaced[pid] = true
		out = append(out, entity.EventProduct{ID: uuid.New().String(), EventID: eventID, ProductID: pid, Bottles: a.bottles, Doses: a.doses})
	}
	for _, it := range current {
		if !replaced[it.ProductID] {
			out = append(out, it)
		}
	}
	return out, nil
}

func (uc *EventUseCase) mergeFoods(ctx context.Context, eventID string, current []entity.EventFood, lines []EventFoodLine) ([]entity.EventFood, error) {
	order := []string{}
	byFood := map[string]decimal.Decimal{}
	for _, line := range lines {
		if line.FoodID == "" {
			continue
		}
		q, ok := byFood[line.FoodID]
		if !ok {
			order = append(order, line.FoodID)
		}
		if line.Quantity.IsPositive() {
			q = q.Add(line.Quantity)
		}
		byFood[line.FoodID] = q
	}

	out := make([]entity.EventFood, 0, len(current)+len(order))
	replaced := map[string]bool{}
	for _, fid := range order {
		q := byFood[fid]
		if q.IsZero() {
			replaced[fid] = true
			continue
		}
		f, err := uc.repos.Foods.GetByID(ctx, fid)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		replaced[fid] = true
		out = append(out, entity.EventFood{ID: uuid.New().String(), EventID: eventID, FoodID: fid, Quantity: q})
	}
	for _, it := range current {
		if !replaced[it.FoodID] {
			out = append(out, it)
		}
	}
	return out, nil
}

func removeProducts(items []entity.EventProduct, ids []string) []entity.EventProduct {
	if len(ids) == 0 {
		return items
	}
	drop := toSet(ids)
	out := items[:0]
	for _, it := range items {
		if !drop[it.ProductID] {
			out = append(out, it)
		}
	}
	return out
}

func removeFoods(items []entity.EventFood, ids []string) []entity.EventFood {
	if len(ids) == 0 {
		return items
	}
	drop := toSet(ids)
	out := items[:0]
	for _, it := range items {
		if !drop[it.FoodID] {
			out = append(out, it)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// eventTenant restaurante efectivo de una operación de eventos. Con restaurante en el alcance
// es siempre ese; pedir otro es ErrForbidden. Sin alcance vale el pedido (nil = ninguno/todos).
func eventTenant(scope entity.Scope, requested *string) (*string, error) {
	if requested != nil && *requested == "" {
		requested = nil
	}
	if scope.TenantID == "" {
		return requested, nil
	}
	if requested != nil && *requested != scope.TenantID {
		return nil, domain.ErrForbidden
	}
	tid := scope.TenantID
	return &tid, nil
}

// visibleTo un evento de otro restaurante no es visible cuando el usuario eligió uno.
func visibleTo(e *entity.Event, scope entity.Scope) bool {
	if e.TenantID == nil || scope.TenantID == "" {
		return true
	}
	return *e.TenantID == scope.TenantID
}
