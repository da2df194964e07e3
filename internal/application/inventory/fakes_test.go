package inventory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria: transacciones serializadas con rollback por snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type balKey struct{ loc, prod string }

type memData struct {
	locations    map[string]entity.Location
	products     map[string]entity.Product
	foods        map[string]entity.Food
	balances     map[balKey]entity.Balance
	receipts     []entity.Receipt
	transfers    []entity.Transfer
	counts       []entity.Count
	losses       map[string]entity.Loss
	requisitions map[string]entity.Requisition
	events       map[string]entity.Event
}

func newMemData() *memData {
	return &memData{
		locations:    map[string]entity.Location{},
		products:     map[string]entity.Product{},
		foods:        map[string]entity.Food{},
		balances:     map[balKey]entity.Balance{},
		losses:       map[string]entity.Loss{},
		requisitions: map[string]entity.Requisition{},
		events:       map[string]entity.Event{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.foods {
		c.foods[k] = v
	}
	for k, v := range d.balances {
		c.balances[k] = v
	}
	c.receipts = append([]entity.Receipt(nil), d.receipts...)
	c.transfers = append([]entity.Transfer(nil), d.transfers...)
	c.counts = append([]entity.Count(nil), d.counts...)
	for k, v := range d.losses {
		c.losses[k] = v
	}
	for k, v := range d.requisitions {
		c.requisitions[k] = v
	}
	for k, v := range d.events {
		c.events[k] = copyEvent(v)
	}
	return c
}

func copyEvent(e entity.Event) entity.Event {
	e.Products = append([]entity.EventProduct(nil), e.Products...)
	e.Foods = append([]entity.EventFood(nil), e.Foods...)
	return e
}

type memStore struct {
	txMu sync.Mutex // serializa transacciones (equivale a los locks de fila)
	mu   sync.Mutex // protege d y locks
	d    *memData

	locks         []balKey
	failIncrement error
}

func newMemStore() *memStore {
	return &memStore{d: newMemData()}
}

func (s *memStore) with(fn func(d *memData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.d)
}

func (s *memStore) repos() repository.TxRepos {
	return repository.TxRepos{
		Balances:     &memBalances{s},
		Locations:    &memLocations{s},
		Products:     &memProducts{s},
		Foods:        &memFoods{s},
		Receipts:     &memReceipts{s},
		Transfers:    &memTransfers{s},
		Counts:       &memCounts{s},
		Losses:       &memLosses{s},
		Requisitions: &memRequisitions{s},
		Events:       &memEvents{s},
	}
}

func (s *memStore) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	var snap *memData
	s.with(func(d *memData) { snap = d.clone() })
	if err := fn(s.repos()); err != nil {
		s.with(func(d *memData) { s.d = snap })
		return err
	}
	return nil
}

func (s *memStore) lockLog() []balKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]balKey(nil), s.locks...)
}

func (s *memStore) resetLockLog() {
	s.with(func(*memData) { s.locks = nil })
}

func (s *memStore) balance(loc, prod string) stock.Quantities {
	var q stock.Quantities
	s.with(func(d *memData) {
		b, ok := d.balances[balKey{loc, prod}]
		if !ok {
			q = stock.Zero()
			return
		}
		q = b.Quantities()
	})
	return q
}

func (s *memStore) setBalance(loc, prod string, q stock.Quantities) {
	s.with(func(d *memData) {
		d.balances[balKey{loc, prod}] = entity.Balance{LocationID: loc, ProductID: prod, Bottles: q.Bottles, Doses: q.Doses}
	})
}

func (s *memStore) balanceRows() int {
	n := 0
	s.with(func(d *memData) { n = len(d.balances) })
	return n
}

// ── Balances ─────────────────────────────────────────────────────────────────

type memBalances struct{ s *memStore }

func (r *memBalances) Ensure(_ context.Context, loc, prod string) error {
	r.s.with(func(d *memData) {
		k := balKey{loc, prod}
		if _, ok := d.balances[k]; !ok {
			d.balances[k] = entity.Balance{LocationID: loc, ProductID: prod, Bottles: decimal.Zero, Doses: decimal.Zero}
		}
	})
	return nil
}

func (r *memBalances) get(loc, prod string) *entity.Balance {
	var out entity.Balance
	r.s.with(func(d *memData) {
		b, ok := d.balances[balKey{loc, prod}]
		if !ok {
			b = entity.Balance{LocationID: loc, ProductID: prod, Bottles: decimal.Zero, Doses: decimal.Zero}
		}
		out = b
	})
	return &out
}

func (r *memBalances) Get(_ context.Context, loc, prod string) (*entity.Balance, error) {
	return r.get(loc, prod), nil
}

func (r *memBalances) GetForUpdate(_ context.Context, loc, prod string) (*entity.Balance, error) {
	r.s.with(func(*memData) { r.s.locks = append(r.s.locks, balKey{loc, prod}) })
	return r.get(loc, prod), nil
}

func (r *memBalances) apply(loc, prod string, fn func(q stock.Quantities) stock.Quantities) error {
	var err error
	r.s.with(func(d *memData) {
		k := balKey{loc, prod}
		b := d.balances[k]
		next := fn(b.Quantities())
		if next.IsNegative() {
			err = domain.ErrInsufficientStock // CHECK (bottles >= 0 AND doses >= 0)
			return
		}
		d.balances[k] = entity.Balance{LocationID: loc, ProductID: prod, Bottles: next.Bottles, Doses: next.Doses, UpdatedAt: time.Now()}
	})
	return err
}

func (r *memBalances) Increment(_ context.Context, loc, prod string, q stock.Quantities) error {
	if r.s.failIncrement != nil {
		return r.s.failIncrement
	}
	return r.apply(loc, prod, func(cur stock.Quantities) stock.Quantities { return cur.Plus(q) })
}

func (r *memBalances) Decrement(_ context.Context, loc, prod string, q stock.Quantities) (bool, error) {
	if !r.get(loc, prod).Quantities().Covers(q) {
		return false, nil
	}
	return true, r.apply(loc, prod, func(cur stock.Quantities) stock.Quantities { return cur.Minus(q) })
}

func (r *memBalances) Overwrite(_ context.Context, loc, prod string, q stock.Quantities) error {
	return r.apply(loc, prod, func(stock.Quantities) stock.Quantities { return q })
}

func (r *memBalances) ensurePairs(match func(loc entity.Location, p entity.Product) bool) int64 {
	var n int64
	r.s.with(func(d *memData) {
		for _, l := range d.locations {
			for _, p := range d.products {
				if !p.Active || !match(l, p) {
					continue
				}
				k := balKey{l.ID, p.ID}
				if _, ok := d.balances[k]; ok {
					continue
				}
				d.balances[k] = entity.Balance{LocationID: l.ID, ProductID: p.ID, Bottles: decimal.Zero, Doses: decimal.Zero}
				n++
			}
		}
	})
	return n
}

func (r *memBalances) EnsureForProduct(_ context.Context, productID string) (int64, error) {
	return r.ensurePairs(func(_ entity.Location, p entity.Product) bool { return p.ID == productID }), nil
}

func (r *memBalances) EnsureForLocation(_ context.Context, locationID string) (int64, error) {
	return r.ensurePairs(func(l entity.Location, _ entity.Product) bool { return l.ID == locationID }), nil
}

func (r *memBalances) EnsureAll(_ context.Context) (int64, error) {
	return r.ensurePairs(func(entity.Location, entity.Product) bool { return true }), nil
}

func (r *memBalances) CountMissing(_ context.Context) (int64, error) {
	var n int64
	r.s.with(func(d *memData) {
		for _, l := range d.locations {
			for _, p := range d.products {
				if _, ok := d.balances[balKey{l.ID, p.ID}]; p.Active && !ok {
					n++
				}
			}
		}
	})
	return n, nil
}

func (r *memBalances) ListByLocation(_ context.Context, locationID string) ([]*entity.BalanceView, error) {
	var out []*entity.BalanceView
	r.s.with(func(d *memData) {
		for k, b := range d.balances {
			if k.loc != locationID {
				continue
			}
			p := d.products[k.prod]
			out = append(out, &entity.BalanceView{Balance: b, ProductCode: p.Code, ProductName: p.Name, Category: p.Category})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type memLocations struct{ s *memStore }

func (r *memLocations) Create(_ context.Context, l *entity.Location) error {
	var err error
	r.s.with(func(d *memData) {
		if l.IsCentral {
			for _, o := range d.locations {
				if o.TenantID == l.TenantID && o.IsCentral {
					err = domain.ErrDuplicate
					return
				}
			}
		}
		d.locations[l.ID] = *l
	})
	return err
}

func (r *memLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.s.with(func(d *memData) {
		if l, ok := d.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *memLocations) GetCentral(_ context.Context, tenantID string) (*entity.Location, error) {
	var out *entity.Location
	r.s.with(func(d *memData) {
		for _, l := range d.locations {
			if l.TenantID == tenantID && l.IsCentral {
				l := l
				out = &l
			}
		}
	})
	return out, nil
}

func (r *memLocations) ListByTenant(_ context.Context, tenantID string) ([]*entity.Location, error) {
	var out []*entity.Location
	r.s.with(func(d *memData) {
		for _, l := range d.locations {
			if l.TenantID == tenantID {
				l := l
				out = append(out, &l)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memProducts struct{ s *memStore }

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.s.with(func(d *memData) {
		for _, o := range d.products {
			if o.Code == p.Code {
				err = domain.ErrDuplicate
				return
			}
		}
		d.products[p.ID] = *p
	})
	return err
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.s.with(func(d *memData) {
		if p, ok := d.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *memProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	r.s.with(func(d *memData) {
		for _, p := range d.products {
			if p.Code == code {
				p := p
				out = &p
			}
		}
	})
	return out, nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	r.s.with(func(d *memData) { d.products[p.ID] = *p })
	return nil
}

func (r *memProducts) List(_ context.Context, activeOnly bool) ([]*entity.Product, error) {
	var out []*entity.Product
	r.s.with(func(d *memData) {
		for _, p := range d.products {
			if activeOnly && !p.Active {
				continue
			}
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memFoods struct{ s *memStore }

func (r *memFoods) Create(_ context.Context, f *entity.Food) error {
	r.s.with(func(d *memData) { d.foods[f.ID] = *f })
	return nil
}

func (r *memFoods) GetByID(_ context.Context, id string) (*entity.Food, error) {
	var out *entity.Food
	r.s.with(func(d *memData) {
		if f, ok := d.foods[id]; ok {
			out = &f
		}
	})
	return out, nil
}

func (r *memFoods) List(_ context.Context, activeOnly bool) ([]*entity.Food, error) {
	var out []*entity.Food
	r.s.with(func(d *memData) {
		for _, f := range d.foods {
			if !activeOnly || f.Active {
				f := f
				out = append(out, &f)
			}
		}
	})
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type memReceipts struct{ s *memStore }

func (r *memReceipts) Create(_ context.Context, rec *entity.Receipt) error {
	r.s.with(func(d *memData) { d.receipts = append(d.receipts, *rec) })
	return nil
}

func (r *memReceipts) ListByLocation(_ context.Context, locationID string, limit int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	r.s.with(func(d *memData) {
		for i := len(d.receipts) - 1; i >= 0 && len(out) < limit; i-- {
			if d.receipts[i].LocationID == locationID {
				rec := d.receipts[i]
				out = append(out, &rec)
			}
		}
	})
	return out, nil
}

type memTransfers struct{ s *memStore }

func (r *memTransfers) Create(_ context.Context, t *entity.Transfer) error {
	r.s.with(func(d *memData) { d.transfers = append(d.transfers, *t) })
	return nil
}

func (r *memTransfers) ListByLocation(_ context.Context, locationID string, limit int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	r.s.with(func(d *memData) {
		for i := len(d.transfers) - 1; i >= 0 && len(out) < limit; i-- {
			t := d.transfers[i]
			if t.SourceID == locationID || t.DestinationID == locationID {
				out = append(out, &t)
			}
		}
	})
	return out, nil
}

func (s *memStore) transferCount() int {
	n := 0
	s.with(func(d *memData) { n = len(d.transfers) })
	return n
}

type memCounts struct{ s *memStore }

func (r *memCounts) Create(_ context.Context, c *entity.Count) error {
	r.s.with(func(d *memData) { d.counts = append(d.counts, *c) })
	return nil
}

func (r *memCounts) ListByLocation(_ context.Context, locationID string, limit int) ([]*entity.Count, error) {
	var out []*entity.Count
	r.s.with(func(d *memData) {
		for i := len(d.counts) - 1; i >= 0 && len(out) < limit; i-- {
			if d.counts[i].LocationID == locationID {
				c := d.counts[i]
				out = append(out, &c)
			}
		}
	})
	return out, nil
}

func (r *memCounts) ListLatestPairs(_ context.Context, tenantID string) ([]*entity.Count, error) {
	var all []*entity.Count
	r.s.with(func(d *memData) {
		for _, c := range d.counts {
			if d.locations[c.LocationID].TenantID == tenantID {
				c := c
				all = append(all, &c)
			}
		}
	})
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.LocationID != b.LocationID {
			return a.LocationID < b.LocationID
		}
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		return a.CountedAt.After(b.CountedAt)
	})
	var out []*entity.Count
	seen := map[balKey]int{}
	for _, c := range all {
		k := balKey{c.LocationID, c.ProductID}
		if seen[k] < 2 {
			out = append(out, c)
			seen[k]++
		}
	}
	return out, nil
}

func (r *memCounts) ListLatest(_ context.Context, tenantID string, from, to *time.Time) ([]*entity.Count, error) {
	latest := map[balKey]entity.Count{}
	r.s.with(func(d *memData) {
		for _, c := range d.counts {
			if d.locations[c.LocationID].TenantID != tenantID {
				continue
			}
			if (from != nil && c.CountedAt.Before(*from)) || (to != nil && !c.CountedAt.Before(*to)) {
				continue
			}
			k := balKey{c.LocationID, c.ProductID}
			if cur, ok := latest[k]; !ok || c.CountedAt.After(cur.CountedAt) {
				latest[k] = c
			}
		}
	})
	out := make([]*entity.Count, 0, len(latest))
	for _, c := range latest {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *memCounts) ListByLocationBetween(_ context.Context, locationID string, from, to time.Time) ([]*entity.Count, error) {
	var out []*entity.Count
	r.s.with(func(d *memData) {
		for _, c := range d.counts {
			if c.LocationID == locationID && !c.CountedAt.Before(from) && c.CountedAt.Before(to) {
				c := c
				out = append(out, &c)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CountedAt.After(out[j].CountedAt) })
	return out, nil
}

type memLosses struct{ s *memStore }

func (r *memLosses) Create(_ context.Context, l *entity.Loss) error {
	r.s.with(func(d *memData) { d.losses[l.ID] = *l })
	return nil
}

func (r *memLosses) GetByID(_ context.Context, id string) (*entity.Loss, error) {
	var out *entity.Loss
	r.s.with(func(d *memData) {
		if l, ok := d.losses[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *memLosses) GetForUpdate(ctx context.Context, id string) (*entity.Loss, error) {
	return r.GetByID(ctx, id)
}

func (r *memLosses) Delete(_ context.Context, id string) error {
	r.s.with(func(d *memData) { delete(d.losses, id) })
	return nil
}

func (r *memLosses) UpdateWriteOff(_ context.Context, l *entity.Loss) error {
	r.s.with(func(d *memData) { d.losses[l.ID] = *l })
	return nil
}

func (r *memLosses) List(_ context.Context, f repository.LossFilter) ([]*entity.Loss, error) {
	var out []*entity.Loss
	r.s.with(func(d *memData) {
		for _, l := range d.losses {
			if l.TenantID != f.TenantID || (f.LocationID != "" && l.LocationID != f.LocationID) {
				continue
			}
			if l.RegisteredAt.Before(f.From) || !l.RegisteredAt.Before(f.To) {
				continue
			}
			if (f.Reason != "" && l.Reason != f.Reason) || (f.PendingOnly && l.WrittenOff) {
				continue
			}
			if f.Search != "" {
				p := d.products[l.ProductID]
				hay := strings.ToLower(p.Name + " " + p.Code + " " + l.Note)
				if !strings.Contains(hay, strings.ToLower(f.Search)) {
					continue
				}
			}
			l := l
			out = append(out, &l)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (s *memStore) lossCount() int {
	n := 0
	s.with(func(d *memData) { n = len(d.losses) })
	return n
}

// ── Requisiciones ────────────────────────────────────────────────────────────

type memRequisitions struct{ s *memStore }

func (r *memRequisitions) Create(_ context.Context, req *entity.Requisition) error {
	r.s.with(func(d *memData) { d.requisitions[req.ID] = *req })
	return nil
}

func (r *memRequisitions) GetByID(_ context.Context, id string) (*entity.Requisition, error) {
	var out *entity.Requisition
	r.s.with(func(d *memData) {
		if req, ok := d.requisitions[id]; ok {
			out = &req
		}
	})
	return out, nil
}

func (r *memRequisitions) GetForUpdate(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.GetByID(ctx, id)
}

func (r *memRequisitions) UpdateDecision(_ context.Context, req *entity.Requisition) error {
	r.s.with(func(d *memData) { d.requisitions[req.ID] = *req })
	return nil
}

func (r *memRequisitions) ListPendingByTenant(_ context.Context, tenantID string) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	r.s.with(func(d *memData) {
		for _, req := range d.requisitions {
			if req.TenantID == tenantID && req.Status == entity.RequisitionPending {
				req := req
				out = append(out, &req)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func (r *memRequisitions) ListHistory(_ context.Context, f repository.RequisitionHistoryFilter) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	r.s.with(func(d *memData) {
		for _, req := range d.requisitions {
			if req.LocationID != f.LocationID {
				continue
			}
			if f.From != nil && req.RequestedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !req.RequestedAt.Before(*f.To) {
				continue
			}
			if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, req.Status) {
				continue
			}
			if f.ProductSearch != "" && !strings.Contains(strings.ToLower(d.products[req.ProductID].Name), strings.ToLower(f.ProductSearch)) {
				continue
			}
			req := req
			out = append(out, &req)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ── Eventos ──────────────────────────────────────────────────────────────────

type memEvents struct{ s *memStore }

func (r *memEvents) Create(_ context.Context, e *entity.Event) error {
	r.s.with(func(d *memData) { d.events[e.ID] = copyEvent(*e) })
	return nil
}

func (r *memEvents) GetByID(_ context.Context, id string) (*entity.Event, error) {
	var out *entity.Event
	r.s.with(func(d *memData) {
		if e, ok := d.events[id]; ok {
			e = copyEvent(e)
			out = &e
		}
	})
	return out, nil
}

func (r *memEvents) GetForUpdate(ctx context.Context, id string) (*entity.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *memEvents) Update(_ context.Context, e *entity.Event) error {
	r.s.with(func(d *memData) { d.events[e.ID] = copyEvent(*e) })
	return nil
}

func (r *memEvents) Delete(_ context.Context, id string) error {
	r.s.with(func(d *memData) { delete(d.events, id) })
	return nil
}

func (r *memEvents) match(e entity.Event, f repository.EventFilter) bool {
	if f.TenantID != nil && (e.TenantID == nil || *e.TenantID != *f.TenantID) {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.From != nil && e.EventDate.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.EventDate.Before(*f.To) {
		return false
	}
	return true
}

func (r *memEvents) List(_ context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	var out []*entity.Event
	r.s.with(func(d *memData) {
		for _, e := range d.events {
			if r.match(e, f) {
				e = copyEvent(e)
				out = append(out, &e)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.After(out[j].EventDate) })
	return out, nil
}

func (r *memEvents) SumProducts(_ context.Context, f repository.EventFilter) ([]repository.ProductConsumption, error) {
	sums := map[string]*repository.ProductConsumption{}
	r.s.with(func(d *memData) {
		for _, e := range d.events {
			if !r.match(e, f) {
				continue
			}
			for _, it := range e.Products {
				pc, ok := sums[it.ProductID]
				if !ok {
					pc = &repository.ProductConsumption{ProductID: it.ProductID}
					sums[it.ProductID] = pc
				}
				pc.Bottles += int64(it.Bottles)
				pc.Doses += int64(it.Doses)
			}
		}
	})
	out := make([]repository.ProductConsumption, 0, len(sums))
	for _, pc := range sums {
		out = append(out, *pc)
	}
	return out, nil
}

func (r *memEvents) SumFoods(_ context.Context, f repository.EventFilter) ([]repository.FoodConsumption, error) {
	sums := map[string]decimal.Decimal{}
	r.s.with(func(d *memData) {
		for _, e := range d.events {
			if !r.match(e, f) {
				continue
			}
			for _, it := range e.Foods {
				sums[it.FoodID] = sums[it.FoodID].Add(it.Quantity)
			}
		}
	})
	out := make([]repository.FoodConsumption, 0, len(sums))
	for id, q := range sums {
		out = append(out, repository.FoodConsumption{FoodID: id, Quantity: q})
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un restaurante con central y dos bares, tres productos y un alimento.
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantID  = "t-1"
	otherTen  = "t-2"
	centralID = "loc-central"
	barA      = "loc-a"
	barB      = "loc-b"
	prodX     = "prod-x"
	prodY     = "prod-y"
	prodZ     = "prod-z"
	foodF     = "food-f"
	userID    = "user-1"
)

type testEnv struct {
	store  *memStore
	repos  repository.TxRepos
	ledger *Ledger
	log    *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := newMemStore()
	now := time.Now()
	s.with(func(d *memData) {
		d.locations[centralID] = entity.Location{ID: centralID, TenantID: tenantID, Name: "Central", IsCentral: true, CreatedAt: now}
		d.locations[barA] = entity.Location{ID: barA, TenantID: tenantID, Name: "Bar A", CreatedAt: now}
		d.locations[barB] = entity.Location{ID: barB, TenantID: tenantID, Name: "Bar B", CreatedAt: now}
		for _, p := range []entity.Product{
			{ID: prodX, Code: "X", Name: "Gin", DoseSizeML: decimal.NewFromInt(50), Active: true},
			{ID: prodY, Code: "Y", Name: "Rum", DoseSizeML: decimal.NewFromInt(40), Active: true},
			{ID: prodZ, Code: "Z", Name: "Vodka", DoseSizeML: decimal.NewFromInt(50), Active: true},
		} {
			d.products[p.ID] = p
		}
		d.foods[foodF] = entity.Food{ID: foodF, Code: "F", Name: "Canapé", Unit: entity.FoodUnitPiece, Active: true}
	})
	return &testEnv{store: s, repos: s.repos(), ledger: NewLedger(s), log: logger.Nop()}
}

func (e *testEnv) scope(loc string) entity.Scope {
	return entity.Scope{UserID: userID, TenantID: tenantID, LocationID: loc}
}

func q(bottles, doses int64) stock.Quantities {
	return stock.Of(bottles, doses)
}
