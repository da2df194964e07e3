package http_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// memRepos repositorios en memoria con lo mínimo que usan los handlers de lotes.
// Los métodos no implementados vienen de la interfaz embebida (nil) y fallan si se llaman.
type memRepos struct {
	mu           sync.Mutex
	runs         int
	central      *entity.Location
	products     map[string]*entity.Product
	balances     map[string]stock.Quantities
	requisitions map[string]*entity.Requisition
	receipts     []*entity.Receipt
}

func newMemRepos() *memRepos {
	return &memRepos{
		central:      &entity.Location{ID: "central", TenantID: testTenantID, Name: "Central", IsCentral: true},
		products:     map[string]*entity.Product{},
		balances:     map[string]stock.Quantities{},
		requisitions: map[string]*entity.Requisition{},
	}
}

func (m *memRepos) repos() repository.TxRepos {
	return repository.TxRepos{
		Balances:     memBalances{m: m},
		Locations:    memLocations{m: m},
		Products:     memProducts{m: m},
		Receipts:     memReceipts{m: m},
		Requisitions: memRequisitions{m: m},
	}
}

// Run ejecuta fn con los mismos repositorios (sin rollback; los tests no lo necesitan).
func (m *memRepos) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	return fn(m.repos())
}

func (m *memRepos) addProduct(id string) {
	m.products[id] = &entity.Product{ID: id, Code: id, Name: id, Active: true}
}

func key(loc, prod string) string { return loc + "|" + prod }

type memBalances struct {
	repository.BalanceRepository
	m *memRepos
}

func (b memBalances) Ensure(context.Context, string, string) error { return nil }

func (b memBalances) Get(_ context.Context, loc, prod string) (*entity.Balance, error) {
	q, ok := b.m.balances[key(loc, prod)]
	if !ok {
		q = stock.Zero()
	}
	return &entity.Balance{LocationID: loc, ProductID: prod, Bottles: q.Bottles, Doses: q.Doses}, nil
}

func (b memBalances) GetForUpdate(ctx context.Context, loc, prod string) (*entity.Balance, error) {
	return b.Get(ctx, loc, prod)
}

func (b memBalances) Increment(_ context.Context, loc, prod string, q stock.Quantities) error {
	cur, ok := b.m.balances[key(loc, prod)]
	if !ok {
		cur = stock.Zero()
	}
	b.m.balances[key(loc, prod)] = stock.Quantities{Bottles: cur.Bottles.Add(q.Bottles), Doses: cur.Doses.Add(q.Doses)}
	return nil
}

type memLocations struct {
	repository.LocationRepository
	m *memRepos
}

func (l memLocations) GetCentral(_ context.Context, tenantID string) (*entity.Location, error) {
	if l.m.central == nil || l.m.central.TenantID != tenantID {
		return nil, nil
	}
	return l.m.central, nil
}

type memProducts struct {
	repository.ProductRepository
	m *memRepos
}

func (p memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return p.m.products[id], nil
}

type memReceipts struct {
	repository.ReceiptRepository
	m *memRepos
}

func (r memReceipts) Create(_ context.Context, rec *entity.Receipt) error {
	r.m.receipts = append(r.m.receipts, rec)
	return nil
}

type memRequisitions struct {
	repository.RequisitionRepository
	m *memRepos
}

func (r memRequisitions) Create(_ context.Context, req *entity.Requisition) error {
	r.m.requisitions[req.ID] = req
	return nil
}

func (r memRequisitions) GetForUpdate(_ context.Context, id string) (*entity.Requisition, error) {
	req, ok := r.m.requisitions[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r memRequisitions) UpdateDecision(_ context.Context, req *entity.Requisition) error {
	cp := *req
	r.m.requisitions[req.ID] = &cp
	return nil
}

func bottles(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func stockOf(n int64) stock.Quantities {
	return stock.Quantities{Bottles: bottles(n), Doses: decimal.Zero}
}
