package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

type fakeTenants struct{ items map[string]*entity.Tenant }

func newFakeTenants(ids ...string) *fakeTenants {
	f := &fakeTenants{items: map[string]*entity.Tenant{}}
	for _, id := range ids {
		f.items[id] = &entity.Tenant{ID: id, Name: "R " + id}
	}
	return f
}

func (f *fakeTenants) Create(_ context.Context, t *entity.Tenant) error {
	f.items[t.ID] = t
	return nil
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.items[id], nil
}

func (f *fakeTenants) List(context.Context) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range f.items {
		out = append(out, t)
	}
	return out, nil
}

type fakeLocations struct{ items map[string]*entity.Location }

func newFakeLocations(locs ...*entity.Location) *fakeLocations {
	f := &fakeLocations{items: map[string]*entity.Location{}}
	for _, l := range locs {
		f.items[l.ID] = l
	}
	return f
}

func (f *fakeLocations) Create(_ context.Context, l *entity.Location) error {
	f.items[l.ID] = l
	return nil
}

func (f *fakeLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return f.items[id], nil
}

func (f *fakeLocations) GetCentral(_ context.Context, tenantID string) (*entity.Location, error) {
	for _, l := range f.items {
		if l.TenantID == tenantID && l.IsCentral {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocations) ListByTenant(_ context.Context, tenantID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.items {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeProducts struct{ items map[string]*entity.Product }

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.items[id], nil
}

func (f *fakeProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range f.items {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakeProducts) List(_ context.Context, activeOnly bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.items {
		if !activeOnly || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUsers struct {
	users  map[string]*entity.User
	access map[string]*entity.UserAccess
	caps   map[string][]string
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*entity.User{}, access: map[string]*entity.UserAccess{}, caps: map[string][]string{}}
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	for _, o := range f.users {
		if o.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ListAccess(_ context.Context, userID string) ([]*entity.UserAccess, error) {
	var out []*entity.UserAccess
	for _, a := range f.access {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeUsers) SetAccess(_ context.Context, a *entity.UserAccess) error {
	f.access[a.UserID+"/"+a.TenantID] = a
	return nil
}

func (f *fakeUsers) Capabilities(_ context.Context, userID string) ([]string, error) {
	return f.caps[userID], nil
}

func (f *fakeUsers) SetCapabilities(_ context.Context, userID string, caps []string) error {
	f.caps[userID] = caps
	return nil
}

type recordingHooks struct {
	mu        sync.Mutex
	products  []string
	locations []string
}

func (h *recordingHooks) ProductCreated(p *entity.Product) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.products = append(h.products, p.ID)
}

func (h *recordingHooks) LocationCreated(l *entity.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.locations = append(h.locations, l.ID)
}
