package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/pkg/jwt"
)

const secret = "test-secret"

type stubUsers struct {
	users  []*entity.User
	access []*entity.UserAccess
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) ListAccess(_ context.Context, userID string) ([]*entity.UserAccess, error) {
	var out []*entity.UserAccess
	for _, a := range s.access {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubUsers) SetAccess(context.Context, *entity.UserAccess) error { return nil }
func (s *stubUsers) Capabilities(context.Context, string) ([]string, error) { return nil, nil }
func (s *stubUsers) SetCapabilities(context.Context, string, []string) error { return nil }

type stubTenants struct{ items []*entity.Tenant }

func (s *stubTenants) Create(context.Context, *entity.Tenant) error { return nil }

func (s *stubTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (s *stubTenants) List(context.Context) ([]*entity.Tenant, error) { return s.items, nil }

type stubLocations struct{ items []*entity.Location }

func (s *stubLocations) Create(context.Context, *entity.Location) error { return nil }

func (s *stubLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	for _, l := range s.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (s *stubLocations) GetCentral(context.Context, string) (*entity.Location, error) { return nil, nil }

func (s *stubLocations) ListByTenant(_ context.Context, tenantID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range s.items {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	return out, nil
}

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &stubUsers{
		users: []*entity.User{
			{ID: "u1", Email: "ana@bar.com", PasswordHash: string(hash), Status: entity.UserActive},
			{ID: "u2", Email: "off@bar.com", PasswordHash: string(hash), Status: entity.UserInactive},
			{ID: "root", Email: "root@bar.com", PasswordHash: string(hash), Status: entity.UserActive, Superuser: true},
		},
		access: []*entity.UserAccess{{UserID: "u1", TenantID: "t1", LocationIDs: []string{"a"}}},
	}
	tenants := &stubTenants{items: []*entity.Tenant{{ID: "t1", Name: "Centro"}, {ID: "t2", Name: "Praia"}}}
	locs := &stubLocations{items: []*entity.Location{
		{ID: "a", TenantID: "t1", Name: "Bar A"},
		{ID: "b", TenantID: "t1", Name: "Bar B"},
		{ID: "z", TenantID: "t2", Name: "Bar Z"},
	}}
	return NewAuthUseCase(users, tenants, locs, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@bar.com", Password: "segredo123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Empty(t, claims.TenantID, "el login no elige alcance")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@bar.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ghost@bar.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "off@bar.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListScopes(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	opts, err := uc.ListScopes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Bar A", opts[0].LocationName)

	opts, err = uc.ListScopes(ctx, "root")
	require.NoError(t, err)
	assert.Len(t, opts, 3)
	assert.Equal(t, "Centro", opts[0].TenantName)
}

func TestSelectScope(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	out, err := uc.SelectScope(ctx, "u1", dto.SelectScopeRequest{TenantID: "t1", LocationID: "a"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "t1", claims.TenantID)
	assert.Equal(t, "a", claims.LocationID)

	_, err = uc.SelectScope(ctx, "u1", dto.SelectScopeRequest{TenantID: "t1", LocationID: "b"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.SelectScope(ctx, "u1", dto.SelectScopeRequest{TenantID: "t2", LocationID: "a"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el bar no pertenece al restaurante")

	_, err = uc.SelectScope(ctx, "root", dto.SelectScopeRequest{TenantID: "t2", LocationID: "z"})
	assert.NoError(t, err)
}
