package auth

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y selección de alcance (restaurante + bar).
type AuthUseCase struct {
	userRepo     repository.UserRepository
	tenantRepo   repository.TenantRepository
	locationRepo repository.LocationRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, locationRepo repository.LocationRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, locationRepo: locationRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite un token sin alcance.
// Usuario inexistente y password inválida devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, "", "", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ListScopes bares que el usuario puede elegir. El superusuario ve todos.
func (uc *AuthUseCase) ListScopes(ctx context.Context, userID string) ([]dto.ScopeOption, error) {
	user, err := uc.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var tenants []*entity.Tenant
	allowed := map[string]*entity.UserAccess{}
	if user.Superuser {
		if tenants, err = uc.tenantRepo.List(ctx); err != nil {
			return nil, err
		}
	} else {
		accesses, err := uc.userRepo.ListAccess(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, a := range accesses {
			t, err := uc.tenantRepo.GetByID(ctx, a.TenantID)
			if err != nil {
				return nil, err
			}
			if t != nil {
				tenants = append(tenants, t)
				allowed[t.ID] = a
			}
		}
	}

	var out []dto.ScopeOption
	for _, t := range tenants {
		locs, err := uc.locationRepo.ListByTenant(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range locs {
			if a, ok := allowed[t.ID]; !user.Superuser && (!ok || !a.Allows(l.ID)) {
				continue
			}
			out = append(out, dto.ScopeOption{
				TenantID:     t.ID,
				TenantName:   t.Name,
				LocationID:   l.ID,
				LocationName: l.Name,
				IsCentral:    l.IsCentral,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TenantName != out[j].TenantName {
			return out[i].TenantName < out[j].TenantName
		}
		return out[i].LocationName < out[j].LocationName
	})
	return out, nil
}

// SelectScope valida el acceso al bar y reemite el token con restaurante y bar.
func (uc *AuthUseCase) SelectScope(ctx context.Context, userID string, in dto.SelectScopeRequest) (*dto.ScopeResponse, error) {
	user, err := uc.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.TenantID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil || loc.TenantID != in.TenantID {
		return nil, domain.ErrNotFound
	}
	if !user.Superuser {
		accesses, err := uc.userRepo.ListAccess(ctx, userID)
		if err != nil {
			return nil, err
		}
		granted := false
		for _, a := range accesses {
			if a.TenantID == in.TenantID && a.Allows(in.LocationID) {
				granted = true
				break
			}
		}
		if !granted {
			return nil, domain.ErrForbidden
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, in.TenantID, in.LocationID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.ScopeResponse{Token: token, TenantID: in.TenantID, LocationID: in.LocationID}, nil
}

func (uc *AuthUseCase) activeUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Superuser: u.Superuser,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
