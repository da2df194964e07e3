package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/access"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength largo mínimo de la contraseña.
const MinPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios, sus accesos y capacidades.
type UserUseCase struct {
	repo      repository.UserRepository
	tenants   repository.TenantRepository
	locations repository.LocationRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, tenants repository.TenantRepository, locations repository.LocationRepository) *UserUseCase {
	return &UserUseCase{repo: repo, tenants: tenants, locations: locations}
}

// Register crea un usuario: hashea password con bcrypt y guarda sus capacidades.
func (uc *UserUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	caps, err := normalizeCapabilities(in.Capabilities)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Superuser:    in.Superuser,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(caps) > 0 {
		if err := uc.repo.SetCapabilities(ctx, user.ID, caps); err != nil {
			return nil, err
		}
	}
	return entityToUserResponse(user, caps), nil
}

// GetByID obtiene un usuario por ID con sus capacidades.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	caps, err := uc.repo.Capabilities(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user, caps), nil
}

// GrantAccess reemplaza los bares de un restaurante habilitados para el usuario.
// Todos los bares deben pertenecer a ese restaurante.
func (uc *UserUseCase) GrantAccess(ctx context.Context, userID string, in dto.SetAccessRequest) error {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	tenant, err := uc.tenants.GetByID(ctx, in.TenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.ErrNotFound
	}
	seen := map[string]bool{}
	ids := make([]string, 0, len(in.LocationIDs))
	for _, id := range in.LocationIDs {
		if seen[id] {
			continue
		}
		loc, err := uc.locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil || loc.TenantID != in.TenantID {
			return domain.ErrInvalidInput
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return uc.repo.SetAccess(ctx, &entity.UserAccess{UserID: userID, TenantID: in.TenantID, LocationIDs: ids})
}

// SetCapabilities reemplaza las capacidades del usuario.
func (uc *UserUseCase) SetCapabilities(ctx context.Context, userID string, in dto.SetCapabilitiesRequest) error {
	caps, err := normalizeCapabilities(in.Capabilities)
	if err != nil {
		return err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetCapabilities(ctx, userID, caps)
}

func normalizeCapabilities(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, c := range in {
		c = strings.ToLower(strings.TrimSpace(c))
		if !access.Valid(access.Capability(c)) {
			return nil, domain.ErrInvalidInput
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func entityToUserResponse(u *entity.User, caps []string) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Superuser:    u.Superuser,
		Status:       u.Status,
		Capabilities: caps,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
