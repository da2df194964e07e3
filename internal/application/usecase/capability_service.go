package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/access"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// CapabilityService resuelve el principal (superusuario + capacidades) de un usuario.
// La decisión en sí es access.HasCapability; aquí solo se carga el estado guardado.
type CapabilityService struct {
	users repository.UserRepository
}

// NewCapabilityService construye el servicio.
func NewCapabilityService(users repository.UserRepository) *CapabilityService {
	return &CapabilityService{users: users}
}

// Principal devuelve el principal del usuario. Usuario inexistente -> ErrUnauthorized,
// inactivo -> ErrForbidden. Otros errores son de infraestructura.
func (s *CapabilityService) Principal(ctx context.Context, userID string) (access.Principal, error) {
	if userID == "" {
		return access.Principal{}, domain.ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return access.Principal{}, fmt.Errorf("capability: cargar usuario: %w", err)
	}
	if user == nil {
		return access.Principal{}, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return access.Principal{}, domain.ErrForbidden
	}
	caps, err := s.users.Capabilities(ctx, userID)
	if err != nil {
		return access.Principal{}, fmt.Errorf("capability: cargar capacidades: %w", err)
	}
	return access.NewPrincipal(user.ID, user.Superuser, caps), nil
}
