package repository

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User, accesos y capacidades.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListAccess(ctx context.Context, userID string) ([]*entity.UserAccess, error)
	// SetAccess reemplaza los bares habilitados del usuario en un restaurante.
	SetAccess(ctx context.Context, access *entity.UserAccess) error
	Capabilities(ctx context.Context, userID string) ([]string, error)
	SetCapabilities(ctx context.Context, userID string, caps []string) error
}
