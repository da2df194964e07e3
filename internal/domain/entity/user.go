package entity

import "time"

// Estados de usuario.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa un usuario del sistema. El alcance (restaurante/bar) se da por UserAccess.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Superuser    bool
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserAccess bares de un restaurante a los que el usuario tiene acceso.
type UserAccess struct {
	UserID      string
	TenantID    string
	LocationIDs []string
}

// Allows indica si el acceso incluye el bar dado.
func (a *UserAccess) Allows(locationID string) bool {
	for _, id := range a.LocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}
