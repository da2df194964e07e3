package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=8"`
	Name         string   `json:"name" validate:"omitempty,max=200"`
	Superuser    bool     `json:"superuser"`
	Capabilities []string `json:"capabilities"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Superuser    bool      `json:"superuser"`
	Status       string    `json:"status"`
	Capabilities []string  `json:"capabilities,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetAccessRequest bares de un restaurante habilitados para el usuario.
type SetAccessRequest struct {
	TenantID    string   `json:"tenant_id" validate:"required"`
	LocationIDs []string `json:"location_ids"`
}

// SetCapabilitiesRequest reemplaza las capacidades del usuario.
type SetCapabilitiesRequest struct {
	Capabilities []string `json:"capabilities"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token sin alcance; se elige restaurante/bar después.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ScopeOption un bar elegible por el usuario.
type ScopeOption struct {
	TenantID     string `json:"tenant_id"`
	TenantName   string `json:"tenant_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	IsCentral    bool   `json:"is_central"`
}

// SelectScopeRequest selección de restaurante y bar.
type SelectScopeRequest struct {
	TenantID   string `json:"tenant_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
}

// ScopeResponse token reemitido con el alcance elegido.
type ScopeResponse struct {
	Token      string `json:"token"`
	TenantID   string `json:"tenant_id"`
	LocationID string `json:"location_id"`
}
