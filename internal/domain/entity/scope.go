package entity

import "github.com/jhoicas/barstock-api/internal/domain"

// Scope contexto explícito de cada operación: quién actúa y sobre qué restaurante/bar.
type Scope struct {
	UserID     string
	TenantID   string
	LocationID string
}

// RequireLocation falla si no hay restaurante y bar seleccionados.
func (s Scope) RequireLocation() error {
	if s.UserID == "" {
		return domain.ErrUnauthorized
	}
	if s.TenantID == "" || s.LocationID == "" {
		return domain.ErrScopeRequired
	}
	return nil
}

// RequireTenant falla si no hay restaurante seleccionado.
func (s Scope) RequireTenant() error {
	if s.UserID == "" {
		return domain.ErrUnauthorized
	}
	if s.TenantID == "" {
		return domain.ErrScopeRequired
	}
	return nil
}
