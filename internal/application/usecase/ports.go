package usecase

import "github.com/jhoicas/barstock-api/internal/domain/entity"

// ProvisioningHooks se invocan después del commit de un alta; no bloquean ni revierten el alta.
type ProvisioningHooks interface {
	ProductCreated(p *entity.Product)
	LocationCreated(l *entity.Location)
}

type noopHooks struct{}

func (noopHooks) ProductCreated(*entity.Product)   {}
func (noopHooks) LocationCreated(*entity.Location) {}
