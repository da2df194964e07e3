package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategorySpirit = "DESTILADO"
	CategoryBeer   = "CERVEJA"
	CategoryWine   = "VINHO"
	CategoryOther  = "OUTRO"
)

// DefaultDoseSizeML tamaño de dosis estándar.
var DefaultDoseSizeML = decimal.NewFromInt(50)

// Product entrada del catálogo global de bebidas (no pertenece a un restaurante).
type Product struct {
	ID             string
	Code           string
	Name           string
	UnitMeasure    string
	Category       string
	BottleVolumeML *decimal.Decimal
	DoseSizeML     decimal.Decimal
	DosesPerBottle *int // valor explícito usado cuando no hay volumen
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveDosesPerBottle deriva dosis por botella de volumen/dosis cuando ambos existen;
// si no, usa el valor guardado. ok=false si no hay forma de calcularlo.
func (p *Product) EffectiveDosesPerBottle() (n int, ok bool) {
	if p.BottleVolumeML != nil && p.BottleVolumeML.IsPositive() && p.DoseSizeML.IsPositive() {
		return int(p.BottleVolumeML.Div(p.DoseSizeML).Floor().IntPart()), true
	}
	if p.DosesPerBottle != nil {
		return *p.DosesPerBottle, true
	}
	return 0, false
}

// DoseSize devuelve el tamaño de dosis o el estándar si no está configurado.
func (p *Product) DoseSize() decimal.Decimal {
	if p.DoseSizeML.IsPositive() {
		return p.DoseSizeML
	}
	return DefaultDoseSizeML
}

// ValidCategory indica si la categoría es conocida.
func ValidCategory(c string) bool {
	switch c {
	case CategorySpirit, CategoryBeer, CategoryWine, CategoryOther:
		return true
	}
	return false
}
