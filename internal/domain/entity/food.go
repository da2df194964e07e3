package entity

import "time"

// Unidades de alimentos.
const (
	FoodUnitPiece   = "un"
	FoodUnitKg      = "kg"
	FoodUnitGram    = "g"
	FoodUnitPortion = "porcao"
	FoodUnitLiter   = "l"
	FoodUnitML      = "ml"
)

// Food alimento consumido en eventos (catálogo global, sin saldo en bares).
type Food struct {
	ID        string
	Code      string
	Name      string
	Unit      string
	Active    bool
	CreatedAt time.Time
}

// ValidFoodUnit indica si la unidad es conocida.
func ValidFoodUnit(u string) bool {
	switch u {
	case FoodUnitPiece, FoodUnitKg, FoodUnitGram, FoodUnitPortion, FoodUnitLiter, FoodUnitML:
		return true
	}
	return false
}
