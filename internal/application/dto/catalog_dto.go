package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenantRequest entrada para crear un restaurante.
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// TenantResponse salida de un restaurante.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLocationRequest entrada para crear un bar.
type CreateLocationRequest struct {
	TenantID  string `json:"tenant_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	IsCentral bool   `json:"is_central"`
}

// LocationResponse salida de un bar.
type LocationResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	IsCentral bool      `json:"is_central"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest entrada para crear una bebida del catálogo.
type CreateProductRequest struct {
	Code           string           `json:"code" validate:"required,min=1,max=50"`
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure    string           `json:"unit_measure"`
	Category       string           `json:"category" validate:"omitempty,oneof=DESTILADO CERVEJA VINHO OUTRO"`
	BottleVolumeML *decimal.Decimal `json:"bottle_volume_ml"`
	DoseSizeML     *decimal.Decimal `json:"dose_size_ml"`
	DosesPerBottle *int             `json:"doses_per_bottle"`
	Active         *bool            `json:"active"`
}

// UpdateProductRequest entrada para actualizar una bebida.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitMeasure    *string          `json:"unit_measure"`
	Category       *string          `json:"category"`
	BottleVolumeML *decimal.Decimal `json:"bottle_volume_ml"`
	DoseSizeML     *decimal.Decimal `json:"dose_size_ml"`
	DosesPerBottle *int             `json:"doses_per_bottle"`
	Active         *bool            `json:"active"`
}

// ProductResponse salida de una bebida.
type ProductResponse struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	UnitMeasure    string           `json:"unit_measure"`
	Category       string           `json:"category"`
	BottleVolumeML *decimal.Decimal `json:"bottle_volume_ml,omitempty"`
	DoseSizeML     decimal.Decimal  `json:"dose_size_ml"`
	DosesPerBottle *int             `json:"doses_per_bottle,omitempty"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse lista de bebidas.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// CreateFoodRequest entrada para crear un alimento.
type CreateFoodRequest struct {
	Code string `json:"code" validate:"required,min=1,max=50"`
	Name string `json:"name" validate:"required,min=1,max=200"`
	Unit string `json:"unit" validate:"max=20"` // acepta sinónimos; vacío = un
}

// FoodResponse salida de un alimento.
type FoodResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Active bool   `json:"active"`
}

// ProvisionResponse filas de saldo creadas o faltantes.
type ProvisionResponse struct {
	Missing int64 `json:"missing"`
	Created int64 `json:"created"`
	DryRun  bool  `json:"dry_run"`
}
