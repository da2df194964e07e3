package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountSnapshot un conteo dentro del reporte de diferencias.
type CountSnapshot struct {
	Bottles   decimal.Decimal `json:"bottles"`
	Doses     decimal.Decimal `json:"doses"`
	CountedAt time.Time       `json:"counted_at"`
}

// CountDifferenceRow último conteo vs. anterior para un producto en un bar.
type CountDifferenceRow struct {
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Last         CountSnapshot   `json:"last"`
	Previous     *CountSnapshot  `json:"previous,omitempty"`
	BottlesDiff  decimal.Decimal `json:"bottles_diff"`
	DosesDiff    decimal.Decimal `json:"doses_diff"`
}

// CountDifferenceTotal diferencia acumulada de un producto en todos los bares.
type CountDifferenceTotal struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BottlesDiff decimal.Decimal `json:"bottles_diff"`
	DosesDiff   decimal.Decimal `json:"doses_diff"`
}

// CountDifferenceResponse reporte de diferencias con totales por producto.
type CountDifferenceResponse struct {
	Rows   []CountDifferenceRow   `json:"rows"`
	Totals []CountDifferenceTotal `json:"totals"`
}

// LossSubtotal pérdidas agrupadas por producto o por bar.
type LossSubtotal struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Count int                `json:"count"`
	Total QuantitiesResponse `json:"total"`
}

// LossReportResponse listado de pérdidas con subtotales.
type LossReportResponse struct {
	LossListResponse
	ByProduct  []LossSubtotal `json:"by_product"`
	ByLocation []LossSubtotal `json:"by_location"`
}

// CurrentCountRow último conteo de un producto en un bar.
type CurrentCountRow struct {
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	ProductID    string          `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Bottles      decimal.Decimal `json:"bottles"`
	Doses        decimal.Decimal `json:"doses"`
	CountedAt    time.Time       `json:"counted_at"`
}

// ProductTotal total de un producto en el restaurante.
type ProductTotal struct {
	ProductID   string             `json:"product_id"`
	ProductCode string             `json:"product_code"`
	ProductName string             `json:"product_name"`
	Total       QuantitiesResponse `json:"total"`
}

// CurrentCountResponse conteo actual del restaurante.
type CurrentCountResponse struct {
	Window string            `json:"window"`
	From   *time.Time        `json:"from,omitempty"`
	To     *time.Time        `json:"to,omitempty"`
	Rows   []CurrentCountRow `json:"rows"`
	Totals []ProductTotal    `json:"totals"`
}

// OutflowRow requisición decidida en el reporte de salidas.
type OutflowRow struct {
	RequisitionResponse
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
}

// StockOutflowResponse salidas del central hacia el bar.
type StockOutflowResponse struct {
	From     *time.Time      `json:"from,omitempty"`
	To       *time.Time      `json:"to,omitempty"`
	Items    []OutflowRow    `json:"items"`
	Approved decimal.Decimal `json:"approved_bottles"`
}

// RequisitionCountRow aprobado vs. contado de un producto en un día.
type RequisitionCountRow struct {
	Day         string             `json:"day"`
	ProductID   string             `json:"product_id"`
	ProductCode string             `json:"product_code"`
	ProductName string             `json:"product_name"`
	Requested   decimal.Decimal    `json:"requested_bottles"`
	Counted     QuantitiesResponse `json:"counted"`
	HasCount    bool               `json:"has_count"`
	Difference  decimal.Decimal    `json:"difference"`
}

// RequisitionCountResponse consolidado mensual del bar.
type RequisitionCountResponse struct {
	From time.Time             `json:"from"`
	To   time.Time             `json:"to"`
	Rows []RequisitionCountRow `json:"rows"`
}
