package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// EventProductRequest bebida de un evento.
type EventProductRequest struct {
	ProductID string `json:"product_id"`
	Bottles   int    `json:"bottles"`
	Doses     int    `json:"doses"`
}

// EventFoodRequest alimento de un evento.
type EventFoodRequest struct {
	FoodID   string          `json:"food_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateEventRequest body de POST /api/events.
type CreateEventRequest struct {
	Name      string                `json:"name"`
	TenantID  *string               `json:"tenant_id"`
	Guests    *int                  `json:"guests"`
	Hours     *decimal.Decimal      `json:"hours"`
	EventDate *time.Time            `json:"event_date"`
	Products  []EventProductRequest `json:"products"`
	Foods     []EventFoodRequest    `json:"foods"`
}

// UpdateEventRequest body de PUT /api/events/:id.
type UpdateEventRequest struct {
	Guests           *int                  `json:"guests"`
	Hours            *decimal.Decimal      `json:"hours"`
	RemoveProductIDs []string              `json:"remove_product_ids"`
	RemoveFoodIDs    []string              `json:"remove_food_ids"`
	Products         []EventProductRequest `json:"products"`
	Foods            []EventFoodRequest    `json:"foods"`
}

// EventProductResponse ítem de bebida.
type EventProductResponse struct {
	ProductID string `json:"product_id"`
	Bottles   int    `json:"bottles"`
	Doses     int    `json:"doses"`
}

// EventFoodResponse ítem de alimento.
type EventFoodResponse struct {
	FoodID   string          `json:"food_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	TenantID        *string                `json:"tenant_id,omitempty"`
	ResponsibleID   string                 `json:"responsible_id"`
	Guests          *int                   `json:"guests,omitempty"`
	Hours           *decimal.Decimal       `json:"hours,omitempty"`
	EventDate       time.Time              `json:"event_date"`
	Status          string                 `json:"status"`
	FinalizedAt     *time.Time             `json:"finalized_at,omitempty"`
	FinalizedBy     *string                `json:"finalized_by,omitempty"`
	StockWrittenOff bool                   `json:"stock_written_off"`
	WrittenOffBy    *string                `json:"written_off_by,omitempty"`
	WrittenOffAt    *time.Time             `json:"written_off_at,omitempty"`
	WriteOffNote    string                 `json:"write_off_note,omitempty"`
	Products        []EventProductResponse `json:"products"`
	Foods           []EventFoodResponse    `json:"foods"`
}

// FromEvent mapea un evento con sus ítems.
func FromEvent(e *entity.Event) EventResponse {
	out := EventResponse{
		ID:              e.ID,
		Name:            e.Name,
		TenantID:        e.TenantID,
		ResponsibleID:   e.ResponsibleID,
		Guests:          e.Guests,
		Hours:           e.Hours,
		EventDate:       e.EventDate,
		Status:          string(e.Status),
		FinalizedAt:     e.FinalizedAt,
		FinalizedBy:     e.FinalizedBy,
		StockWrittenOff: e.StockWrittenOff,
		WrittenOffBy:    e.WrittenOffBy,
		WrittenOffAt:    e.WrittenOffAt,
		WriteOffNote:    e.WriteOffNote,
		Products:        make([]EventProductResponse, 0, len(e.Products)),
		Foods:           make([]EventFoodResponse, 0, len(e.Foods)),
	}
	for _, p := range e.Products {
		out.Products = append(out.Products, EventProductResponse{ProductID: p.ProductID, Bottles: p.Bottles, Doses: p.Doses})
	}
	for _, f := range e.Foods {
		out.Foods = append(out.Foods, EventFoodResponse{FoodID: f.FoodID, Quantity: f.Quantity})
	}
	return out
}

// EventConsumptionResponse consumo consolidado de una bebida.
type EventConsumptionResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Bottles     int64           `json:"bottles"`
	Doses       int64           `json:"doses"`
	ML          decimal.Decimal `json:"ml"`
}

// EventFoodConsumptionResponse consumo consolidado de un alimento.
type EventFoodConsumptionResponse struct {
	FoodID   string          `json:"food_id"`
	FoodName string          `json:"food_name"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// EventConsolidatedResponse consumo de los eventos de un período.
type EventConsolidatedResponse struct {
	From     time.Time                      `json:"from"`
	To       time.Time                      `json:"to"`
	Products []EventConsumptionResponse     `json:"products"`
	Foods    []EventFoodConsumptionResponse `json:"foods"`
}
