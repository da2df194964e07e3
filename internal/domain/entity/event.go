package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EventStatus estado de un evento.
type EventStatus string

const (
	EventOpen      EventStatus = "OPEN"
	EventFinalized EventStatus = "FINALIZED"
)

// Event registra el consumo planeado/real de bebidas y alimentos de una función.
// El consumo es informativo: no debita saldos. StockWrittenOff es una marca manual del personal.
type Event struct {
	ID            string
	Name          string
	TenantID      *string
	ResponsibleID string
	Guests        *int
	Hours         *decimal.Decimal
	EventDate     time.Time
	Status        EventStatus
	CreatedAt     time.Time
	FinalizedAt   *time.Time
	FinalizedBy   *string

	StockWrittenOff bool
	WrittenOffBy    *string
	WrittenOffAt    *time.Time
	WriteOffNote    string

	Products []EventProduct
	Foods    []EventFood
}

// EventProduct bebida consumida en un evento (enteros no negativos).
type EventProduct struct {
	ID        string
	EventID   string
	ProductID string
	Bottles   int
	Doses     int
}

// EventFood alimento consumido en un evento.
type EventFood struct {
	ID       string
	EventID  string
	FoodID   string
	Quantity decimal.Decimal
}

// DefaultEventName nombre por defecto "Evento dd/mm HH:MM".
func DefaultEventName(at time.Time) string {
	return fmt.Sprintf("Evento %s", at.Format("02/01 15:04"))
}

// IsFinalized indica si el evento ya no admite edición.
func (e *Event) IsFinalized() bool {
	return e.Status == EventFinalized
}

// EnsureEditable falla si el evento ya fue finalizado.
func (e *Event) EnsureEditable() error {
	if e.IsFinalized() {
		return domain.ErrEventFinalized
	}
	return nil
}

// Finalize OPEN -> FINALIZED. No toca saldos.
func (e *Event) Finalize(userID string, at time.Time) error {
	if err := e.EnsureEditable(); err != nil {
		return err
	}
	e.Status = EventFinalized
	e.FinalizedAt = &at
	e.FinalizedBy = &userID
	return nil
}

// MarkWrittenOff marca que el personal ya dio de baja el stock del evento. Requiere FINALIZED.
func (e *Event) MarkWrittenOff(userID, note string, at time.Time) error {
	if !e.IsFinalized() {
		return domain.ErrEventNotFinalized
	}
	if e.StockWrittenOff {
		return domain.ErrAlreadyWrittenOff
	}
	note = strings.TrimSpace(note)
	if len([]rune(note)) > MaxWriteOffNote {
		return domain.ErrInvalidInput
	}
	e.StockWrittenOff = true
	e.WrittenOffBy = &userID
	e.WrittenOffAt = &at
	e.WriteOffNote = note
	return nil
}

// UnmarkWrittenOff quita la marca de baja.
func (e *Event) UnmarkWrittenOff() error {
	if !e.StockWrittenOff {
		return domain.ErrNotWrittenOff
	}
	e.StockWrittenOff = false
	e.WrittenOffBy = nil
	e.WrittenOffAt = nil
	e.WriteOffNote = ""
	return nil
}

// EventConsumption consolidado de consumo de un producto en un rango de eventos.
type EventConsumption struct {
	ProductID   string
	ProductName string
	Bottles     int64
	Doses       int64
	ML          decimal.Decimal
}

// EventFoodConsumption consolidado de consumo de un alimento.
type EventFoodConsumption struct {
	FoodID   string
	FoodName string
	Unit     string
	Quantity decimal.Decimal
}
