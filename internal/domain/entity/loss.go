package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// LossReason motivo de una pérdida.
type LossReason string

const (
	LossBreakage LossReason = "BREAKAGE"
	LossSpillage LossReason = "SPILLAGE"
	LossExpired  LossReason = "EXPIRED"
	LossCourtesy LossReason = "COURTESY"
	LossOther    LossReason = "OTHER"
)

// MaxWriteOffNote longitud máxima de la observación de baja.
const MaxWriteOffNote = 255

var lossReasonAliases = map[string]LossReason{
	"BREAKAGE":     LossBreakage,
	"QUEBRA":       LossBreakage,
	"ROTURA":       LossBreakage,
	"SPILLAGE":     LossSpillage,
	"DERRAMAMENTO": LossSpillage,
	"DERRAME":      LossSpillage,
	"EXPIRED":      LossExpired,
	"VENCIDO":      LossExpired,
	"VENCIMENTO":   LossExpired,
	"VALIDADE":     LossExpired,
	"COURTESY":     LossCourtesy,
	"CORTESIA":     LossCourtesy,
	"OTHER":        LossOther,
	"OUTRO":        LossOther,
	"OTRO":         LossOther,
}

// LookupLossReason motivo conocido o false. Sirve para filtros, donde un valor desconocido es un error.
func LookupLossReason(s string) (LossReason, bool) {
	r, ok := lossReasonAliases[stock.NormalizeReason(s)]
	return r, ok
}

// ParseLossReason normaliza el motivo (acentos, mayúsculas, alias en pt/es). Desconocido o vacío -> OTHER.
func ParseLossReason(s string) LossReason {
	if r, ok := lossReasonAliases[stock.NormalizeReason(s)]; ok {
		return r
	}
	return LossOther
}

// Loss pérdida registrada con foto del saldo antes y después del débito.
type Loss struct {
	ID           string
	TenantID     string
	LocationID   string
	ProductID    string
	Bottles      decimal.Decimal
	Doses        decimal.Decimal
	Reason       LossReason
	Note         string
	UserID       string
	RegisteredAt time.Time
	Before       stock.Quantities
	After        stock.Quantities

	WrittenOff   bool
	WrittenOffAt *time.Time
	WrittenOffBy *string
	WriteOffNote string
}

// Quantities cantidad perdida.
func (l *Loss) Quantities() stock.Quantities {
	return stock.Quantities{Bottles: l.Bottles, Doses: l.Doses}
}

// SameDay indica si la pérdida fue registrada el mismo día calendario que now en loc.
func (l *Loss) SameDay(now time.Time, loc *time.Location) bool {
	y1, m1, d1 := l.RegisteredAt.In(loc).Date()
	y2, m2, d2 := now.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MarkWrittenOff marca la pérdida como dada de baja.
func (l *Loss) MarkWrittenOff(userID, note string, at time.Time) error {
	if l.WrittenOff {
		return domain.ErrAlreadyWrittenOff
	}
	note = strings.TrimSpace(note)
	if len([]rune(note)) > MaxWriteOffNote {
		return domain.ErrInvalidInput
	}
	l.WrittenOff = true
	l.WrittenOffAt = &at
	l.WrittenOffBy = &userID
	l.WriteOffNote = note
	return nil
}

// UnmarkWrittenOff revierte la marca de baja.
func (l *Loss) UnmarkWrittenOff() error {
	if !l.WrittenOff {
		return domain.ErrNotWrittenOff
	}
	l.WrittenOff = false
	l.WrittenOffAt = nil
	l.WrittenOffBy = nil
	l.WriteOffNote = ""
	return nil
}
