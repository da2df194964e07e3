package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineErrorResponse error de una línea dentro de un lote.
type LineErrorResponse struct {
	Ref     string `json:"ref"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResponse resultado de un lote: líneas aplicadas y líneas rechazadas.
type BatchResponse[T any] struct {
	Applied []T                 `json:"applied"`
	Skipped int                 `json:"skipped,omitempty"`
	Errors  []LineErrorResponse `json:"errors"`
}

// QuantitiesResponse botellas y dosis.
type QuantitiesResponse struct {
	Bottles decimal.Decimal `json:"bottles"`
	Doses   decimal.Decimal `json:"doses"`
}

// QuantityText cantidad tal como llegó en el JSON (número o texto). Se interpreta por línea,
// así un valor inválido rechaza solo su línea y no el cuerpo entero.
type QuantityText string

// UnmarshalJSON acepta 2, 2.5, "2,5", "abc" o null.
func (q *QuantityText) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*q = ""
	case strings.HasPrefix(s, `"`):
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*q = QuantityText(u)
	default:
		*q = QuantityText(s)
	}
	return nil
}

// String texto original.
func (q QuantityText) String() string { return string(q) }
