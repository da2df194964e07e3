// Package stock contiene los valores del libro de existencias: pares botellas/dosis y su
// normalización desde entradas de formulario.
package stock

import (
	"strings"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Quantities par independiente de botellas y dosis. Ninguno se convierte en el otro al mutar saldos.
type Quantities struct {
	Bottles decimal.Decimal
	Doses   decimal.Decimal
}

// Of construye un par a partir de enteros (atajo para botellas enteras y dosis enteras).
func Of(bottles, doses int64) Quantities {
	return Quantities{Bottles: decimal.NewFromInt(bottles), Doses: decimal.NewFromInt(doses)}
}

// Zero par vacío.
func Zero() Quantities {
	return Quantities{Bottles: decimal.Zero, Doses: decimal.Zero}
}

// IsZero indica que no se pidió ninguna cantidad.
func (q Quantities) IsZero() bool {
	return q.Bottles.IsZero() && q.Doses.IsZero()
}

// IsNegative indica que alguno de los dos campos es negativo.
func (q Quantities) IsNegative() bool {
	return q.Bottles.IsNegative() || q.Doses.IsNegative()
}

// Validate rechaza cantidades negativas. Cero se acepta (no-op en Add/Withdraw).
func (q Quantities) Validate() error {
	if q.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Covers verifica por separado que cada campo alcance para lo pedido.
func (q Quantities) Covers(req Quantities) bool {
	return q.Bottles.GreaterThanOrEqual(req.Bottles) && q.Doses.GreaterThanOrEqual(req.Doses)
}

// Plus suma campo a campo.
func (q Quantities) Plus(o Quantities) Quantities {
	return Quantities{Bottles: q.Bottles.Add(o.Bottles), Doses: q.Doses.Add(o.Doses)}
}

// Minus resta campo a campo (sin validar signo).
func (q Quantities) Minus(o Quantities) Quantities {
	return Quantities{Bottles: q.Bottles.Sub(o.Bottles), Doses: q.Doses.Sub(o.Doses)}
}

// Equal compara numéricamente ambos campos.
func (q Quantities) Equal(o Quantities) bool {
	return q.Bottles.Equal(o.Bottles) && q.Doses.Equal(o.Doses)
}

// ParseQuantity interpreta un número de formulario. Acepta coma decimal ("1,5").
func ParseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}

// ClampQuantity convierte entrada inválida o negativa en cero.
func ClampQuantity(s string) decimal.Decimal {
	d, err := ParseQuantity(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampBottles igual que ClampQuantity pero truncando a botellas enteras.
func ClampBottles(s string) decimal.Decimal {
	return ClampQuantity(s).Truncate(0)
}

// ParseCountLine interpreta una línea de conteo. blank=true si ambos campos vinieron vacíos
// (la línea se ignora, no se considera conteo en cero).
func ParseCountLine(bottles, doses string) (q Quantities, blank bool) {
	if strings.TrimSpace(bottles) == "" && strings.TrimSpace(doses) == "" {
		return Zero(), true
	}
	return Quantities{Bottles: ClampBottles(bottles), Doses: ClampQuantity(doses)}, false
}
