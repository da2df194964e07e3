package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_EffectiveDosesPerBottle(t *testing.T) {
	vol := decimal.NewFromInt(750)
	stored := 20

	p := &Product{BottleVolumeML: &vol, DoseSizeML: decimal.NewFromInt(50), DosesPerBottle: &stored}
	n, ok := p.EffectiveDosesPerBottle()
	assert.True(t, ok)
	assert.Equal(t, 15, n, "volumen/dosis tiene prioridad sobre el valor guardado")

	p = &Product{DoseSizeML: decimal.NewFromInt(50), DosesPerBottle: &stored}
	n, ok = p.EffectiveDosesPerBottle()
	assert.True(t, ok)
	assert.Equal(t, 20, n)

	p = &Product{DoseSizeML: decimal.NewFromInt(50)}
	_, ok = p.EffectiveDosesPerBottle()
	assert.False(t, ok)
}

func TestProduct_DoseSizeDefault(t *testing.T) {
	p := &Product{}
	assert.True(t, p.DoseSize().Equal(DefaultDoseSizeML))
}
