package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/domain"
)

func TestCount_SobrescribeSaldo(t *testing.T) {
	env := newTestEnv(t)
	env.store.setBalance(barA, prodX, q(7, 30))
	uc := NewCountUseCase(env.store, env.repos, env.log)
	at := time.Date(2026, 1, 5, 22, 0, 0, 0, time.UTC)

	c, err := uc.Submit(context.Background(), env.scope(barA), prodX, q(5, 12), "fechamento", at)
	require.NoError(t, err)
	assert.Equal(t, at, c.CountedAt)
	assert.True(t, env.store.balance(barA, prodX).Equal(q(5, 12)), "conteo reemplaza, no suma")

	// Un conteo puede subir el saldo por encima de lo anterior.
	_, err = uc.Submit(context.Background(), env.scope(barA), prodX, q(9, 0), "", time.Time{})
	require.NoError(t, err)
	assert.True(t, env.store.balance(barA, prodX).Equal(q(9, 0)))
}

func TestCount_Rechazos(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCountUseCase(env.store, env.repos, env.log)

	_, err := uc.Submit(context.Background(), env.scope(barA), prodX, q(-1, 0), "", time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Submit(context.Background(), env.scope(barA), "nope", q(1, 0), "", time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, env.store.balanceRows(), "sin efectos (rollback)")
}

func TestCount_SubmitBatch(t *testing.T) {
	env := newTestEnv(t)
	env.store.setBalance(barA, prodX, q(1, 1))
	env.store.setBalance(barA, prodY, q(8, 8))
	uc := NewCountUseCase(env.store, env.repos, env.log)

	out, err := uc.SubmitBatch(context.Background(), env.scope(barA), []CountLine{
		{ProductID: prodX, Bottles: "3", Doses: "2,5"},
		{ProductID: prodY, Bottles: "", Doses: ""}, // en blanco: se ignora
		{ProductID: prodZ, Bottles: "abc", Doses: "-4"},
		{ProductID: "nope", Bottles: "1", Doses: "0"},
	}, "")
	require.NoError(t, err)

	assert.Len(t, out.Applied, 2)
	assert.Equal(t, 1, out.Skipped)
	require.Len(t, out.Errors, 1)
	assert.ErrorIs(t, out.Errors[0].Err, domain.ErrNotFound)

	x := env.store.balance(barA, prodX)
	assert.Equal(t, "3", x.Bottles.String())
	assert.Equal(t, "2.5", x.Doses.String())
	assert.True(t, env.store.balance(barA, prodY).Equal(q(8, 8)), "línea vacía no pone en cero")
	assert.True(t, env.store.balance(barA, prodZ).IsZero(), "inválido cuenta como cero")

	hist, err := uc.History(context.Background(), env.scope(barA), 0)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}
