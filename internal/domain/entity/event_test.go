package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/domain"
)

func TestEvent_FinalizeYEdicion(t *testing.T) {
	e := &Event{Status: EventOpen}
	require.NoError(t, e.EnsureEditable())

	require.NoError(t, e.Finalize("sup", time.Now()))
	assert.True(t, e.IsFinalized())
	assert.Equal(t, "sup", *e.FinalizedBy)

	assert.ErrorIs(t, e.EnsureEditable(), domain.ErrEventFinalized)
	assert.ErrorIs(t, e.Finalize("sup", time.Now()), domain.ErrEventFinalized)
}

func TestEvent_WriteOffRequiereFinalizado(t *testing.T) {
	e := &Event{Status: EventOpen}
	assert.ErrorIs(t, e.MarkWrittenOff("u1", "", time.Now()), domain.ErrEventNotFinalized)

	require.NoError(t, e.Finalize("u1", time.Now()))
	require.NoError(t, e.MarkWrittenOff("u1", "baixado no sistema", time.Now()))
	assert.True(t, e.StockWrittenOff)
	assert.ErrorIs(t, e.MarkWrittenOff("u1", "", time.Now()), domain.ErrAlreadyWrittenOff)

	require.NoError(t, e.UnmarkWrittenOff())
	assert.False(t, e.StockWrittenOff)
	assert.ErrorIs(t, e.UnmarkWrittenOff(), domain.ErrNotWrittenOff)
}

func TestDefaultEventName(t *testing.T) {
	at := time.Date(2026, 7, 4, 21, 5, 0, 0, time.UTC)
	assert.Equal(t, "Evento 04/07 21:05", DefaultEventName(at))
}
