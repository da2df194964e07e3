package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

func newEventUC(env *testEnv, now time.Time) *EventUseCase {
	uc := NewEventUseCase(env.store, env.repos)
	uc.now = func() time.Time { return now }
	return uc
}

func TestEvent_CreateAgregaLineasYNoDebita(t *testing.T) {
	env := newTestEnv(t)
	env.store.setBalance(barA, prodX, q(5, 5))
	now := time.Date(2026, 3, 2, 20, 30, 0, 0, time.UTC)
	uc := newEventUC(env, now)

	e, err := uc.Create(context.Background(), env.scope(barA), EventInput{
		Products: []EventProductLine{
			{ProductID: prodX, Bottles: 1, Doses: 2},
			{ProductID: prodX, Bottles: -3, Doses: 1},
			{ProductID: "nope", Bottles: 1},
		},
		Foods: []EventFoodLine{{FoodID: foodF, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Evento 02/03 20:30", e.Name)
	assert.Equal(t, entity.EventOpen, e.Status)
	require.NotNil(t, e.TenantID)
	assert.Equal(t, tenantID, *e.TenantID)
	require.Len(t, e.Products, 1, "producto desconocido ignorado")
	assert.Equal(t, 1, e.Products[0].Bottles, "negativos se llevan a cero")
	assert.Equal(t, 3, e.Products[0].Doses)
	require.Len(t, e.Foods, 1)

	assert.True(t, env.store.balance(barA, prodX).Equal(q(5, 5)), "el evento no toca saldos")
}

func TestEvent_UpdateSoloAbierto(t *testing.T) {
	env := newTestEnv(t)
	uc := newEventUC(env, time.Now())
	ctx := context.Background()
	scope := env.scope(barA)

	e, err := uc.Create(ctx, scope, EventInput{
		Name:     "Casamento",
		Products: []EventProductLine{{ProductID: prodX, Bottles: 2}, {ProductID: prodY, Doses: 4}},
	})
	require.NoError(t, err)

	guests := 120
	e, err = uc.Update(ctx, scope, e.ID, EventUpdate{
		Guests:           &guests,
		RemoveProductIDs: []string{prodY},
		SetProducts:      []EventProductLine{{ProductID: prodX, Bottles: 5}, {ProductID: prodZ, Doses: 1}},
		SetFoods:         []EventFoodLine{{FoodID: foodF, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)
	require.NotNil(t, e.Guests)
	assert.Equal(t, 120, *e.Guests)

	byID := map[string]entity.EventProduct{}
	for _, p := range e.Products {
		byID[p.ProductID] = p
	}
	assert.Len(t, byID, 2)
	assert.Equal(t, 5, byID[prodX].Bottles, "la línea nueva reemplaza la existente")
	assert.Equal(t, 1, byID[prodZ].Doses)
	assert.Len(t, e.Foods, 1)

	e, err = uc.Finalize(ctx, scope, e.ID)
	require.NoError(t, err)
	assert.True(t, e.IsFinalized())

	_, err = uc.Update(ctx, scope, e.ID, EventUpdate{Guests: &guests})
	assert.ErrorIs(t, err, domain.ErrEventFinalized)
	_, err = uc.Finalize(ctx, scope, e.ID)
	assert.ErrorIs(t, err, domain.ErrEventFinalized)
	assert.ErrorIs(t, uc.Delete(ctx, scope, e.ID), domain.ErrEventFinalized)
}

func TestEvent_MarcaDeBaja(t *testing.T) {
	env := newTestEnv(t)
	uc := newEventUC(env, time.Now())
	ctx := context.Background()
	scope := env.scope(barA)

	e, err := uc.Create(ctx, scope, EventInput{Name: "Aniversário"})
	require.NoError(t, err)

	_, err = uc.MarkWrittenOff(ctx, scope, e.ID, "baixa manual")
	assert.ErrorIs(t, err, domain.ErrEventNotFinalized)

	_, err = uc.Finalize(ctx, scope, e.ID)
	require.NoError(t, err)

	e, err = uc.MarkWrittenOff(ctx, scope, e.ID, "  baixa manual ")
	require.NoError(t, err)
	assert.True(t, e.StockWrittenOff)
	assert.Equal(t, "baixa manual", e.WriteOffNote)

	_, err = uc.MarkWrittenOff(ctx, scope, e.ID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyWrittenOff)

	e, err = uc.UnmarkWrittenOff(ctx, scope, e.ID)
	require.NoError(t, err)
	assert.False(t, e.StockWrittenOff)
	assert.Nil(t, e.WrittenOffBy)
}

func TestEvent_OtroRestauranteNoVisible(t *testing.T) {
	env := newTestEnv(t)
	uc := newEventUC(env, time.Now())
	ctx := context.Background()

	e, err := uc.Create(ctx, env.scope(barA), EventInput{Name: "Privado"})
	require.NoError(t, err)

	foreign := entity.Scope{UserID: userID, TenantID: otherTen}
	_, err = uc.Get(ctx, foreign, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, foreign, e.ID), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, env.scope(barA), e.ID))
	_, err = uc.Get(ctx, env.scope(barA), e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvent_ListOpenYConsolidado(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	scope := env.scope(barA)
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	uc := newEventUC(env, day)

	d1, d2, outside := day.Add(10*time.Hour), day.Add(30*time.Hour), day.AddDate(0, 1, 0)
	e1, err := uc.Create(ctx, scope, EventInput{Name: "A", EventDate: &d1,
		Products: []EventProductLine{{ProductID: prodX, Bottles: 1, Doses: 3}},
		Foods:    []EventFoodLine{{FoodID: foodF, Quantity: decimal.RequireFromString("1.5")}}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, scope, EventInput{Name: "B", EventDate: &d2,
		Products: []EventProductLine{{ProductID: prodX, Doses: 2}, {ProductID: prodY, Doses: 5}},
		Foods:    []EventFoodLine{{FoodID: foodF, Quantity: decimal.NewFromInt(2)}}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, scope, EventInput{Name: "C", EventDate: &outside,
		Products: []EventProductLine{{ProductID: prodX, Bottles: 9}}})
	require.NoError(t, err)

	_, err = uc.Finalize(ctx, scope, e1.ID)
	require.NoError(t, err)

	tid := tenantID
	open, err := uc.ListOpen(ctx, scope, &tid, 0, 0)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	cons, err := uc.Consolidated(ctx, scope, day, day.AddDate(0, 0, 7), &tid)
	require.NoError(t, err)
	require.Len(t, cons.Products, 2)

	// Ordenado por nombre: Gin (X) antes que Rum (Y).
	gin, rum := cons.Products[0], cons.Products[1]
	assert.Equal(t, prodX, gin.ProductID)
	assert.Equal(t, int64(1), gin.Bottles)
	assert.Equal(t, int64(5), gin.Doses)
	assert.True(t, gin.ML.Equal(decimal.NewFromInt(250)))
	assert.True(t, rum.ML.Equal(decimal.NewFromInt(200)), "mL usa el tamaño de dosis del producto")

	require.Len(t, cons.Foods, 1)
	assert.True(t, cons.Foods[0].Quantity.Equal(decimal.RequireFromString("3.5")))

	_, err = uc.Consolidated(ctx, scope, day, day, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEvent_RestauranteDelAlcance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	uc := newEventUC(env, day)
	scope := env.scope("")
	other := otherTen
	noTenant := entity.Scope{UserID: userID}

	_, err := uc.Create(ctx, scope, EventInput{Name: "ajeno", TenantID: &other})
	assert.ErrorIs(t, err, domain.ErrForbidden, "no se crean eventos de otro restaurante")

	own, err := uc.Create(ctx, scope, EventInput{Name: "propio"})
	require.NoError(t, err)
	require.NotNil(t, own.TenantID)
	assert.Equal(t, tenantID, *own.TenantID)

	free, err := uc.Create(ctx, noTenant, EventInput{Name: "sin alcance", TenantID: &other})
	require.NoError(t, err)
	assert.Equal(t, otherTen, *free.TenantID)

	_, err = uc.Get(ctx, scope, free.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListOpen(ctx, scope, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1, "el filtro por defecto es el restaurante del alcance")
	assert.Equal(t, own.ID, list[0].ID)

	_, err = uc.ListOpen(ctx, scope, &other, 0, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err = uc.ListOpen(ctx, noTenant, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2, "sin restaurante elegido se ven todos")

	list, err = uc.ListOpen(ctx, noTenant, &other, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	cons, err := uc.Consolidated(ctx, scope, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), nil)
	require.NoError(t, err)
	require.NotNil(t, cons.TenantID)
	assert.Equal(t, tenantID, *cons.TenantID)

	_, err = uc.Consolidated(ctx, scope, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), &other)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
