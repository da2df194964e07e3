package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// FoodUseCase catálogo de alimentos para eventos.
type FoodUseCase struct {
	repo repository.FoodRepository
}

// NewFoodUseCase construye el caso de uso.
func NewFoodUseCase(repo repository.FoodRepository) *FoodUseCase {
	return &FoodUseCase{repo: repo}
}

// Create crea un alimento. Código duplicado -> ErrDuplicate desde la persistencia.
func (uc *FoodUseCase) Create(ctx context.Context, in dto.CreateFoodRequest) (*dto.FoodResponse, error) {
	code := stock.NormalizeCode(in.Code)
	name := strings.TrimSpace(in.Name)
	unit := stock.NormalizeUnit(in.Unit)
	if code == "" || name == "" || !entity.ValidFoodUnit(unit) {
		return nil, domain.ErrInvalidInput
	}
	food := &entity.Food{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Unit:      unit,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, food); err != nil {
		return nil, err
	}
	return toFoodResponse(food), nil
}

// List alimentos, opcionalmente solo activos.
func (uc *FoodUseCase) List(ctx context.Context, activeOnly bool) ([]dto.FoodResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FoodResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFoodResponse(f))
	}
	return items, nil
}

func toFoodResponse(f *entity.Food) *dto.FoodResponse {
	return &dto.FoodResponse{ID: f.ID, Code: f.Code, Name: f.Name, Unit: f.Unit, Active: f.Active}
}
