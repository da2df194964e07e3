package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// ProductUseCase casos de uso CRUD del catálogo de bebidas. Los saldos se manejan en el libro.
type ProductUseCase struct {
	repo  repository.ProductRepository
	hooks ProvisioningHooks
}

// NewProductUseCase construye el caso de uso. hooks puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, hooks ProvisioningHooks) *ProductUseCase {
	if hooks == nil {
		hooks = noopHooks{}
	}
	return &ProductUseCase{repo: repo, hooks: hooks}
}

// Create crea una bebida. El código se normaliza y es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := stock.NormalizeCode(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "un"
	}
	if in.Category == "" {
		in.Category = entity.CategoryOther
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Code:           code,
		Name:           name,
		UnitMeasure:    in.UnitMeasure,
		Category:       strings.ToUpper(in.Category),
		BottleVolumeML: in.BottleVolumeML,
		DoseSizeML:     entity.DefaultDoseSizeML,
		DosesPerBottle: in.DosesPerBottle,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.DoseSizeML != nil {
		product.DoseSizeML = *in.DoseSizeML
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if product.Active {
		uc.hooks.ProductCreated(product)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene una bebida por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza una bebida. Al reactivarla se aprovisionan los saldos faltantes.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	wasActive := product.Active
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.Category != nil {
		product.Category = strings.ToUpper(*in.Category)
	}
	if in.BottleVolumeML != nil {
		product.BottleVolumeML = in.BottleVolumeML
	}
	if in.DoseSizeML != nil {
		product.DoseSizeML = *in.DoseSizeML
	}
	if in.DosesPerBottle != nil {
		product.DosesPerBottle = in.DosesPerBottle
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if product.Active && !wasActive {
		uc.hooks.ProductCreated(product)
	}
	return toProductResponse(product), nil
}

// List lista el catálogo, opcionalmente solo activos.
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

func validateProduct(p *entity.Product) error {
	if p.Name == "" || !entity.ValidCategory(p.Category) {
		return domain.ErrInvalidInput
	}
	if !p.DoseSizeML.IsPositive() {
		return domain.ErrInvalidInput
	}
	if p.BottleVolumeML != nil && !p.BottleVolumeML.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if p.DosesPerBottle != nil && *p.DosesPerBottle <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		UnitMeasure:    p.UnitMeasure,
		Category:       p.Category,
		BottleVolumeML: p.BottleVolumeML,
		DoseSizeML:     p.DoseSizeML,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if n, ok := p.EffectiveDosesPerBottle(); ok {
		out.DosesPerBottle = &n
	}
	return out
}
