package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// CatalogHandler CRUD mínimo de restaurantes, bares, bebidas y alimentos (solo admin).
type CatalogHandler struct {
	tenants   *usecase.TenantUseCase
	locations *usecase.LocationUseCase
	products  *usecase.ProductUseCase
	foods     *usecase.FoodUseCase
	log       *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(tenants *usecase.TenantUseCase, locations *usecase.LocationUseCase, products *usecase.ProductUseCase, foods *usecase.FoodUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{tenants: tenants, locations: locations, products: products, foods: foods, log: log}
}

// CreateTenant godoc
// @Summary      Crear restaurante
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "nombre"
// @Success      201   {object}  dto.TenantResponse
// @Router       /api/tenants [post]
func (h *CatalogHandler) CreateTenant(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.tenants.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTenants godoc
// @Summary      Listar restaurantes
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TenantResponse
// @Router       /api/tenants [get]
func (h *CatalogHandler) ListTenants(c *fiber.Ctx) error {
	out, err := h.tenants.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear bar
// @Description  Crea los saldos en cero del bar para todas las bebidas activas (después del commit).
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "tenant_id, name, is_central"
// @Success      201   {object}  dto.LocationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.locations.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLocations godoc
// @Summary      Listar bares de un restaurante
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        tenant_id  query  string  false  "restaurante (por defecto el del token)"
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	tenantID := c.Query("tenant_id", GetTenantID(c))
	if tenantID == "" {
		return badRequest(c, "VALIDATION", "tenant_id es requerido")
	}
	out, err := h.locations.ListByTenant(c.UserContext(), tenantID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Crear bebida
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos de la bebida"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "code y name son requeridos")
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener bebida por ID
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bebida"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar bebida
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la bebida"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar bebidas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo activas"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.products.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateFood godoc
// @Summary      Crear alimento
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFoodRequest  true  "code, name, unit"
// @Success      201   {object}  dto.FoodResponse
// @Router       /api/foods [post]
func (h *CatalogHandler) CreateFood(c *fiber.Ctx) error {
	var in dto.CreateFoodRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.foods.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFoods godoc
// @Summary      Listar alimentos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FoodResponse
// @Router       /api/foods [get]
func (h *CatalogHandler) ListFoods(c *fiber.Ctx) error {
	out, err := h.foods.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
