package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/application/usecase"
	"github.com/shopspring/decimal"
)

// StockHandler expone el catálogo de inventario.
type StockHandler struct {
	stockUC *usecase.StockUseCase
}

// NewStockHandler construye el handler de inventario.
func NewStockHandler(stockUC *usecase.StockUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC}
}

// Create maneja POST /api/stock.
func (h *StockHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	item, err := h.stockUC.Create(tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetByID maneja GET /api/stock/:id.
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	item, err := h.stockUC.GetByID(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// List maneja GET /api/stock.
func (h *StockHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	items, err := h.stockUC.List(tenantID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// Update maneja PUT /api/stock/:id. No modifica la cantidad en existencia.
func (h *StockHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	item, err := h.stockUC.Update(tenantID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// Release maneja POST /api/stock/:id/release. Devuelve cantidad al inventario
// (material no usado en un trabajo).
func (h *StockHandler) Release(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	item, err := h.stockUC.Release(c.Context(), tenantID, c.Params("id"), in.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}
