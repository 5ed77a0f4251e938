package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/application/usecase"
)

// CustomerHandler expone el CRUD de clientes.
type CustomerHandler struct {
	customerUC *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(customerUC *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC}
}

// Create maneja POST /api/customers.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	customer, err := h.customerUC.Create(tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByID maneja GET /api/customers/:id.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	customer, err := h.customerUC.GetByID(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(customer)
}

// List maneja GET /api/customers.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	customers, err := h.customerUC.List(tenantID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(customers)
}

// Update maneja PUT /api/customers/:id.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	customer, err := h.customerUC.Update(tenantID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(customer)
}
