package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/application/usecase"
)

// StaffHandler expone el personal y sus registros de jornada.
type StaffHandler struct {
	staffUC *usecase.StaffUseCase
	timeUC  *usecase.TimeRecordUseCase
}

// NewStaffHandler construye el handler de personal.
func NewStaffHandler(staffUC *usecase.StaffUseCase, timeUC *usecase.TimeRecordUseCase) *StaffHandler {
	return &StaffHandler{staffUC: staffUC, timeUC: timeUC}
}

// Create maneja POST /api/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	staff, err := h.staffUC.Create(tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(staff)
}

// GetByID maneja GET /api/staff/:id.
func (h *StaffHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	staff, err := h.staffUC.GetByID(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(staff)
}

// List maneja GET /api/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	staff, err := h.staffUC.List(tenantID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(staff)
}

// Update maneja PUT /api/staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	staff, err := h.staffUC.Update(tenantID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(staff)
}

// ClockIn maneja POST /api/time-records/clock-in.
func (h *StaffHandler) ClockIn(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.ClockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	record, err := h.timeUC.ClockIn(tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ClockOut maneja POST /api/time-records/:id/clock-out.
func (h *StaffHandler) ClockOut(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	record, err := h.timeUC.ClockOut(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(record)
}
