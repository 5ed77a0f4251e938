package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/application/payroll"
)

// PayrollHandler expone el cálculo de nómina y las consultas de liquidaciones.
type PayrollHandler struct {
	calcUC  *payroll.CalculatePayrollUseCase
	queryUC *payroll.PayslipQueryUseCase
}

// NewPayrollHandler construye el handler de nómina.
func NewPayrollHandler(calcUC *payroll.CalculatePayrollUseCase, queryUC *payroll.PayslipQueryUseCase) *PayrollHandler {
	return &PayrollHandler{calcUC: calcUC, queryUC: queryUC}
}

// Calculate maneja POST /api/payroll/calculate. Recalcular un período
// reemplaza las liquidaciones anteriores del mismo período.
func (h *PayrollHandler) Calculate(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CalculatePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	payslips, err := h.calcUC.Calculate(c.Context(), tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payslips)
}

// GetByID maneja GET /api/payroll/payslips/:id.
func (h *PayrollHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	payslip, err := h.queryUC.GetByID(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(payslip)
}

// ListByPeriod maneja GET /api/payroll/payslips?start=...&end=...
func (h *PayrollHandler) ListByPeriod(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	payslips, err := h.queryUC.ListByPeriod(tenantID, c.Query("start"), c.Query("end"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(payslips)
}

// ListByStaff maneja GET /api/payroll/staff/:staffId/payslips.
func (h *PayrollHandler) ListByStaff(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	payslips, err := h.queryUC.ListByStaff(tenantID, c.Params("staffId"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(payslips)
}
