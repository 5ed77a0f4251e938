package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/application/usecase"
)

// JobHandler expone los trabajos de campo y su ciclo de vida.
type JobHandler struct {
	jobUC *usecase.JobUseCase
}

// NewJobHandler construye el handler de trabajos.
func NewJobHandler(jobUC *usecase.JobUseCase) *JobHandler {
	return &JobHandler{jobUC: jobUC}
}

// Create maneja POST /api/jobs.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	job, err := h.jobUC.Create(c.Context(), tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// AddUsedStock maneja POST /api/jobs/:id/stock. Descuenta inventario al
// registrar el consumo, no al facturar.
func (h *JobHandler) AddUsedStock(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.StockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	if err := h.jobUC.AddUsedStock(c.Context(), tenantID, c.Params("id"), in); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete maneja POST /api/jobs/:id/complete.
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	job, err := h.jobUC.Complete(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(job)
}

// GetByID maneja GET /api/jobs/:id.
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	job, err := h.jobUC.GetByID(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(job)
}

// List maneja GET /api/jobs.
func (h *JobHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	jobs, err := h.jobUC.List(tenantID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(jobs)
}
