package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
)

// InvoiceHandler expone la facturación: emisión, abonos, estados, PDF y el
// barrido de facturas programadas.
type InvoiceHandler struct {
	createStockUC *billing.CreateStockInvoiceUseCase
	createJobUC   *billing.CreateJobInvoiceUseCase
	paymentUC     *billing.RecordPaymentUseCase
	statusUC      *billing.SetInvoiceStatusUseCase
	scheduledUC   *billing.SendScheduledInvoicesUseCase
	queryUC       *billing.InvoiceQueryUseCase
	pdfUC         *billing.InvoicePDFUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(
	createStockUC *billing.CreateStockInvoiceUseCase,
	createJobUC *billing.CreateJobInvoiceUseCase,
	paymentUC *billing.RecordPaymentUseCase,
	statusUC *billing.SetInvoiceStatusUseCase,
	scheduledUC *billing.SendScheduledInvoicesUseCase,
	queryUC *billing.InvoiceQueryUseCase,
	pdfUC *billing.InvoicePDFUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{
		createStockUC: createStockUC,
		createJobUC:   createJobUC,
		paymentUC:     paymentUC,
		statusUC:      statusUC,
		scheduledUC:   scheduledUC,
		queryUC:       queryUC,
		pdfUC:         pdfUC,
	}
}

// CreateStockInvoice maneja POST /api/invoices/stock.
func (h *InvoiceHandler) CreateStockInvoice(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateStockInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	invoice, err := h.createStockUC.Create(c.Context(), tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateJobInvoice maneja POST /api/invoices/job.
func (h *InvoiceHandler) CreateJobInvoice(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.CreateJobInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	invoice, err := h.createJobUC.Create(c.Context(), tenantID, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// RecordPayment maneja POST /api/invoices/:id/payments.
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	invoice, err := h.paymentUC.Record(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// SetStatus maneja PATCH /api/invoices/:id/status.
func (h *InvoiceHandler) SetStatus(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	var in dto.SetInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	invoice, err := h.statusUC.Set(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(invoice)
}

// GetByID maneja GET /api/invoices/:id.
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	invoice, err := h.queryUC.GetByID(tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(invoice)
}

// List maneja GET /api/invoices.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	invoices, err := h.queryUC.List(tenantID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(invoices)
}

// DownloadPDF maneja GET /api/invoices/:id/pdf.
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	pdfBytes, number, err := h.pdfUC.Generate(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="factura-%s.pdf"`, number))
	return c.Send(pdfBytes)
}

// SendScheduled maneja POST /api/invoices/send-scheduled.
// Promueve los borradores de trabajos cuyo disparador coincide con el día
// (hoy, u opcionalmente ?date=2006-01-02 para reprocesar).
func (h *InvoiceHandler) SendScheduled(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no identificado"})
	}
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato 2006-01-02"})
		}
		day = parsed
	}
	sent, err := h.scheduledUC.Run(c.Context(), tenantID, day)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"sent": sent})
}
