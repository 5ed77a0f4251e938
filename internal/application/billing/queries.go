package billing

import (
	"time"

	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// InvoiceQueryUseCase lecturas de facturación: detalle y listado por tenant.
type InvoiceQueryUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceQueryUseCase construye el caso de uso de lecturas.
func NewInvoiceQueryUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoiceRepo: invoiceRepo}
}

// GetByID devuelve la factura completa con líneas y abonos.
func (uc *InvoiceQueryUseCase) GetByID(tenantID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// List devuelve las facturas del tenant, paginadas, sin líneas ni abonos.
func (uc *InvoiceQueryUseCase) List(tenantID string, limit, offset int) ([]dto.InvoiceResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	invoices, err := uc.invoiceRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

// load trae la factura con líneas y abonos, validando pertenencia al tenant.
func (uc *InvoiceQueryUseCase) load(tenantID, invoiceID string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	inv.LineItems, err = uc.invoiceRepo.GetLineItems(inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Payments, err = uc.invoiceRepo.GetPayments(inv.ID)
	if err != nil {
		return nil, err
	}
	domainbilling.Recalculate(inv)
	return inv, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:          inv.ID,
		TenantID:    inv.TenantID,
		CustomerID:  inv.CustomerID,
		SourceJobID: inv.SourceJobID,
		Number:      inv.Number,
		IssueDate:   inv.IssueDate.Format("2006-01-02"),
		DueDate:     inv.DueDate.Format("2006-01-02"),
		Subtotal:    inv.Subtotal,
		TaxRate:     inv.TaxRate,
		TaxAmount:   inv.TaxAmount,
		Total:       inv.Total,
		AmountPaid:  inv.AmountPaid,
		BalanceDue:  inv.BalanceDue,
		Status:      inv.Status,
		Currency:    inv.Currency,
		LineItems:   make([]dto.LineItemResponse, 0, len(inv.LineItems)),
		Payments:    make([]dto.PaymentResponse, 0, len(inv.Payments)),
	}
	for _, li := range inv.LineItems {
		resp.LineItems = append(resp.LineItems, dto.LineItemResponse{
			ID:          li.ID,
			StockItemID: li.StockItemID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			TotalPrice:  li.TotalPrice,
		})
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Date:      p.Date.Format(time.RFC3339),
			Method:    p.Method,
			Reference: p.Reference,
			Notes:     p.Notes,
		})
	}
	return resp
}
