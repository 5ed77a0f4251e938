package billing

import (
	"context"

	"github.com/jhoicas/ServiCampo-api/internal/domain"
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// InvoicePDFUseCase genera el PDF de una factura bajo demanda (descarga).
type InvoicePDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	pdfGen       InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	pdfGen InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		pdfGen:       pdfGen,
	}
}

// Generate devuelve los bytes del PDF y el número de factura (para el nombre
// del archivo).
func (uc *InvoicePDFUseCase) Generate(ctx context.Context, tenantID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil || inv.TenantID != tenantID {
		return nil, "", domain.ErrNotFound
	}
	inv.LineItems, err = uc.invoiceRepo.GetLineItems(inv.ID)
	if err != nil {
		return nil, "", err
	}
	inv.Payments, err = uc.invoiceRepo.GetPayments(inv.ID)
	if err != nil {
		return nil, "", err
	}
	domainbilling.Recalculate(inv)

	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, "", err
	}
	if tenant == nil {
		return nil, "", domain.ErrNotFound
	}

	pdf, err := uc.pdfGen.GenerateInvoicePDF(ctx, inv, tenant, customer)
	if err != nil {
		return nil, "", err
	}
	return pdf, inv.Number, nil
}
