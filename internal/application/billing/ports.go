package billing

import (
	"context"

	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con los repos
// de facturación atados a la tx. Todo lo que ocurre dentro de fn es atómico:
// consecutivo, descuento de stock, factura y cambio de estado del trabajo
// se confirman o se revierten juntos.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		settingsRepo repository.SettingsRepository,
		stockRepo repository.StockItemRepository,
		jobRepo repository.JobRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceNotifier puerto de envío de la factura por correo. Fire-and-forget
// desde el punto de vista del motor: un fallo aquí jamás revierte la factura.
type InvoiceNotifier interface {
	SendInvoice(ctx context.Context, recipient string, invoice *entity.Invoice, customer *entity.Customer, pdf []byte) error
}

// InvoicePDFGenerator puerto de generación del PDF de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, tenant *entity.Tenant, customer *entity.Customer) ([]byte, error)
}
