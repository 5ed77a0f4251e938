package repository

import "github.com/jhoicas/ServiCampo-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice, líneas y pagos.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLineItem(item *entity.InvoiceLineItem) error
	CreatePayment(payment *entity.InvoicePayment) error
	// UpdateDerived persiste los campos derivados (totales, pagos, saldo, estado).
	// El número de factura es inmutable y no se toca aquí.
	UpdateDerived(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila de la factura (SELECT FOR UPDATE) para
	// serializar pagos concurrentes sobre la misma factura.
	GetForUpdate(id string) (*entity.Invoice, error)
	GetLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error)
	GetPayments(invoiceID string) ([]*entity.InvoicePayment, error)
	// ExistsForJob indica si ya existe una factura para el trabajo (máximo una por trabajo).
	ExistsForJob(jobID string) (bool, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error)
	// ListDraftJobInvoices devuelve facturas de trabajo en borrador (candidatas al barrido de envío).
	ListDraftJobInvoices(tenantID string) ([]*entity.Invoice, error)
}
