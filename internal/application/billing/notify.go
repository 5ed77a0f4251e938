package billing

import (
	"context"

	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// invoiceMailer despacha el correo de la factura en segundo plano, después del
// commit. Best-effort: un fallo de PDF o SMTP se registra y se descarta; el
// registro financiero ya está confirmado.
type invoiceMailer struct {
	notifier   InvoiceNotifier
	pdfGen     InvoicePDFGenerator
	tenantRepo repository.TenantRepository
	log        *logger.Logger
}

func newInvoiceMailer(notifier InvoiceNotifier, pdfGen InvoicePDFGenerator, tenantRepo repository.TenantRepository, log *logger.Logger) *invoiceMailer {
	return &invoiceMailer{notifier: notifier, pdfGen: pdfGen, tenantRepo: tenantRepo, log: log}
}

// dispatchAsync lanza el envío en una goroutine desligada de la petición.
func (m *invoiceMailer) dispatchAsync(invoice *entity.Invoice, customer *entity.Customer) {
	if m.notifier == nil {
		return
	}
	if customer == nil || !customer.InvoiceEmailEnabled || customer.Email == "" {
		return
	}
	go m.send(invoice, customer)
}

func (m *invoiceMailer) send(invoice *entity.Invoice, customer *entity.Customer) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Str("invoice", invoice.Number).Msg("pánico enviando factura por correo")
		}
	}()
	ctx := context.Background()

	var pdf []byte
	if m.pdfGen != nil {
		tenant, err := m.tenantRepo.GetByID(invoice.TenantID)
		if err != nil || tenant == nil {
			m.log.Warn().Str("tenant", invoice.TenantID).Msg("tenant no disponible para el PDF; se envía sin adjunto")
		} else {
			pdf, err = m.pdfGen.GenerateInvoicePDF(ctx, invoice, tenant, customer)
			if err != nil {
				m.log.Warn().Err(err).Str("invoice", invoice.Number).Msg("fallo generando PDF; se envía sin adjunto")
				pdf = nil
			}
		}
	}

	if err := m.notifier.SendInvoice(ctx, customer.Email, invoice, customer, pdf); err != nil {
		m.log.Error().Err(err).
			Str("invoice", invoice.Number).
			Str("recipient", customer.Email).
			Msg("fallo enviando factura por correo")
		return
	}
	m.log.Info().Str("invoice", invoice.Number).Str("recipient", customer.Email).Msg("factura enviada por correo")
}
