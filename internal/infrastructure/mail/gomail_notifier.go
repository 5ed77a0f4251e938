// Package mail implementa el envío de facturas por correo vía SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	appbilling "github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/pkg/config"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

var _ appbilling.InvoiceNotifier = (*GomailNotifier)(nil)

// GomailNotifier implementa billing.InvoiceNotifier sobre SMTP con gomail.
type GomailNotifier struct {
	cfg config.MailConfig
	log *logger.Logger
}

// NewGomailNotifier construye el notificador. Devuelve nil si no hay SMTP
// configurado: el caller trata nil como "sin notificaciones".
func NewGomailNotifier(cfg config.MailConfig, log *logger.Logger) *GomailNotifier {
	if !cfg.Enabled() {
		log.Warn().Msg("SMTP no configurado; el envío de facturas por correo queda deshabilitado")
		return nil
	}
	return &GomailNotifier{cfg: cfg, log: log}
}

// SendInvoice envía la factura al cliente, con el PDF adjunto si viene.
func (n *GomailNotifier) SendInvoice(ctx context.Context, recipient string, invoice *entity.Invoice, customer *entity.Customer, pdf []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("Factura %s", invoice.Number))
	m.SetBody("text/html", invoiceBody(invoice, customer))

	if len(pdf) > 0 {
		m.Attach(
			fmt.Sprintf("factura-%s.pdf", invoice.Number),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(pdf))
				return err
			}),
		)
	}

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)

	// gomail no acepta context: respetar cancelación antes de marcar el dial.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar factura %s: %w", invoice.Number, err)
	}
	return nil
}

func invoiceBody(invoice *entity.Invoice, customer *entity.Customer) string {
	return fmt.Sprintf(
		`<p>Estimado(a) %s,</p>
<p>Adjuntamos la factura <strong>%s</strong> por un total de <strong>%s %s</strong>,
con vencimiento el %s.</p>
<p>Gracias por su confianza.</p>`,
		customer.Name,
		invoice.Number,
		invoice.Total.StringFixed(2),
		invoice.Currency,
		invoice.DueDate.Format("02/01/2006"),
	)
}
