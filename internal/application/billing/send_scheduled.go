package billing

import (
	"context"
	"time"

	"github.com/jhoicas/ServiCampo-api/internal/domain"
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// SendScheduledInvoicesUseCase barrido de envío programado: promueve a sent y
// envía por correo las facturas de trabajo en borrador cuyo patrón del cliente
// (WEEKLY/MONTHLY) coincide con el día dado. El scheduler que decide CUÁNDO
// correr el barrido es externo; aquí solo se ejecuta la pasada.
type SendScheduledInvoicesUseCase struct {
	txRunner     InvoiceTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	mailer       *invoiceMailer
	log          *logger.Logger
}

// NewSendScheduledInvoicesUseCase construye el caso de uso.
func NewSendScheduledInvoicesUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	notifier InvoiceNotifier,
	pdfGen InvoicePDFGenerator,
	log *logger.Logger,
) *SendScheduledInvoicesUseCase {
	return &SendScheduledInvoicesUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		mailer:       newInvoiceMailer(notifier, pdfGen, tenantRepo, log),
		log:          log,
	}
}

// Run ejecuta una pasada del barrido para el tenant en el día dado y devuelve
// cuántas facturas promovió. Cada factura se promueve en su propia transacción:
// un fallo puntual no frena el resto de la pasada.
func (uc *SendScheduledInvoicesUseCase) Run(ctx context.Context, tenantID string, day time.Time) (int, error) {
	drafts, err := uc.invoiceRepo.ListDraftJobInvoices(tenantID)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, draft := range drafts {
		customer, err := uc.customerRepo.GetByID(draft.CustomerID)
		if err != nil {
			uc.log.Error().Err(err).Str("invoice", draft.Number).Msg("barrido: no se pudo leer el cliente")
			continue
		}
		if customer == nil || !customer.InvoiceEmailEnabled {
			continue
		}
		if !triggerMatchesDay(customer.InvoiceTrigger, draft.IssueDate, day) {
			continue
		}
		if err := uc.promote(ctx, tenantID, draft.ID, customer); err != nil {
			uc.log.Error().Err(err).Str("invoice", draft.Number).Msg("barrido: fallo promoviendo factura")
			continue
		}
		sent++
	}

	uc.log.Info().
		Str("tenant", tenantID).
		Int("candidates", len(drafts)).
		Int("sent", sent).
		Msg("barrido de envío programado completado")
	return sent, nil
}

// promote relee la factura bajo bloqueo (pudo cambiar desde el listado),
// la pasa a sent y despacha el correo post-commit.
func (uc *SendScheduledInvoicesUseCase) promote(ctx context.Context, tenantID, invoiceID string, customer *entity.Customer) error {
	now := time.Now()
	var inv *entity.Invoice

	err := uc.txRunner.RunInvoice(ctx, func(
		_ repository.SettingsRepository,
		_ repository.StockItemRepository,
		_ repository.JobRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil || inv.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusDraft {
			return domain.ErrInvalidStatus
		}

		inv.LineItems, err = invoiceRepo.GetLineItems(inv.ID)
		if err != nil {
			return err
		}
		inv.Payments, err = invoiceRepo.GetPayments(inv.ID)
		if err != nil {
			return err
		}
		domainbilling.Recalculate(inv)

		inv.Status = entity.InvoiceStatusSent
		domainbilling.DeriveStatus(inv, now)
		inv.UpdatedAt = now
		return invoiceRepo.UpdateDerived(inv)
	})
	if err != nil {
		return err
	}

	uc.mailer.dispatchAsync(inv, customer)
	return nil
}

// triggerMatchesDay decide si el patrón del cliente cae en el día dado:
// WEEKLY coincide por día de la semana de emisión, MONTHLY por día del mes.
// Un patrón desconocido nunca coincide; esa factura queda en borrador hasta
// intervención manual.
func triggerMatchesDay(trigger string, issueDate, day time.Time) bool {
	switch trigger {
	case entity.TriggerWeekly:
		return day.Weekday() == issueDate.Weekday()
	case entity.TriggerMonthly:
		return day.Day() == issueDate.Day()
	}
	return false
}
