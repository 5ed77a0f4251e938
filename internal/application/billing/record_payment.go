package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// RecordPaymentUseCase aplica un abono a una factura y rederiva su estado.
// Los abonos son append-only: nunca se editan ni se borran por esta vía.
type RecordPaymentUseCase struct {
	txRunner InvoiceTxRunner
	log      *logger.Logger
}

// NewRecordPaymentUseCase construye el caso de uso.
func NewRecordPaymentUseCase(txRunner InvoiceTxRunner, log *logger.Logger) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner, log: log}
}

// Record valida y aplica el abono. La fila de la factura se bloquea para que
// dos abonos concurrentes no lean el mismo saldo y se cuelen ambos.
func (uc *RecordPaymentUseCase) Record(ctx context.Context, tenantID, invoiceID string, in dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}

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
		if entity.IsTerminalStatus(inv.Status) {
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

		if err := domainbilling.ValidatePayment(inv, in.Amount); err != nil {
			return err
		}

		payment := &entity.InvoicePayment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    in.Amount,
			Date:      now,
			Method:    in.Method,
			Reference: in.Reference,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := invoiceRepo.CreatePayment(payment); err != nil {
			return err
		}

		inv.Payments = append(inv.Payments, payment)
		domainbilling.Recalculate(inv)
		domainbilling.DeriveStatus(inv, now)
		inv.UpdatedAt = now

		return invoiceRepo.UpdateDerived(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant", tenantID).
		Str("invoice", inv.Number).
		Str("amount", in.Amount.StringFixed(2)).
		Str("status", inv.Status).
		Msg("abono registrado")

	return toInvoiceResponse(inv), nil
}
