package billing

import (
	"context"
	"time"

	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// SetInvoiceStatusUseCase cambia el estado de una factura por decisión de un
// operador. Solo admite draft, sent, void y refunded: los estados de pago
// (paid, partially_paid, overdue) se derivan, jamás se asignan a mano.
type SetInvoiceStatusUseCase struct {
	txRunner InvoiceTxRunner
	log      *logger.Logger
}

// NewSetInvoiceStatusUseCase construye el caso de uso.
func NewSetInvoiceStatusUseCase(txRunner InvoiceTxRunner, log *logger.Logger) *SetInvoiceStatusUseCase {
	return &SetInvoiceStatusUseCase{txRunner: txRunner, log: log}
}

// Set aplica el cambio de estado. De un estado terminal no se sale: void y
// refunded son definitivos. Al fijar draft o sent se rederiva de inmediato,
// así un sent vencido aparece como overdue sin esperar a la próxima mutación.
func (uc *SetInvoiceStatusUseCase) Set(ctx context.Context, tenantID, invoiceID string, in dto.SetInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domainbilling.AllowedExplicitStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
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

		inv.Status = in.Status
		if !entity.IsTerminalStatus(in.Status) {
			domainbilling.DeriveStatus(inv, now)
		}
		inv.UpdatedAt = now

		return invoiceRepo.UpdateDerived(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant", tenantID).
		Str("invoice", inv.Number).
		Str("status", inv.Status).
		Msg("estado de factura actualizado")

	return toInvoiceResponse(inv), nil
}
