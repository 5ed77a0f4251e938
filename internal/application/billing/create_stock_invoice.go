package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	domainbilling "github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// CreateStockInvoiceUseCase crea una factura manual por venta de stock:
// descuenta inventario, reserva el consecutivo y guarda la factura en una
// sola transacción. Nace en draft.
type CreateStockInvoiceUseCase struct {
	txRunner     InvoiceTxRunner
	customerRepo repository.CustomerRepository
	mailer       *invoiceMailer
	log          *logger.Logger
}

// NewCreateStockInvoiceUseCase construye el caso de uso.
func NewCreateStockInvoiceUseCase(
	txRunner InvoiceTxRunner,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	notifier InvoiceNotifier,
	pdfGen InvoicePDFGenerator,
	log *logger.Logger,
) *CreateStockInvoiceUseCase {
	return &CreateStockInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		mailer:       newInvoiceMailer(notifier, pdfGen, tenantRepo, log),
		log:          log,
	}
}

// Create valida cliente y artículos, y ejecuta la creación transaccional.
// Post-commit despacha el correo en segundo plano si el cliente lo tiene habilitado.
func (uc *CreateStockInvoiceUseCase) Create(ctx context.Context, tenantID string, in dto.CreateStockInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.StockItemID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar cliente y que sea del tenant (lectura, fuera de la tx)
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var inv *entity.Invoice

	err = uc.txRunner.RunInvoice(ctx, func(
		settingsRepo repository.SettingsRepository,
		stockRepo repository.StockItemRepository,
		_ repository.JobRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		settings, err := settingsRepo.Get(tenantID)
		if err != nil {
			return err
		}
		if settings == nil {
			return domain.ErrSettingsMissing
		}

		// 1) Por cada artículo: bloquear fila, verificar disponibilidad,
		// descontar y emitir la línea al precio de venta vigente.
		// Cualquier error revierte consecutivo, stock y factura.
		lines := make([]*entity.InvoiceLineItem, 0, len(in.Items))
		for i, item := range in.Items {
			stock, err := stockRepo.GetForUpdate(item.StockItemID)
			if err != nil {
				return err
			}
			if stock == nil || stock.TenantID != tenantID {
				return domain.ErrNotFound
			}
			if item.Quantity.GreaterThan(stock.StockQuantity) {
				return domain.ErrInsufficientStock
			}
			if err := stockRepo.UpdateQuantity(stock.ID, stock.StockQuantity.Sub(item.Quantity)); err != nil {
				return err
			}
			lines = append(lines, &entity.InvoiceLineItem{
				ID:          uuid.New().String(),
				StockItemID: stock.ID,
				Description: stock.Name,
				Quantity:    item.Quantity,
				UnitPrice:   stock.SalePriceOrZero(),
				Position:    i,
			})
		}

		// 2) Consecutivo: incremento atómico dentro de esta misma tx
		number, err := settingsRepo.NextInvoiceNumber(tenantID)
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:         uuid.New().String(),
			TenantID:   tenantID,
			CustomerID: customer.ID,
			Number:     number,
			IssueDate:  now,
			DueDate:    now.AddDate(0, 0, settings.InvoiceDueDays),
			TaxRate:    settings.TaxRate,
			Status:     entity.InvoiceStatusDraft,
			Currency:   settings.Currency,
			CreatedAt:  now,
			UpdatedAt:  now,
			LineItems:  lines,
		}
		domainbilling.Recalculate(inv)

		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, li := range inv.LineItems {
			li.InvoiceID = inv.ID
			if err := invoiceRepo.CreateLineItem(li); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant", tenantID).
		Str("invoice", inv.Number).
		Str("customer", customer.ID).
		Msg("factura de stock creada")

	// Post-commit, best-effort
	uc.mailer.dispatchAsync(inv, customer)

	return toInvoiceResponse(inv), nil
}
