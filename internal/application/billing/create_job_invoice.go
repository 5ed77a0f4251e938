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

// CreateJobInvoiceUseCase factura un trabajo completado: línea de servicio al
// precio pactado más una línea por cada material consumido, al precio de venta
// vigente. Máximo una factura por trabajo.
type CreateJobInvoiceUseCase struct {
	txRunner     InvoiceTxRunner
	customerRepo repository.CustomerRepository
	mailer       *invoiceMailer
	log          *logger.Logger
}

// NewCreateJobInvoiceUseCase construye el caso de uso.
func NewCreateJobInvoiceUseCase(
	txRunner InvoiceTxRunner,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	notifier InvoiceNotifier,
	pdfGen InvoicePDFGenerator,
	log *logger.Logger,
) *CreateJobInvoiceUseCase {
	return &CreateJobInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		mailer:       newInvoiceMailer(notifier, pdfGen, tenantRepo, log),
		log:          log,
	}
}

// Create genera la factura del trabajo. El trabajo debe estar COMPLETED y sin
// factura previa; al confirmar queda INVOICED. El material consumido NO vuelve
// a descontar stock aquí: ya salió del inventario al registrarse en el trabajo.
func (uc *CreateJobInvoiceUseCase) Create(ctx context.Context, tenantID string, in dto.CreateJobInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.JobID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		inv      *entity.Invoice
		customer *entity.Customer
	)

	err := uc.txRunner.RunInvoice(ctx, func(
		settingsRepo repository.SettingsRepository,
		stockRepo repository.StockItemRepository,
		jobRepo repository.JobRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// Bloquear el trabajo: el chequeo de estado + unicidad de factura y la
		// creación deben ser un solo acto frente a peticiones concurrentes.
		job, err := jobRepo.GetForUpdate(in.JobID)
		if err != nil {
			return err
		}
		if job == nil || job.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if job.Status != entity.JobStatusCompleted {
			return domain.ErrInvalidJobState
		}
		exists, err := invoiceRepo.ExistsForJob(job.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateInvoice
		}

		customer, err = uc.customerRepo.GetByID(job.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		settings, err := settingsRepo.Get(tenantID)
		if err != nil {
			return err
		}
		if settings == nil {
			return domain.ErrSettingsMissing
		}

		lines := make([]*entity.InvoiceLineItem, 0, 4)
		if job.Price.GreaterThan(decimal.Zero) {
			lines = append(lines, &entity.InvoiceLineItem{
				ID:          uuid.New().String(),
				Description: serviceDescription(job),
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   job.Price,
				Position:    0,
			})
		}

		usages, err := jobRepo.GetUsedStock(job.ID)
		if err != nil {
			return err
		}
		for _, u := range usages {
			stock, err := stockRepo.GetForUpdate(u.StockItemID)
			if err != nil {
				return err
			}
			if stock == nil {
				return domain.ErrNotFound
			}
			price := stock.SalePriceOrZero()
			if price.IsZero() {
				// Se factura en cero igual: omitir la línea ocultaría el consumo.
				uc.log.Warn().
					Str("job", job.ID).
					Str("stock_item", stock.ID).
					Msg("artículo consumido sin precio de venta; se factura en cero")
			}
			lines = append(lines, &entity.InvoiceLineItem{
				ID:          uuid.New().String(),
				StockItemID: stock.ID,
				Description: stock.Name,
				Quantity:    u.Quantity,
				UnitPrice:   price,
				Position:    len(lines),
			})
		}

		if len(lines) == 0 {
			return domain.ErrNoBillableItems
		}

		number, err := settingsRepo.NextInvoiceNumber(tenantID)
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			CustomerID:  customer.ID,
			SourceJobID: job.ID,
			Number:      number,
			IssueDate:   now,
			DueDate:     now.AddDate(0, 0, settings.InvoiceDueDays),
			TaxRate:     settings.TaxRate,
			Status:      initialJobInvoiceStatus(customer),
			Currency:    settings.Currency,
			CreatedAt:   now,
			UpdatedAt:   now,
			LineItems:   lines,
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
		return jobRepo.UpdateStatus(job.ID, entity.JobStatusInvoiced, job.CompletedAt)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant", tenantID).
		Str("invoice", inv.Number).
		Str("job", in.JobID).
		Str("status", inv.Status).
		Msg("factura de trabajo creada")

	if inv.Status == entity.InvoiceStatusSent {
		uc.mailer.dispatchAsync(inv, customer)
	}

	return toInvoiceResponse(inv), nil
}

// initialJobInvoiceStatus decide el estado inicial según la preferencia del
// cliente: ON_COMPLETION (o correo deshabilitado) sale como sent de inmediato;
// los patrones WEEKLY/MONTHLY quedan en draft para el barrido programado.
// Un patrón desconocido también queda en draft, pero el barrido no lo tomará.
func initialJobInvoiceStatus(customer *entity.Customer) string {
	if !customer.InvoiceEmailEnabled || customer.InvoiceTrigger == entity.TriggerOnCompletion || customer.InvoiceTrigger == "" {
		return entity.InvoiceStatusSent
	}
	return entity.InvoiceStatusDraft
}

func serviceDescription(job *entity.Job) string {
	if job.Description != "" {
		return job.Description
	}
	return "Servicio"
}
