package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// JobUseCase ciclo de vida del trabajo: crear, registrar material, completar.
// El material se descuenta del inventario al registrarse en el trabajo, no al
// facturar: la salida física ya ocurrió en campo.
type JobUseCase struct {
	txRunner     billing.InvoiceTxRunner
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	staffRepo    repository.StaffRepository
	log          *logger.Logger
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(
	txRunner billing.InvoiceTxRunner,
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	log *logger.Logger,
) *JobUseCase {
	return &JobUseCase{
		txRunner:     txRunner,
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		log:          log,
	}
}

// Create registra un trabajo PENDING. Si trae material usado, el descuento de
// stock y la creación van en la misma transacción.
func (uc *JobUseCase) Create(ctx context.Context, tenantID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.CustomerID == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, u := range in.UsedStock {
		if u.StockItemID == "" || !u.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if in.StaffID != "" {
		staff, err := uc.staffRepo.GetByID(in.StaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil || staff.TenantID != tenantID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	job := &entity.Job{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CustomerID:  in.CustomerID,
		StaffID:     in.StaffID,
		Description: in.Description,
		Price:       in.Price,
		Status:      entity.JobStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunInvoice(ctx, func(
		_ repository.SettingsRepository,
		stockRepo repository.StockItemRepository,
		jobRepo repository.JobRepository,
		_ repository.InvoiceRepository,
	) error {
		if err := jobRepo.Create(job); err != nil {
			return err
		}
		for _, u := range in.UsedStock {
			if err := consumeStock(stockRepo, jobRepo, tenantID, job.ID, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant", tenantID).Str("job", job.ID).Msg("trabajo creado")
	return toJobResponse(job), nil
}

// AddUsedStock registra material adicional consumido en un trabajo abierto.
func (uc *JobUseCase) AddUsedStock(ctx context.Context, tenantID, jobID string, in dto.StockItemRequest) error {
	if in.StockItemID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunInvoice(ctx, func(
		_ repository.SettingsRepository,
		stockRepo repository.StockItemRepository,
		jobRepo repository.JobRepository,
		_ repository.InvoiceRepository,
	) error {
		job, err := jobRepo.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil || job.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if job.Status == entity.JobStatusInvoiced {
			return domain.ErrInvalidJobState
		}
		return consumeStock(stockRepo, jobRepo, tenantID, jobID, in)
	})
}

// Complete marca el trabajo COMPLETED y registra la hora de finalización.
// Solo desde PENDING: un trabajo facturado no se reabre.
func (uc *JobUseCase) Complete(ctx context.Context, tenantID, jobID string) (*dto.JobResponse, error) {
	var job *entity.Job
	err := uc.txRunner.RunInvoice(ctx, func(
		_ repository.SettingsRepository,
		_ repository.StockItemRepository,
		jobRepo repository.JobRepository,
		_ repository.InvoiceRepository,
	) error {
		var err error
		job, err = jobRepo.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil || job.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if job.Status != entity.JobStatusPending {
			return domain.ErrInvalidJobState
		}
		now := time.Now()
		job.Status = entity.JobStatusCompleted
		job.CompletedAt = &now
		return jobRepo.UpdateStatus(job.ID, job.Status, job.CompletedAt)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant", tenantID).Str("job", jobID).Msg("trabajo completado")
	return toJobResponse(job), nil
}

// GetByID devuelve un trabajo del tenant.
func (uc *JobUseCase) GetByID(tenantID, jobID string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toJobResponse(job), nil
}

// List devuelve los trabajos del tenant, paginados.
func (uc *JobUseCase) List(tenantID string, limit, offset int) ([]dto.JobResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	jobs, err := uc.jobRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, *toJobResponse(j))
	}
	return out, nil
}

// consumeStock descuenta el material del inventario y lo asocia al trabajo.
func consumeStock(stockRepo repository.StockItemRepository, jobRepo repository.JobRepository, tenantID, jobID string, in dto.StockItemRequest) error {
	stock, err := stockRepo.GetForUpdate(in.StockItemID)
	if err != nil {
		return err
	}
	if stock == nil || stock.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if in.Quantity.GreaterThan(stock.StockQuantity) {
		return domain.ErrInsufficientStock
	}
	if err := stockRepo.UpdateQuantity(stock.ID, stock.StockQuantity.Sub(in.Quantity)); err != nil {
		return err
	}
	return jobRepo.AddUsedStock(&entity.JobStockUsage{
		ID:          uuid.New().String(),
		JobID:       jobID,
		StockItemID: stock.ID,
		Quantity:    in.Quantity,
	})
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:          j.ID,
		TenantID:    j.TenantID,
		CustomerID:  j.CustomerID,
		StaffID:     j.StaffID,
		Description: j.Description,
		Price:       j.Price,
		Status:      j.Status,
	}
	if j.CompletedAt != nil {
		resp.CompletedAt = j.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
