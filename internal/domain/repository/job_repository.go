package repository

import (
	"time"

	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

// JobRepository define el puerto de persistencia para Job y su material usado.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	// GetForUpdate bloquea la fila del trabajo para que el chequeo
	// "¿ya tiene factura?" y la creación sean atómicos (check-then-act).
	GetForUpdate(id string) (*entity.Job, error)
	UpdateStatus(id, status string, completedAt *time.Time) error
	AddUsedStock(usage *entity.JobStockUsage) error
	GetUsedStock(jobID string) ([]*entity.JobStockUsage, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Job, error)
	// ListCompletedByStaff devuelve trabajos completados del técnico dentro del
	// período [start, end) para nómina (incluye INVOICED: facturar no quita el pago).
	ListCompletedByStaff(tenantID, staffID string, start, end time.Time) ([]*entity.Job, error)
}
