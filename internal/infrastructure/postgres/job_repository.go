package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository sobre PostgreSQL (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador de trabajos. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, tenant_id, customer_id, COALESCE(staff_id, ''), COALESCE(description, ''),
	price, status, completed_at, created_at, updated_at`

// Create inserta un trabajo.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (id, tenant_id, customer_id, staff_id, description, price, status,
		                  completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.TenantID, job.CustomerID, nullIfEmpty(job.StaffID),
		nullIfEmpty(job.Description), job.Price, job.Status,
		job.CompletedAt, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo. Nil si no existe.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get job")
}

// GetForUpdate obtiene el trabajo bloqueando la fila (SELECT FOR UPDATE):
// el chequeo de estado y la creación de su factura son un solo acto.
func (r *JobRepo) GetForUpdate(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get job for update")
}

// UpdateStatus cambia el estado del trabajo.
func (r *JobRepo) UpdateStatus(id, status string, completedAt *time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE jobs SET status = $2, completed_at = $3, updated_at = now() WHERE id = $1`,
		id, status, completedAt)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddUsedStock asocia material consumido al trabajo.
func (r *JobRepo) AddUsedStock(usage *entity.JobStockUsage) error {
	query := `
		INSERT INTO job_stock_usages (id, job_id, stock_item_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		usage.ID, usage.JobID, usage.StockItemID, usage.Quantity)
	if err != nil {
		return fmt.Errorf("add job used stock: %w", err)
	}
	return nil
}

// GetUsedStock devuelve el material consumido en el trabajo.
func (r *JobRepo) GetUsedStock(jobID string) ([]*entity.JobStockUsage, error) {
	query := `SELECT id, job_id, stock_item_id, quantity FROM job_stock_usages WHERE job_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job used stock: %w", err)
	}
	defer rows.Close()

	var usages []*entity.JobStockUsage
	for rows.Next() {
		var u entity.JobStockUsage
		if err := rows.Scan(&u.ID, &u.JobID, &u.StockItemID, &u.Quantity); err != nil {
			return nil, fmt.Errorf("scan job used stock: %w", err)
		}
		usages = append(usages, &u)
	}
	return usages, rows.Err()
}

// ListByTenant devuelve los trabajos del tenant, más recientes primero.
func (r *JobRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + ` FROM jobs
		WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListCompletedByStaff devuelve los trabajos del técnico completados dentro de
// [start, end). Incluye los ya facturados: facturar no le quita el pago al técnico.
func (r *JobRepo) ListCompletedByStaff(tenantID, staffID string, start, end time.Time) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + ` FROM jobs
		WHERE tenant_id = $1 AND staff_id = $2
		  AND status IN ($3, $4)
		  AND completed_at >= $5 AND completed_at < $6
		ORDER BY completed_at`
	rows, err := r.q.Query(context.Background(), query,
		tenantID, staffID, entity.JobStatusCompleted, entity.JobStatusInvoiced, start, end)
	if err != nil {
		return nil, fmt.Errorf("list completed jobs by staff: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *JobRepo) scanOne(row pgx.Row, op string) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(&j.ID, &j.TenantID, &j.CustomerID, &j.StaffID, &j.Description,
		&j.Price, &j.Status, &j.CompletedAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &j, nil
}

func (r *JobRepo) scanMany(rows pgx.Rows) ([]*entity.Job, error) {
	var jobs []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(&j.ID, &j.TenantID, &j.CustomerID, &j.StaffID, &j.Description,
			&j.Price, &j.Status, &j.CompletedAt, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}
