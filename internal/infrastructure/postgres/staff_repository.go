package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo implementación de StaffRepository sobre PostgreSQL (usable con pool o tx).
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador de personal. Pasar pool o tx (Querier).
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

const staffColumns = `id, tenant_id, name, COALESCE(email, ''), COALESCE(pay_rate_type, ''),
	hourly_rate, job_fixed_amount, job_percentage, active, created_at, updated_at`

// Create inserta un miembro del personal.
func (r *StaffRepo) Create(staff *entity.Staff) error {
	query := `
		INSERT INTO staff (id, tenant_id, name, email, pay_rate_type, hourly_rate,
		                   job_fixed_amount, job_percentage, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		staff.ID, staff.TenantID, staff.Name, nullIfEmpty(staff.Email),
		nullIfEmpty(staff.PayRateType), staff.HourlyRate, staff.JobFixedAmount,
		staff.JobPercentage, staff.Active, staff.CreatedAt, staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro del personal. Nil si no existe.
func (r *StaffRepo) GetByID(id string) (*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	var s entity.Staff
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Email, &s.PayRateType,
		&s.HourlyRate, &s.JobFixedAmount, &s.JobPercentage, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &s, nil
}

// ListActive devuelve el personal activo del tenant; ids no vacío filtra una
// selección parcial (corrida de nómina de un subconjunto).
func (r *StaffRepo) ListActive(tenantID string, ids []string) ([]*entity.Staff, error) {
	query := `
		SELECT ` + staffColumns + ` FROM staff
		WHERE tenant_id = $1 AND active
		  AND (cardinality($2::text[]) = 0 OR id = ANY($2))
		ORDER BY name`
	if ids == nil {
		ids = []string{}
	}
	rows, err := r.q.Query(context.Background(), query, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("list active staff: %w", err)
	}
	defer rows.Close()

	var staff []*entity.Staff
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Email, &s.PayRateType,
			&s.HourlyRate, &s.JobFixedAmount, &s.JobPercentage, &s.Active,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		staff = append(staff, &s)
	}
	return staff, rows.Err()
}

// Update actualiza datos y modelo de pago.
func (r *StaffRepo) Update(staff *entity.Staff) error {
	query := `
		UPDATE staff
		SET name = $2, email = $3, pay_rate_type = $4, hourly_rate = $5,
		    job_fixed_amount = $6, job_percentage = $7, active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		staff.ID, staff.Name, nullIfEmpty(staff.Email), nullIfEmpty(staff.PayRateType),
		staff.HourlyRate, staff.JobFixedAmount, staff.JobPercentage, staff.Active, staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
