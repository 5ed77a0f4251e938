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

var _ repository.TimeRecordRepository = (*TimeRecordRepo)(nil)

// TimeRecordRepo implementación de TimeRecordRepository sobre PostgreSQL (usable con pool o tx).
type TimeRecordRepo struct {
	q Querier
}

// NewTimeRecordRepository construye el adaptador de registros de jornada. Pasar pool o tx (Querier).
func NewTimeRecordRepository(q Querier) *TimeRecordRepo {
	return &TimeRecordRepo{q: q}
}

// Create inserta un registro abierto (sin clock_out).
func (r *TimeRecordRepo) Create(record *entity.TimeRecord) error {
	query := `
		INSERT INTO time_records (id, tenant_id, staff_id, clock_in, clock_out, total_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.TenantID, record.StaffID, record.ClockIn,
		record.ClockOut, record.TotalMinutes, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create time record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro. Nil si no existe.
func (r *TimeRecordRepo) GetByID(id string) (*entity.TimeRecord, error) {
	query := `
		SELECT id, tenant_id, staff_id, clock_in, clock_out, total_minutes, created_at
		FROM time_records WHERE id = $1`
	var t entity.TimeRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.TenantID, &t.StaffID, &t.ClockIn, &t.ClockOut, &t.TotalMinutes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time record: %w", err)
	}
	return &t, nil
}

// CloseRecord cierra el registro. Solo cierra registros abiertos: un registro
// ya cerrado no se reabre ni se recalcula.
func (r *TimeRecordRepo) CloseRecord(id string, clockOut time.Time, totalMinutes int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE time_records SET clock_out = $2, total_minutes = $3 WHERE id = $1 AND clock_out IS NULL`,
		id, clockOut, totalMinutes)
	if err != nil {
		return fmt.Errorf("close time record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListClosedByStaff devuelve registros cerrados del período [start, end).
func (r *TimeRecordRepo) ListClosedByStaff(tenantID, staffID string, start, end time.Time) ([]*entity.TimeRecord, error) {
	query := `
		SELECT id, tenant_id, staff_id, clock_in, clock_out, total_minutes, created_at
		FROM time_records
		WHERE tenant_id = $1 AND staff_id = $2 AND clock_out IS NOT NULL
		  AND clock_in >= $3 AND clock_in < $4
		ORDER BY clock_in`
	rows, err := r.q.Query(context.Background(), query, tenantID, staffID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list closed time records: %w", err)
	}
	defer rows.Close()

	var records []*entity.TimeRecord
	for rows.Next() {
		var t entity.TimeRecord
		if err := rows.Scan(&t.ID, &t.TenantID, &t.StaffID, &t.ClockIn, &t.ClockOut,
			&t.TotalMinutes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan time record: %w", err)
		}
		records = append(records, &t)
	}
	return records, rows.Err()
}
