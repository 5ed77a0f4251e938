package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

var _ repository.PayslipRepository = (*PayslipRepo)(nil)

// PayslipRepo implementación de PayslipRepository sobre PostgreSQL (usable con pool o tx).
// Devengos, deducciones y desglose se guardan como JSONB: son documentos de
// auditoría inmutables, no se consultan por campo.
type PayslipRepo struct {
	q Querier
}

// NewPayslipRepository construye el adaptador de liquidaciones. Pasar pool o tx (Querier).
func NewPayslipRepository(q Querier) *PayslipRepo {
	return &PayslipRepo{q: q}
}

// Create inserta una liquidación.
func (r *PayslipRepo) Create(payslip *entity.Payslip) error {
	earnings, err := json.Marshal(payslip.Earnings)
	if err != nil {
		return fmt.Errorf("marshal payslip earnings: %w", err)
	}
	deductions, err := json.Marshal(payslip.Deductions)
	if err != nil {
		return fmt.Errorf("marshal payslip deductions: %w", err)
	}
	breakdown, err := json.Marshal(payslip.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal payslip breakdown: %w", err)
	}

	query := `
		INSERT INTO payslips (id, tenant_id, staff_id, period_start, period_end,
		                      gross_pay, net_pay, earnings, deductions, breakdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		payslip.ID, payslip.TenantID, payslip.StaffID, payslip.PeriodStart, payslip.PeriodEnd,
		payslip.GrossPay, payslip.NetPay, earnings, deductions, breakdown, payslip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payslip: %w", err)
	}
	return nil
}

// DeleteByPeriod elimina las liquidaciones del período para el personal dado
// (vacío = todo el tenant). Parte de la transacción de la corrida: reemplazar,
// nunca mezclar.
func (r *PayslipRepo) DeleteByPeriod(tenantID string, periodStart, periodEnd time.Time, staffIDs []string) error {
	if staffIDs == nil {
		staffIDs = []string{}
	}
	query := `
		DELETE FROM payslips
		WHERE tenant_id = $1 AND period_start = $2 AND period_end = $3
		  AND (cardinality($4::text[]) = 0 OR staff_id = ANY($4))`
	_, err := r.q.Exec(context.Background(), query, tenantID, periodStart, periodEnd, staffIDs)
	if err != nil {
		return fmt.Errorf("delete payslips by period: %w", err)
	}
	return nil
}

// GetByID obtiene una liquidación. Nil si no existe.
func (r *PayslipRepo) GetByID(id string) (*entity.Payslip, error) {
	query := `
		SELECT id, tenant_id, staff_id, period_start, period_end, gross_pay, net_pay,
		       earnings, deductions, breakdown, created_at
		FROM payslips WHERE id = $1`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payslip: %w", err)
	}
	return p, nil
}

// ListByPeriod devuelve la corrida completa de un período.
func (r *PayslipRepo) ListByPeriod(tenantID string, periodStart, periodEnd time.Time) ([]*entity.Payslip, error) {
	query := `
		SELECT id, tenant_id, staff_id, period_start, period_end, gross_pay, net_pay,
		       earnings, deductions, breakdown, created_at
		FROM payslips
		WHERE tenant_id = $1 AND period_start = $2 AND period_end = $3
		ORDER BY staff_id`
	rows, err := r.q.Query(context.Background(), query, tenantID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("list payslips by period: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByStaff devuelve el histórico de liquidaciones de un miembro del personal.
func (r *PayslipRepo) ListByStaff(tenantID, staffID string, limit, offset int) ([]*entity.Payslip, error) {
	query := `
		SELECT id, tenant_id, staff_id, period_start, period_end, gross_pay, net_pay,
		       earnings, deductions, breakdown, created_at
		FROM payslips
		WHERE tenant_id = $1 AND staff_id = $2
		ORDER BY period_start DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, staffID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payslips by staff: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *PayslipRepo) scanOne(row pgx.Row) (*entity.Payslip, error) {
	var p entity.Payslip
	var earnings, deductions, breakdown []byte
	err := row.Scan(&p.ID, &p.TenantID, &p.StaffID, &p.PeriodStart, &p.PeriodEnd,
		&p.GrossPay, &p.NetPay, &earnings, &deductions, &breakdown, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalPayslipDocs(&p, earnings, deductions, breakdown); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayslipRepo) scanMany(rows pgx.Rows) ([]*entity.Payslip, error) {
	var payslips []*entity.Payslip
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

func unmarshalPayslipDocs(p *entity.Payslip, earnings, deductions, breakdown []byte) error {
	if err := json.Unmarshal(earnings, &p.Earnings); err != nil {
		return fmt.Errorf("unmarshal payslip earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &p.Deductions); err != nil {
		return fmt.Errorf("unmarshal payslip deductions: %w", err)
	}
	if err := json.Unmarshal(breakdown, &p.Breakdown); err != nil {
		return fmt.Errorf("unmarshal payslip breakdown: %w", err)
	}
	return nil
}
