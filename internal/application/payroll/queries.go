package payroll

import (
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// PayslipQueryUseCase lecturas de liquidaciones.
type PayslipQueryUseCase struct {
	payslipRepo repository.PayslipRepository
}

// NewPayslipQueryUseCase construye el caso de uso de lecturas.
func NewPayslipQueryUseCase(payslipRepo repository.PayslipRepository) *PayslipQueryUseCase {
	return &PayslipQueryUseCase{payslipRepo: payslipRepo}
}

// GetByID devuelve una liquidación del tenant.
func (uc *PayslipQueryUseCase) GetByID(tenantID, payslipID string) (*dto.PayslipResponse, error) {
	p, err := uc.payslipRepo.GetByID(payslipID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toPayslipResponse(p), nil
}

// ListByPeriod devuelve las liquidaciones de un período (corrida completa).
func (uc *PayslipQueryUseCase) ListByPeriod(tenantID, start, end string) ([]dto.PayslipResponse, error) {
	periodStart, periodEnd, err := parsePeriod(start, end)
	if err != nil {
		return nil, err
	}
	payslips, err := uc.payslipRepo.ListByPeriod(tenantID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		out = append(out, *toPayslipResponse(p))
	}
	return out, nil
}

// ListByStaff devuelve el histórico de liquidaciones de un miembro del personal.
func (uc *PayslipQueryUseCase) ListByStaff(tenantID, staffID string, limit, offset int) ([]dto.PayslipResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	payslips, err := uc.payslipRepo.ListByStaff(tenantID, staffID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		out = append(out, *toPayslipResponse(p))
	}
	return out, nil
}
