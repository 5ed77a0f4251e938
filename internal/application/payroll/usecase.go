package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	domainpayroll "github.com/jhoicas/ServiCampo-api/internal/domain/payroll"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// defaultDailyThreshold minutos mínimos por jornada cuando el tenant no lo configura.
const defaultDailyThreshold = 480

// CalculatePayrollUseCase corre la nómina de un período: calcula la
// liquidación de cada miembro del personal y reemplaza las del período en una
// sola transacción. Repetir la corrida con los mismos datos produce el mismo
// resultado.
type CalculatePayrollUseCase struct {
	txRunner     PayrollTxRunner
	staffRepo    repository.StaffRepository
	timeRepo     repository.TimeRecordRepository
	jobRepo      repository.JobRepository
	settingsRepo repository.SettingsRepository
	log          *logger.Logger
}

// NewCalculatePayrollUseCase construye el caso de uso.
func NewCalculatePayrollUseCase(
	txRunner PayrollTxRunner,
	staffRepo repository.StaffRepository,
	timeRepo repository.TimeRecordRepository,
	jobRepo repository.JobRepository,
	settingsRepo repository.SettingsRepository,
	log *logger.Logger,
) *CalculatePayrollUseCase {
	return &CalculatePayrollUseCase{
		txRunner:     txRunner,
		staffRepo:    staffRepo,
		timeRepo:     timeRepo,
		jobRepo:      jobRepo,
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// Calculate ejecuta la corrida. La fase de cálculo es de solo lectura; la
// escritura (borrar + crear) va en una única transacción al final.
func (uc *CalculatePayrollUseCase) Calculate(ctx context.Context, tenantID string, in dto.CalculatePayrollRequest) ([]dto.PayslipResponse, error) {
	periodStart, periodEnd, err := parsePeriod(in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}
	// Fin de período inclusivo a fin de día: las consultas usan [start, end+24h)
	queryEnd := periodEnd.AddDate(0, 0, 1)

	threshold := defaultDailyThreshold
	settings, err := uc.settingsRepo.Get(tenantID)
	if err != nil {
		return nil, err
	}
	if settings != nil && settings.DailyThresholdMin > 0 {
		threshold = settings.DailyThresholdMin
	}

	staff, err := uc.staffRepo.ListActive(tenantID, in.StaffIDs)
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return []dto.PayslipResponse{}, nil
	}

	now := time.Now()
	payslips := make([]*entity.Payslip, 0, len(staff))
	staffIDs := make([]string, 0, len(staff))
	for _, s := range staff {
		records, err := uc.timeRepo.ListClosedByStaff(tenantID, s.ID, periodStart, queryEnd)
		if err != nil {
			return nil, err
		}
		jobs, err := uc.jobRepo.ListCompletedByStaff(tenantID, s.ID, periodStart, queryEnd)
		if err != nil {
			return nil, err
		}

		res := domainpayroll.Compute(domainpayroll.Inputs{
			Staff:         s,
			TimeRecords:   records,
			CompletedJobs: jobs,
			ThresholdMins: threshold,
		})
		if res.Breakdown.Unconfigured {
			uc.log.Warn().Str("staff", s.ID).Str("pay_rate_type", s.PayRateType).
				Msg("personal sin modelo de pago configurado; liquidación en cero")
		}

		payslips = append(payslips, domainpayroll.BuildPayslip(
			uuid.New().String(), tenantID, s.ID, periodStart, periodEnd, res, now,
		))
		staffIDs = append(staffIDs, s.ID)
	}

	err = uc.txRunner.RunPayroll(ctx, func(payslipRepo repository.PayslipRepository) error {
		if err := payslipRepo.DeleteByPeriod(tenantID, periodStart, periodEnd, staffIDs); err != nil {
			return err
		}
		for _, p := range payslips {
			if err := payslipRepo.Create(p); err != nil {
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
		Str("period_start", in.PeriodStart).
		Str("period_end", in.PeriodEnd).
		Int("payslips", len(payslips)).
		Msg("corrida de nómina completada")

	out := make([]dto.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		out = append(out, *toPayslipResponse(p))
	}
	return out, nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	periodEnd, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if periodEnd.Before(periodStart) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return periodStart, periodEnd, nil
}

func toPayslipResponse(p *entity.Payslip) *dto.PayslipResponse {
	resp := &dto.PayslipResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		StaffID:     p.StaffID,
		PeriodStart: p.PeriodStart.Format(dateLayout),
		PeriodEnd:   p.PeriodEnd.Format(dateLayout),
		GrossPay:    p.GrossPay,
		NetPay:      p.NetPay,
		Breakdown:   p.Breakdown,
	}
	for _, e := range p.Earnings {
		resp.Earnings = append(resp.Earnings, dto.PayslipLineResponse{Description: e.Description, Amount: e.Amount})
	}
	for _, d := range p.Deductions {
		resp.Deductions = append(resp.Deductions, dto.PayslipLineResponse{Description: d.Description, Amount: d.Amount})
	}
	return resp
}
