package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// Fakes en memoria de los puertos que usa la corrida de nómina.

type payrollStore struct {
	settings map[string]*entity.TenantSettings
	staff    []*entity.Staff
	records  map[string][]*entity.TimeRecord // por staffID
	jobs     map[string][]*entity.Job        // por staffID
	payslips []*entity.Payslip
}

func newPayrollStore() *payrollStore {
	return &payrollStore{
		settings: map[string]*entity.TenantSettings{},
		records:  map[string][]*entity.TimeRecord{},
		jobs:     map[string][]*entity.Job{},
	}
}

type fakePayrollTxRunner struct{ store *payrollStore }

func (r *fakePayrollTxRunner) RunPayroll(_ context.Context, fn func(repository.PayslipRepository) error) error {
	return fn(&fakePayslipRepo{r.store})
}

type fakePayslipRepo struct{ store *payrollStore }

func (r *fakePayslipRepo) Create(p *entity.Payslip) error {
	r.store.payslips = append(r.store.payslips, p)
	return nil
}

func (r *fakePayslipRepo) DeleteByPeriod(tenantID string, start, end time.Time, staffIDs []string) error {
	included := map[string]bool{}
	for _, id := range staffIDs {
		included[id] = true
	}
	kept := r.store.payslips[:0]
	for _, p := range r.store.payslips {
		match := p.TenantID == tenantID && p.PeriodStart.Equal(start) && p.PeriodEnd.Equal(end) &&
			(len(staffIDs) == 0 || included[p.StaffID])
		if !match {
			kept = append(kept, p)
		}
	}
	r.store.payslips = kept
	return nil
}

func (r *fakePayslipRepo) GetByID(id string) (*entity.Payslip, error) {
	for _, p := range r.store.payslips {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePayslipRepo) ListByPeriod(tenantID string, start, end time.Time) ([]*entity.Payslip, error) {
	var out []*entity.Payslip
	for _, p := range r.store.payslips {
		if p.TenantID == tenantID && p.PeriodStart.Equal(start) && p.PeriodEnd.Equal(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePayslipRepo) ListByStaff(tenantID, staffID string, _, _ int) ([]*entity.Payslip, error) {
	var out []*entity.Payslip
	for _, p := range r.store.payslips {
		if p.TenantID == tenantID && p.StaffID == staffID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeStaffRepo struct{ store *payrollStore }

func (r *fakeStaffRepo) Create(s *entity.Staff) error { r.store.staff = append(r.store.staff, s); return nil }

func (r *fakeStaffRepo) GetByID(id string) (*entity.Staff, error) {
	for _, s := range r.store.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) ListActive(tenantID string, ids []string) ([]*entity.Staff, error) {
	included := map[string]bool{}
	for _, id := range ids {
		included[id] = true
	}
	var out []*entity.Staff
	for _, s := range r.store.staff {
		if s.TenantID == tenantID && s.Active && (len(ids) == 0 || included[s.ID]) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(*entity.Staff) error { return nil }

type fakeTimeRepo struct{ store *payrollStore }

func (r *fakeTimeRepo) Create(rec *entity.TimeRecord) error {
	r.store.records[rec.StaffID] = append(r.store.records[rec.StaffID], rec)
	return nil
}

func (r *fakeTimeRepo) GetByID(string) (*entity.TimeRecord, error) { return nil, nil }

func (r *fakeTimeRepo) CloseRecord(string, time.Time, int) error { return nil }

func (r *fakeTimeRepo) ListClosedByStaff(_, staffID string, start, end time.Time) ([]*entity.TimeRecord, error) {
	var out []*entity.TimeRecord
	for _, rec := range r.store.records[staffID] {
		if rec.Closed() && !rec.ClockIn.Before(start) && rec.ClockIn.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeJobsRepo struct{ store *payrollStore }

func (r *fakeJobsRepo) Create(*entity.Job) error                             { return nil }
func (r *fakeJobsRepo) GetByID(string) (*entity.Job, error)                  { return nil, nil }
func (r *fakeJobsRepo) GetForUpdate(string) (*entity.Job, error)             { return nil, nil }
func (r *fakeJobsRepo) UpdateStatus(string, string, *time.Time) error        { return nil }
func (r *fakeJobsRepo) AddUsedStock(*entity.JobStockUsage) error             { return nil }
func (r *fakeJobsRepo) GetUsedStock(string) ([]*entity.JobStockUsage, error) { return nil, nil }
func (r *fakeJobsRepo) ListByTenant(string, int, int) ([]*entity.Job, error) { return nil, nil }

func (r *fakeJobsRepo) ListCompletedByStaff(_, staffID string, start, end time.Time) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range r.store.jobs[staffID] {
		if j.CompletedAt != nil && !j.CompletedAt.Before(start) && j.CompletedAt.Before(end) {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct{ store *payrollStore }

func (r *fakeSettingsRepo) Get(tenantID string) (*entity.TenantSettings, error) {
	return r.store.settings[tenantID], nil
}
func (r *fakeSettingsRepo) NextInvoiceNumber(string) (string, error) { return "", nil }
func (r *fakeSettingsRepo) Upsert(*entity.TenantSettings) error      { return nil }

func newPayrollUC(store *payrollStore) *CalculatePayrollUseCase {
	return NewCalculatePayrollUseCase(
		&fakePayrollTxRunner{store},
		&fakeStaffRepo{store},
		&fakeTimeRepo{store},
		&fakeJobsRepo{store},
		&fakeSettingsRepo{store},
		logger.Nop(),
	)
}

func mins(store *payrollStore, staffID string, day time.Time, totalMins int) {
	out := day.Add(time.Duration(totalMins) * time.Minute)
	store.records[staffID] = append(store.records[staffID], &entity.TimeRecord{
		ID: staffID + day.Format("02"), TenantID: "t1", StaffID: staffID,
		ClockIn: day, ClockOut: &out, TotalMinutes: totalMins,
	})
}

func completedJob(store *payrollStore, staffID, id, price string, at time.Time) {
	store.jobs[staffID] = append(store.jobs[staffID], &entity.Job{
		ID: id, TenantID: "t1", StaffID: staffID,
		Price: decimal.RequireFromString(price), Status: entity.JobStatusCompleted, CompletedAt: &at,
	})
}

var (
	periodStart = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
)

func calcReq(staffIDs ...string) dto.CalculatePayrollRequest {
	return dto.CalculatePayrollRequest{PeriodStart: "2026-08-01", PeriodEnd: "2026-08-15", StaffIDs: staffIDs}
}

func TestCalculatePayroll_PorHoras(t *testing.T) {
	store := newPayrollStore()
	store.staff = append(store.staff, &entity.Staff{
		ID: "st1", TenantID: "t1", Name: "Carlos", Active: true,
		PayRateType: entity.PayRateHourly, HourlyRate: decimal.RequireFromString("15"),
	})
	mins(store, "st1", periodStart.AddDate(0, 0, 2), 240)
	mins(store, "st1", periodStart.AddDate(0, 0, 3), 180)

	uc := newPayrollUC(store)
	resp, err := uc.Calculate(context.Background(), "t1", calcReq())
	require.NoError(t, err)
	require.Len(t, resp, 1)

	assert.True(t, resp[0].GrossPay.Equal(decimal.RequireFromString("105.00")), "7 horas a 15 son 105, no %s", resp[0].GrossPay)
	assert.True(t, resp[0].NetPay.Equal(resp[0].GrossPay), "sin deducciones reales el neto es el bruto")
}

func TestCalculatePayroll_PorcentualPorTrabajo(t *testing.T) {
	store := newPayrollStore()
	store.staff = append(store.staff, &entity.Staff{
		ID: "st1", TenantID: "t1", Name: "Luisa", Active: true,
		PayRateType: entity.PayRatePercentJob, JobPercentage: decimal.RequireFromString("10"),
	})
	completedJob(store, "st1", "j1", "200.00", periodStart.AddDate(0, 0, 1))
	completedJob(store, "st1", "j2", "300.00", periodStart.AddDate(0, 0, 5))

	uc := newPayrollUC(store)
	resp, err := uc.Calculate(context.Background(), "t1", calcReq())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].GrossPay.Equal(decimal.RequireFromString("50.00")))
}

func TestCalculatePayroll_FinDePeriodoInclusivo(t *testing.T) {
	store := newPayrollStore()
	store.staff = append(store.staff, &entity.Staff{
		ID: "st1", TenantID: "t1", Active: true,
		PayRateType: entity.PayRateFixedJob, JobFixedAmount: decimal.RequireFromString("40"),
	})
	// Completado el último día del período a media tarde: debe contar
	completedJob(store, "st1", "j1", "100.00", periodEnd.Add(15*time.Hour))
	// Completado al día siguiente: fuera
	completedJob(store, "st1", "j2", "100.00", periodEnd.AddDate(0, 0, 1).Add(2*time.Hour))

	uc := newPayrollUC(store)
	resp, err := uc.Calculate(context.Background(), "t1", calcReq())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].GrossPay.Equal(decimal.RequireFromString("40.00")),
		"solo el trabajo dentro del período inclusivo cuenta")
}

func TestCalculatePayroll_ReemplazaCorridaAnterior(t *testing.T) {
	store := newPayrollStore()
	store.staff = append(store.staff, &entity.Staff{
		ID: "st1", TenantID: "t1", Active: true,
		PayRateType: entity.PayRateFixedJob, JobFixedAmount: decimal.RequireFromString("40"),
	})
	completedJob(store, "st1", "j1", "100.00", periodStart.AddDate(0, 0, 1))

	uc := newPayrollUC(store)
	ctx := context.Background()

	_, err := uc.Calculate(ctx, "t1", calcReq())
	require.NoError(t, err)

	// Llega un trabajo tardío y se repite la corrida
	completedJob(store, "st1", "j2", "100.00", periodStart.AddDate(0, 0, 2))
	resp, err := uc.Calculate(ctx, "t1", calcReq())
	require.NoError(t, err)

	require.Len(t, resp, 1)
	assert.True(t, resp[0].GrossPay.Equal(decimal.RequireFromString("80.00")))
	assert.Len(t, store.payslips, 1, "la corrida reemplaza, no acumula")
}

func TestCalculatePayroll_CorridaParcialNoTocaAlResto(t *testing.T) {
	store := newPayrollStore()
	store.staff = append(store.staff,
		&entity.Staff{ID: "st1", TenantID: "t1", Active: true, PayRateType: entity.PayRateFixedJob, JobFixedAmount: decimal.RequireFromString("40")},
		&entity.Staff{ID: "st2", TenantID: "t1", Active: true, PayRateType: entity.PayRateFixedJob, JobFixedAmount: decimal.RequireFromString("40")},
	)
	completedJob(store, "st1", "j1", "100.00", periodStart.AddDate(0, 0, 1))
	completedJob(store, "st2", "j2", "100.00", periodStart.AddDate(0, 0, 1))

	uc := newPayrollUC(store)
	ctx := context.Background()

	_, err := uc.Calculate(ctx, "t1", calcReq())
	require.NoError(t, err)
	require.Len(t, store.payslips, 2)

	// Recorrida solo de st1: la liquidación de st2 queda intacta
	_, err = uc.Calculate(ctx, "t1", calcReq("st1"))
	require.NoError(t, err)
	assert.Len(t, store.payslips, 2)

	found := 0
	for _, p := range store.payslips {
		if p.StaffID == "st2" {
			found++
		}
	}
	assert.Equal(t, 1, found)
}

func TestCalculatePayroll_UmbralDiarioDelTenant(t *testing.T) {
	store := newPayrollStore()
	store.settings["t1"] = &entity.TenantSettings{TenantID: "t1", DailyThresholdMin: 300}
	store.staff = append(store.staff, &entity.Staff{
		ID: "st1", TenantID: "t1", Active: true,
		PayRateType: entity.PayRateDaily, JobFixedAmount: decimal.RequireFromString("60"),
	})
	mins(store, "st1", periodStart.AddDate(0, 0, 1), 320) // cuenta
	mins(store, "st1", periodStart.AddDate(0, 0, 2), 290) // no llega al umbral

	uc := newPayrollUC(store)
	resp, err := uc.Calculate(context.Background(), "t1", calcReq())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].GrossPay.Equal(decimal.RequireFromString("60.00")))
}

func TestCalculatePayroll_SinModeloConfigurado(t *testing.T) {
	store := newPayrollStore()
	store.staff = append(store.staff, &entity.Staff{ID: "st1", TenantID: "t1", Active: true})

	uc := newPayrollUC(store)
	resp, err := uc.Calculate(context.Background(), "t1", calcReq())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.True(t, resp[0].GrossPay.IsZero(), "sin modelo de pago la liquidación sale en cero, no falla")
}

func TestCalculatePayroll_PeriodoInvalido(t *testing.T) {
	store := newPayrollStore()
	uc := newPayrollUC(store)
	ctx := context.Background()

	_, err := uc.Calculate(ctx, "t1", dto.CalculatePayrollRequest{PeriodStart: "2026-08-15", PeriodEnd: "2026-08-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fin antes del inicio")

	_, err = uc.Calculate(ctx, "t1", dto.CalculatePayrollRequest{PeriodStart: "15/08/2026", PeriodEnd: "2026-08-20"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha inválido")
}
