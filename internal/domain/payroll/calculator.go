// Package payroll contiene el cálculo puro de nómina: dado el personal y sus
// registros del período, produce la liquidación según el modelo de pago.
// La acumulación se hace sin redondear; solo se redondea a 2 decimales al
// construir la liquidación, para evitar deriva acumulada entre muchos registros.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// Inputs insumos del cálculo para un miembro del personal.
// TimeRecords y CompletedJobs ya vienen filtrados por período.
type Inputs struct {
	Staff         *entity.Staff
	TimeRecords   []*entity.TimeRecord
	CompletedJobs []*entity.Job
	ThresholdMins int // minutos mínimos por día para tarifa diaria
}

// Result resultado del cálculo antes de persistir.
type Result struct {
	GrossPay  decimal.Decimal // redondeado a 2 decimales
	Earnings  []entity.PayslipLine
	Breakdown entity.PayBreakdown
}

// Compute calcula el pago bruto según el modelo de pago del personal.
// Modelo desconocido o sin configurar: bruto 0, marcado en el desglose.
// El bruto nunca es negativo (piso defensivo).
func Compute(in Inputs) Result {
	var gross decimal.Decimal
	var label string
	var bd entity.PayBreakdown

	switch in.Staff.PayRateType {
	case entity.PayRateHourly:
		gross, bd = computeHourly(in.Staff, in.TimeRecords)
		label = "Pago por horas"
	case entity.PayRateFixedJob:
		gross, bd = computeFixedPerJob(in.Staff, in.CompletedJobs)
		label = "Pago fijo por trabajo"
	case entity.PayRatePercentJob:
		gross, bd = computePercentPerJob(in.Staff, in.CompletedJobs)
		label = "Pago porcentual por trabajo"
	case entity.PayRateDaily:
		gross, bd = computeDaily(in.Staff, in.TimeRecords, in.ThresholdMins)
		label = "Pago por tarifa diaria"
	default:
		gross = decimal.Zero
		label = "Modelo de pago sin configurar"
		bd = entity.PayBreakdown{PayRateType: in.Staff.PayRateType, Unconfigured: true}
	}

	if gross.IsNegative() {
		gross = decimal.Zero
	}
	gross = gross.Round(2)

	return Result{
		GrossPay:  gross,
		Earnings:  []entity.PayslipLine{{Description: label, Amount: gross}},
		Breakdown: bd,
	}
}

// computeHourly: (suma de minutos de registros cerrados / 60) * tarifa por hora.
func computeHourly(staff *entity.Staff, records []*entity.TimeRecord) (decimal.Decimal, entity.PayBreakdown) {
	totalMins := 0
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if !r.Closed() {
			continue
		}
		totalMins += r.TotalMinutes
		ids = append(ids, r.ID)
	}
	hours := decimal.NewFromInt(int64(totalMins)).Div(sixty)
	gross := hours.Mul(staff.HourlyRate)
	return gross, entity.PayBreakdown{
		PayRateType:  entity.PayRateHourly,
		TotalMinutes: totalMins,
		Hours:        hours.Round(4).String(),
		HourlyRate:   staff.HourlyRate.String(),
		RecordIDs:    ids,
	}
}

// computeFixedPerJob: número de trabajos completados * monto fijo.
func computeFixedPerJob(staff *entity.Staff, jobs []*entity.Job) (decimal.Decimal, entity.PayBreakdown) {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	gross := decimal.NewFromInt(int64(len(jobs))).Mul(staff.JobFixedAmount)
	return gross, entity.PayBreakdown{
		PayRateType:    entity.PayRateFixedJob,
		JobCount:       len(jobs),
		JobFixedAmount: staff.JobFixedAmount.String(),
		RecordIDs:      ids,
	}
}

// computePercentPerJob: suma(precio de los trabajos) * porcentaje/100.
func computePercentPerJob(staff *entity.Staff, jobs []*entity.Job) (decimal.Decimal, entity.PayBreakdown) {
	total := decimal.Zero
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		total = total.Add(j.Price)
		ids = append(ids, j.ID)
	}
	gross := total.Mul(staff.JobPercentage.Div(hundred))
	return gross, entity.PayBreakdown{
		PayRateType:   entity.PayRatePercentJob,
		JobCount:      len(jobs),
		JobTotal:      total.String(),
		JobPercentage: staff.JobPercentage.String(),
		RecordIDs:     ids,
	}
}

// computeDaily: días con minutos >= umbral * monto fijo. Un registro por jornada.
func computeDaily(staff *entity.Staff, records []*entity.TimeRecord, thresholdMins int) (decimal.Decimal, entity.PayBreakdown) {
	days := 0
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if !r.Closed() || r.TotalMinutes < thresholdMins {
			continue
		}
		days++
		ids = append(ids, r.ID)
	}
	gross := decimal.NewFromInt(int64(days)).Mul(staff.JobFixedAmount)
	return gross, entity.PayBreakdown{
		PayRateType:    entity.PayRateDaily,
		QualifyingDays: days,
		ThresholdMins:  thresholdMins,
		JobFixedAmount: staff.JobFixedAmount.String(),
		RecordIDs:      ids,
	}
}

// BuildPayslip arma la liquidación inmutable a partir del resultado del cálculo.
// Se adjunta una deducción de impuestos en 0 como marcador: la lógica fiscal
// real está fuera del alcance del motor.
func BuildPayslip(id string, tenantID string, staffID string, periodStart, periodEnd time.Time, res Result, now time.Time) *entity.Payslip {
	deductions := []entity.PayslipLine{{Description: "Retención (no aplicada)", Amount: decimal.Zero}}
	net := res.GrossPay
	for _, d := range deductions {
		net = net.Sub(d.Amount)
	}
	return &entity.Payslip{
		ID:          id,
		TenantID:    tenantID,
		StaffID:     staffID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		GrossPay:    res.GrossPay,
		NetPay:      net.Round(2),
		Earnings:    res.Earnings,
		Deductions:  deductions,
		Breakdown:   res.Breakdown,
		CreatedAt:   now,
	}
}
