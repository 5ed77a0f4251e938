package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip liquidación de nómina de un miembro del personal para un período.
// Inmutable después de crearse: una nueva corrida reemplaza las liquidaciones
// del período, no edita las existentes.
type Payslip struct {
	ID          string
	TenantID    string
	StaffID     string
	PeriodStart time.Time
	PeriodEnd   time.Time // inclusivo a fin de día
	GrossPay    decimal.Decimal
	NetPay      decimal.Decimal
	Earnings    []PayslipLine
	Deductions  []PayslipLine
	Breakdown   PayBreakdown
	CreatedAt   time.Time
}

// PayslipLine concepto de la liquidación (devengo o deducción).
type PayslipLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PayBreakdown insumos del cálculo, para auditoría. Se persiste como JSON.
type PayBreakdown struct {
	PayRateType    string   `json:"pay_rate_type"`
	TotalMinutes   int      `json:"total_minutes,omitempty"`
	Hours          string   `json:"hours,omitempty"` // decimal con 4 decimales
	HourlyRate     string   `json:"hourly_rate,omitempty"`
	JobCount       int      `json:"job_count,omitempty"`
	JobFixedAmount string   `json:"job_fixed_amount,omitempty"`
	JobTotal       string   `json:"job_total,omitempty"`
	JobPercentage  string   `json:"job_percentage,omitempty"`
	QualifyingDays int      `json:"qualifying_days,omitempty"`
	ThresholdMins  int      `json:"threshold_mins,omitempty"`
	RecordIDs      []string `json:"record_ids,omitempty"` // registros de tiempo o trabajos que aportaron
	Unconfigured   bool     `json:"unconfigured,omitempty"`
}
