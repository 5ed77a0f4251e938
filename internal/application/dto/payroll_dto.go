package dto

import "github.com/shopspring/decimal"

// CalculatePayrollRequest body para POST /api/payroll/calculate.
// Fechas en formato 2006-01-02; PeriodEnd es inclusivo a fin de día.
type CalculatePayrollRequest struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	StaffIDs    []string `json:"staff_ids,omitempty"` // vacío = todo el personal activo
}

// PayslipResponse liquidación en respuestas.
type PayslipResponse struct {
	ID          string                `json:"id"`
	TenantID    string                `json:"tenant_id"`
	StaffID     string                `json:"staff_id"`
	PeriodStart string                `json:"period_start"`
	PeriodEnd   string                `json:"period_end"`
	GrossPay    decimal.Decimal       `json:"gross_pay"`
	NetPay      decimal.Decimal       `json:"net_pay"`
	Earnings    []PayslipLineResponse `json:"earnings"`
	Deductions  []PayslipLineResponse `json:"deductions"`
	Breakdown   any                   `json:"pay_details_breakdown"`
}

// PayslipLineResponse concepto de la liquidación.
type PayslipLineResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}
