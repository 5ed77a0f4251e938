package dto

import "github.com/shopspring/decimal"

// CreateStaffRequest body para POST /api/staff.
type CreateStaffRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	PayRateType    string          `json:"pay_rate_type"` // HOURLY | FIXED_PER_JOB | PERCENT_PER_JOB | DAILY_RATE
	HourlyRate     decimal.Decimal `json:"hourly_rate,omitempty"`
	JobFixedAmount decimal.Decimal `json:"job_fixed_amount,omitempty"`
	JobPercentage  decimal.Decimal `json:"job_percentage,omitempty"`
}

// StaffResponse personal en respuestas.
type StaffResponse struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	PayRateType    string          `json:"pay_rate_type"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	JobFixedAmount decimal.Decimal `json:"job_fixed_amount"`
	JobPercentage  decimal.Decimal `json:"job_percentage"`
	Active         bool            `json:"active"`
}

// ClockInRequest body para POST /api/time-records/clock-in.
type ClockInRequest struct {
	StaffID string `json:"staff_id"`
}

// ClockOutRequest body para POST /api/time-records/:id/clock-out.
type ClockOutRequest struct {
	RecordID string `json:"record_id"`
}

// TimeRecordResponse registro de jornada en respuestas.
type TimeRecordResponse struct {
	ID           string `json:"id"`
	StaffID      string `json:"staff_id"`
	ClockIn      string `json:"clock_in"`
	ClockOut     string `json:"clock_out,omitempty"`
	TotalMinutes int    `json:"total_minutes"`
}
