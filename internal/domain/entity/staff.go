package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modelos de pago del personal.
const (
	PayRateHourly     = "HOURLY"          // horas trabajadas * tarifa por hora
	PayRateFixedJob   = "FIXED_PER_JOB"   // trabajos completados * monto fijo
	PayRatePercentJob = "PERCENT_PER_JOB" // suma(precio trabajo) * porcentaje/100
	PayRateDaily      = "DAILY_RATE"      // días con minutos >= umbral * monto fijo
)

// Staff representa un miembro del personal del tenant.
// Los campos de tarifa que no aplican al modelo quedan en cero.
type Staff struct {
	ID             string
	TenantID       string
	Name           string
	Email          string
	PayRateType    string // HOURLY | FIXED_PER_JOB | PERCENT_PER_JOB | DAILY_RATE | "" (sin configurar)
	HourlyRate     decimal.Decimal
	JobFixedAmount decimal.Decimal
	JobPercentage  decimal.Decimal // 0-100
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
