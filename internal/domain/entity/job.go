package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un trabajo.
const (
	JobStatusPending   = "PENDING"
	JobStatusCompleted = "COMPLETED"
	JobStatusInvoiced  = "INVOICED"
)

// Job representa un trabajo de servicio en campo.
type Job struct {
	ID          string
	TenantID    string
	CustomerID  string
	StaffID     string // técnico asignado (nómina por trabajo)
	Description string
	Price       decimal.Decimal // precio del servicio; 0 = sin cargo de servicio
	Status      string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	UsedStock []*JobStockUsage
}

// JobStockUsage material consumido en el trabajo; se factura al precio de venta vigente.
type JobStockUsage struct {
	ID          string
	JobID       string
	StockItemID string
	Quantity    decimal.Decimal
}
